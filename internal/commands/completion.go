// Where: internal/commands/completion.go
// What: Shell completion command implementation.
// Why: Complete subcommands everywhere and service names after `list`.
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
)

// CompletionCmd defines the structure for the completion command.
type CompletionCmd struct {
	Bash CompletionBashCmd `cmd:"" help:"Generate bash completion script"`
	Zsh  CompletionZshCmd  `cmd:"" help:"Generate zsh completion script"`
	Fish CompletionFishCmd `cmd:"" help:"Generate fish completion script"`
}

type (
	CompletionBashCmd struct{}
	CompletionZshCmd  struct{}
	CompletionFishCmd struct{}
)

const serviceCandidates = "portid __complete services 2>/dev/null"

func runCompletionBash(cli CLI, out io.Writer) int {
	commands, subcommands := collectCompletionCommands(cli)

	var caseParts []string
	for _, cmd := range sortedKeys(subcommands) {
		part := fmt.Sprintf(`        %s)
            COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
            return 0
            ;;`, cmd, strings.Join(subcommands[cmd], " "))
		caseParts = append(caseParts, part)
	}
	caseParts = append(caseParts, fmt.Sprintf(`        list)
            COMPREPLY=( $(compgen -W "$(%s)" -- "${cur}") )
            return 0
            ;;`, serviceCandidates))

	script := `_portid_completion() {
    local cur cmd
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    cmd="${COMP_WORDS[1]}"

    if [[ ${COMP_CWORD} -le 1 ]]; then
        COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
        return 0
    fi

    case "${cmd}" in
%s
    esac
}
complete -F _portid_completion portid
`
	writeString(out, fmt.Sprintf(script, strings.Join(commands, " "), strings.Join(caseParts, "\n")))
	return 0
}

func runCompletionZsh(cli CLI, out io.Writer) int {
	commands, subcommands := collectCompletionCommands(cli)

	script := `#compdef portid
_portid_completion() {
  local -a commands
  commands=(%s)
  local cmd="${words[2]}"

  if [[ $CURRENT -eq 2 ]]; then
    _values 'commands' ${commands[@]}
    return
  fi

%s
  if [[ "${cmd}" == "list" ]]; then
    local -a services
    services=(${(f)"$(%s)"})
    (( ${#services} )) && _values 'services' ${services[@]}
    return
  fi
}
_portid_completion "$@"
`

	var subBlocks strings.Builder
	for _, cmd := range sortedKeys(subcommands) {
		subBlocks.WriteString(fmt.Sprintf(`  if [[ "${cmd}" == "%s" && $CURRENT -eq 3 ]]; then
    _values '%s' %s
    return
  fi
`, cmd, cmd, strings.Join(subcommands[cmd], " ")))
	}

	writeString(out, fmt.Sprintf(script, strings.Join(commands, " "), subBlocks.String(), serviceCandidates))
	return 0
}

func runCompletionFish(cli CLI, out io.Writer) int {
	commands, subcommands := collectCompletionCommands(cli)
	writeLine(out, fmt.Sprintf("complete -c portid -f -n \"__fish_use_subcommand\" -a \"%s\"", strings.Join(commands, " ")))
	for _, cmd := range sortedKeys(subcommands) {
		writeLine(out, fmt.Sprintf("complete -c portid -f -n \"__fish_seen_subcommand_from %s\" -a \"%s\"", cmd, strings.Join(subcommands[cmd], " ")))
	}
	writeLine(out, fmt.Sprintf("complete -c portid -f -n \"__fish_seen_subcommand_from list\" -a \"(%s)\"", serviceCandidates))
	return 0
}

func collectCompletionCommands(cli CLI) ([]string, map[string][]string) {
	parser, _ := kong.New(&cli)

	var commands []string
	subcommands := make(map[string][]string)

	for _, node := range parser.Model.Children {
		if node.Hidden || strings.HasPrefix(node.Name, "__") {
			continue
		}
		commands = append(commands, node.Name)
		if len(node.Children) > 0 {
			var subs []string
			for _, sub := range node.Children {
				if sub.Hidden || strings.HasPrefix(sub.Name, "__") || sub.Type != kong.CommandNode {
					continue
				}
				subs = append(subs, sub.Name)
			}
			if len(subs) > 0 {
				subcommands[node.Name] = subs
			}
		}
	}

	return commands, subcommands
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
