// Where: internal/commands/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package commands

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/antipatico/portid/internal/infra/fetch"
	"github.com/antipatico/portid/internal/infra/ui"
	"github.com/antipatico/portid/internal/logging"
	"github.com/antipatico/portid/internal/meta"
	"github.com/antipatico/portid/internal/usecase/refresh"
	"github.com/antipatico/portid/internal/version"
)

// SourceFactory builds the snapshot source for an update URL.
type SourceFactory func(ctx context.Context, rawURL string, opts fetch.Options) (fetch.Source, error)

// Dependencies holds all injected dependencies required for CLI command execution.
// Out receives results; ErrOut receives status lines, progress and errors.
type Dependencies struct {
	Out         io.Writer
	ErrOut      io.Writer
	Confirmer   refresh.Confirmer
	Interactive bool
	Color       bool
	NewSource   SourceFactory
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Yes       bool   `short:"y" help:"Do not prompt for confirmation when a download is needed"`
	Config    string `help:"Path to config file"`
	EnvFile   string `name:"env-file" help:"Path to .env file"`
	DataDir   string `name:"data-dir" help:"Directory holding the port database"`
	UpdateURL string `name:"update-url" help:"Snapshot URL (https://, s3:// or file://)"`
	Output    string `short:"o" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)"`
	Format    string `help:"Go template rendered for each result (sprig functions available)"`
	LogLevel  string `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Diagnostic log level"`

	ID         IDCmd         `cmd:"" name:"id" help:"List all the services using port number PORT"`
	List       ListCmd       `cmd:"" help:"List services and used ports matching SERVICE"`
	UpdateDB   UpdateDBCmd   `cmd:"" name:"update-db" help:"Update the port database"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completion script"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
	Complete   CompleteCmd   `cmd:"" name:"__complete" hidden:""`
}

type (
	IDCmd struct {
		Port string `arg:"" name:"port" help:"Port number to identify (0-65535)"`
	}
	ListCmd struct {
		Regex   bool   `short:"r" help:"Treat SERVICE as a regular expression"`
		Service string `arg:"" optional:"" name:"service" help:"Filter by service name or description"`
	}
	UpdateDBCmd struct{}
	VersionCmd  struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(ctx context.Context, args []string, deps Dependencies) int {
	deps = withDefaults(deps)

	if len(args) == 0 {
		return runNoArgs(deps.ErrOut)
	}

	cli := CLI{}
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Static service identifier using port number."),
		kong.Writers(deps.Out, deps.ErrOut),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help was handled by kong.
		return exitCode
	}
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	if err := logging.Configure(deps.ErrOut, cli.LogLevel); err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	command := commandKey(kctx.Command())
	if exitCode, handled := dispatchCommand(ctx, command, cli, deps); handled {
		return exitCode
	}

	ui.New(deps.ErrOut).Warn("unknown command")
	return 1
}

type commandHandler func(context.Context, CLI, Dependencies) int

func dispatchCommand(ctx context.Context, command string, cli CLI, deps Dependencies) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"id":                  runID,
		"list":                runList,
		"update-db":           runUpdateDB,
		"completion bash":     func(_ context.Context, cli CLI, deps Dependencies) int { return runCompletionBash(cli, deps.Out) },
		"completion zsh":      func(_ context.Context, cli CLI, deps Dependencies) int { return runCompletionZsh(cli, deps.Out) },
		"completion fish":     func(_ context.Context, cli CLI, deps Dependencies) int { return runCompletionFish(cli, deps.Out) },
		"version":             func(_ context.Context, _ CLI, deps Dependencies) int { return runVersion(deps.Out) },
		"__complete services": runCompleteServices,
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(ctx, cli, deps), true
	}

	return 1, false
}

// commandKey drops positional placeholders from a kong command path,
// turning "id <port>" into "id".
func commandKey(command string) string {
	words := strings.Fields(command)
	kept := words[:0]
	for _, word := range words {
		if strings.HasPrefix(word, "<") {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.NewSource == nil {
		deps.NewSource = fetch.New
	}
	return deps
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	rows := []ui.KeyValue{{Key: "Version", Value: version.Version}}
	if revision := version.Revision(); revision != "" {
		rows = append(rows, ui.KeyValue{Key: "Revision", Value: revision})
	}
	rows = append(rows, ui.KeyValue{Key: "User-Agent", Value: version.UserAgent()})

	var console ui.UserInterface = ui.NewWithEmoji(out, false)
	console.Block("", meta.AppName+" "+version.GetVersion(), rows)
	return 0
}

// runNoArgs prints a short usage summary. Running without a command is an error.
func runNoArgs(out io.Writer) int {
	console := ui.New(out)
	console.Info("Usage:")
	console.Info("  portid id PORT [-y]")
	console.Info("  portid list [-r] [SERVICE] [-y]")
	console.Info("  portid update-db [-y]")
	console.Info("")
	console.Info("Try: portid --help")
	return 1
}
