// Where: internal/architecture/layering_test.go
// What: Layer and import-cycle guards for internal packages.
// Why: Keep the domain free of I/O and commands at the top of the graph.
package architecture

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const internalImportPrefix = "github.com/antipatico/portid/internal/"

// forbiddenLayers lists, per source layer, the layers it must not import.
var forbiddenLayers = map[string][]string{
	"domain":  {"infra", "usecase", "commands", "logging"},
	"usecase": {"commands"},
	"infra":   {"usecase", "commands"},
	"logging": {"domain", "infra", "usecase", "commands"},
}

// internalImport is one import of an internal package by a non-test file.
type internalImport struct {
	file      string // path relative to internal/
	sourcePkg string // full import path of the importing package
	target    string // full import path of the imported package
}

func scanInternalImports(t *testing.T) []internalImport {
	t.Helper()

	internalRoot := resolveInternalRoot(t)
	fset := token.NewFileSet()
	imports := []internalImport{}

	err := filepath.WalkDir(internalRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(internalRoot, path)
		if err != nil {
			return err
		}
		relDir := filepath.ToSlash(filepath.Dir(rel))
		if relDir == "." {
			return nil
		}

		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range file.Imports {
			importPath := strings.Trim(imp.Path.Value, "\"")
			if !strings.HasPrefix(importPath, internalImportPrefix) {
				continue
			}
			imports = append(imports, internalImport{
				file:      filepath.ToSlash(rel),
				sourcePkg: internalImportPrefix + relDir,
				target:    importPath,
			})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("scan internal packages: %v", err)
	}
	return imports
}

func TestLayeringRules(t *testing.T) {
	t.Parallel()

	violations := []string{}
	for _, imp := range scanInternalImports(t) {
		if violatesRule(topLayer(imp.file), topLayerFromImport(imp.target)) {
			violations = append(violations, imp.file+" -> "+imp.target)
		}
	}
	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatalf("layering rule violations:\n%s", strings.Join(violations, "\n"))
	}
}

func TestNoInternalImportCycles(t *testing.T) {
	t.Parallel()

	graph := map[string]map[string]struct{}{}
	for _, imp := range scanInternalImports(t) {
		if _, ok := graph[imp.sourcePkg]; !ok {
			graph[imp.sourcePkg] = map[string]struct{}{}
		}
		graph[imp.sourcePkg][imp.target] = struct{}{}
	}

	if cycles := detectCycles(graph); len(cycles) > 0 {
		sort.Strings(cycles)
		t.Fatalf("internal import cycles detected:\n%s", strings.Join(cycles, "\n"))
	}
}

func TestViolatesRule(t *testing.T) {
	tests := []struct {
		source, target string
		want           bool
	}{
		{"domain", "infra", true},
		{"domain", "domain", false},
		{"usecase", "infra", false},
		{"usecase", "commands", true},
		{"infra", "usecase", true},
		{"commands", "usecase", false},
		{"meta", "commands", false},
	}
	for _, tt := range tests {
		if got := violatesRule(tt.source, tt.target); got != tt.want {
			t.Fatalf("violatesRule(%q, %q) = %v, want %v", tt.source, tt.target, got, tt.want)
		}
	}
}

func TestDetectCycles(t *testing.T) {
	graph := map[string]map[string]struct{}{
		"a": {"b": {}},
		"b": {"c": {}},
		"c": {"a": {}},
		"d": {"a": {}},
	}
	cycles := detectCycles(graph)
	if len(cycles) != 1 || cycles[0] != "a -> b -> c -> a" {
		t.Fatalf("cycles = %v", cycles)
	}
}

func resolveInternalRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Clean(filepath.Join(wd, ".."))
}

func topLayer(relPath string) string {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	return strings.TrimSpace(parts[0])
}

func topLayerFromImport(importPath string) string {
	if !strings.HasPrefix(importPath, internalImportPrefix) {
		return ""
	}
	return topLayer(strings.TrimPrefix(importPath, internalImportPrefix))
}

func violatesRule(sourceLayer, importLayer string) bool {
	if sourceLayer == importLayer {
		return false
	}
	for _, forbidden := range forbiddenLayers[sourceLayer] {
		if forbidden == importLayer {
			return true
		}
	}
	return false
}

// detectCycles walks the graph depth-first in sorted order and reports each
// cycle once as "a -> b -> a".
func detectCycles(graph map[string]map[string]struct{}) []string {
	const (
		unvisited = iota
		visiting
		done
	)

	state := map[string]int{}
	stack := []string{}
	seen := map[string]struct{}{}
	cycles := []string{}

	var walk func(string)
	walk = func(node string) {
		state[node] = visiting
		stack = append(stack, node)

		for _, next := range sortedSet(graph[node]) {
			switch state[next] {
			case unvisited:
				walk(next)
			case visiting:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] != next {
						continue
					}
					cycle := strings.Join(append(append([]string{}, stack[i:]...), next), " -> ")
					if _, dup := seen[cycle]; !dup {
						seen[cycle] = struct{}{}
						cycles = append(cycles, cycle)
					}
					break
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[node] = done
	}

	nodes := make([]string, 0, len(graph))
	for node := range graph {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	for _, node := range nodes {
		if state[node] == unvisited {
			walk(node)
		}
	}
	return cycles
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
