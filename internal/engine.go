package internal

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/gnolang/depwarn/internal/checker"
	"github.com/gnolang/depwarn/internal/nolint"
	tt "github.com/gnolang/depwarn/internal/types"
)

// RuleName is the name used to suppress deprecation hits with //nolint.
const RuleName = "deprecated"

// Engine finds deprecated calls in Go and Gno source files.
//
// The registry is fixed once the engine is configured, so Run may be
// called from several goroutines.
type Engine struct {
	registry     *checker.Registry
	ignoredPaths []string
}

// NewEngine creates an engine with the built-in rules plus the given ones.
// A configured rule overrides a built-in rule with the same name.
func NewEngine(rules []tt.DeprecationRule) (*Engine, error) {
	registry := checker.NewRegistry()
	for _, rule := range DefaultRules() {
		registry.RegisterRule(rule)
	}
	for i, rule := range rules {
		if rule.Package == "" || rule.Function == "" {
			return nil, fmt.Errorf("rule %d: package and function are required", i)
		}
		registry.RegisterRule(rule)
	}
	return &Engine{registry: registry}, nil
}

// Run returns a deprecation event for every deprecated call in filename.
func (e *Engine) Run(filename string) ([]tt.DeprecationEvent, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}
	return e.check(filename, node, fset)
}

// RunSource is Run for an in-memory buffer.
func (e *Engine) RunSource(source []byte) ([]tt.DeprecationEvent, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, "", source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}
	return e.check("", node, fset)
}

func (e *Engine) check(filename string, node *ast.File, fset *token.FileSet) ([]tt.DeprecationEvent, error) {
	calls, err := e.registry.Check(filename, node, fset)
	if err != nil {
		return nil, err
	}

	mgr := nolint.ParseComments(node, fset)
	events := make([]tt.DeprecationEvent, 0, len(calls))
	for _, call := range calls {
		if mgr.IsNolint(call.Pos, RuleName) {
			continue
		}
		events = append(events, call.Event())
	}
	return events, nil
}

// IgnorePath skips files matching pattern. Patterns use filepath.Match
// syntax and are tried against both the full path and the base name;
// a pattern ending in "/" skips everything under that directory.
func (e *Engine) IgnorePath(pattern string) {
	e.ignoredPaths = append(e.ignoredPaths, pattern)
}

// IgnoreFunc stops reporting the named deprecation ("pkg.Func" or
// "pkg.Type.Method"). It reports whether the name was registered.
func (e *Engine) IgnoreFunc(name string) bool {
	return e.registry.Remove(name)
}

// Rules lists the effective registry.
func (e *Engine) Rules() []tt.DeprecationRule {
	return e.registry.Rules()
}

func (e *Engine) isIgnoredPath(path string) bool {
	clean := filepath.ToSlash(filepath.Clean(path))
	for _, pattern := range e.ignoredPaths {
		if dir, ok := strings.CutSuffix(pattern, "/"); ok {
			// "dir/" matches the directory at any depth
			dir = filepath.ToSlash(filepath.Clean(dir))
			if strings.Contains("/"+clean+"/", "/"+dir+"/") {
				return true
			}
			continue
		}
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}
