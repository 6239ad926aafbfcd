package checker

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"
	"strconv"
	"strings"

	tt "github.com/gnolang/depwarn/internal/types"
)

// PkgFuncMap maps package paths to function names and their alternatives
type PkgFuncMap map[string]map[string]string

// PkgTypeMethodMap maps package paths to types and their methods with alternatives
type PkgTypeMethodMap map[string]map[string]map[string]string

// DeprecatedCall is a call site of a registered deprecated function or method.
type DeprecatedCall struct {
	Package     string
	Function    string
	Alternative string
	Pos         token.Position
}

// Event converts the call site into a deprecation event.
func (c DeprecatedCall) Event() tt.DeprecationEvent {
	return tt.DeprecationEvent{
		Method:          qualify(c.Package, c.Function),
		AlternateMethod: c.Alternative,
		CalledFrom:      c.Pos.String(),
	}
}

// Registry holds the deprecated functions and methods to look for.
type Registry struct {
	funcs   PkgFuncMap
	methods PkgTypeMethodMap
}

func NewRegistry() *Registry {
	return &Registry{
		funcs:   make(PkgFuncMap),
		methods: make(PkgTypeMethodMap),
	}
}

// Register adds a deprecated package-level function.
func (r *Registry) Register(pkgPath, funcName, alternative string) {
	if _, ok := r.funcs[pkgPath]; !ok {
		r.funcs[pkgPath] = make(map[string]string)
	}
	r.funcs[pkgPath][funcName] = alternative
}

// RegisterMethod adds a deprecated method of typeName in pkgPath.
func (r *Registry) RegisterMethod(pkgPath, typeName, methodName, alternative string) {
	if _, ok := r.methods[pkgPath]; !ok {
		r.methods[pkgPath] = make(map[string]map[string]string)
	}
	if _, ok := r.methods[pkgPath][typeName]; !ok {
		r.methods[pkgPath][typeName] = make(map[string]string)
	}
	r.methods[pkgPath][typeName][methodName] = alternative
}

// RegisterRule adds a rule as either a function or a method.
func (r *Registry) RegisterRule(rule tt.DeprecationRule) {
	if rule.Type == "" {
		r.Register(rule.Package, rule.Function, rule.Alternative)
		return
	}
	r.RegisterMethod(rule.Package, rule.Type, rule.Function, rule.Alternative)
}

// Remove drops a registered entry by its qualified name ("pkg.Func" or
// "pkg.Type.Method"). It reports whether anything was removed.
func (r *Registry) Remove(name string) bool {
	for _, rule := range r.Rules() {
		if rule.Name() != name {
			continue
		}
		if rule.Type == "" {
			delete(r.funcs[rule.Package], rule.Function)
		} else {
			delete(r.methods[rule.Package][rule.Type], rule.Function)
		}
		return true
	}
	return false
}

// Rules lists every registered entry, sorted by qualified name.
func (r *Registry) Rules() []tt.DeprecationRule {
	var rules []tt.DeprecationRule
	for pkg, funcs := range r.funcs {
		for fn, alt := range funcs {
			rules = append(rules, tt.DeprecationRule{Package: pkg, Function: fn, Alternative: alt})
		}
	}
	for pkg, types := range r.methods {
		for typ, methods := range types {
			for m, alt := range methods {
				rules = append(rules, tt.DeprecationRule{Package: pkg, Type: typ, Function: m, Alternative: alt})
			}
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name() < rules[j].Name() })
	return rules
}

// Check walks the file and returns every call to a registered deprecation.
func (r *Registry) Check(filename string, node *ast.File, fset *token.FileSet) ([]DeprecatedCall, error) {
	aliases, err := packageAliases(node)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	var found []DeprecatedCall
	ast.Inspect(node, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if dc, ok := r.checkCall(call, aliases); ok {
			dc.Pos = fset.Position(call.Pos())
			found = append(found, dc)
		}
		return true
	})
	return found, nil
}

func packageAliases(node *ast.File) (map[string]string, error) {
	aliases := make(map[string]string, len(node.Imports))
	for _, imp := range node.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return nil, fmt.Errorf("error unquoting import path: %w", err)
		}
		if imp.Name != nil {
			aliases[imp.Name.Name] = path
			continue
		}
		aliases[path[strings.LastIndex(path, "/")+1:]] = path
	}
	return aliases, nil
}

func (r *Registry) checkCall(call *ast.CallExpr, aliases map[string]string) (DeprecatedCall, bool) {
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		// dot imports only
		if pkg, ok := aliases["."]; ok {
			return r.lookupFunc(pkg, fun.Name)
		}
	case *ast.SelectorExpr:
		if ident, ok := fun.X.(*ast.Ident); ok {
			if pkg, ok := aliases[ident.Name]; ok {
				return r.lookupFunc(pkg, fun.Sel.Name)
			}
		}
		return r.lookupMethod(fun, aliases)
	}
	return DeprecatedCall{}, false
}

func (r *Registry) lookupFunc(pkg, name string) (DeprecatedCall, bool) {
	alt, ok := r.funcs[pkg][name]
	if !ok {
		return DeprecatedCall{}, false
	}
	return DeprecatedCall{Package: pkg, Function: name, Alternative: alt}, true
}

func (r *Registry) lookupMethod(fun *ast.SelectorExpr, aliases map[string]string) (DeprecatedCall, bool) {
	method := fun.Sel.Name

	if pkg, typ := inferType(fun.X, aliases); typ != "" {
		if alt, ok := r.methods[pkg][typ][method]; ok {
			return DeprecatedCall{Package: pkg, Function: typ + "." + method, Alternative: alt}, true
		}
		return DeprecatedCall{}, false
	}

	// Receiver type unknown: fall back to a match on the method name alone,
	// limited to packages the file imports, in sorted order so the result
	// is stable.
	imported := make(map[string]bool, len(aliases))
	for _, path := range aliases {
		imported[path] = true
	}
	for _, rule := range r.Rules() {
		if rule.Type != "" && rule.Function == method && imported[rule.Package] {
			return DeprecatedCall{Package: rule.Package, Function: rule.Type + "." + method, Alternative: rule.Alternative}, true
		}
	}
	return DeprecatedCall{}, false
}

// inferType resolves the package and type name of simple receiver
// expressions: T{}, pkg.T{}, &pkg.T{}, pkg.T(x) and (*pkg.T)(x).
func inferType(expr ast.Expr, aliases map[string]string) (pkg, typ string) {
	switch e := expr.(type) {
	case *ast.SelectorExpr:
		if id, ok := e.X.(*ast.Ident); ok {
			if path, ok := aliases[id.Name]; ok {
				return path, e.Sel.Name
			}
		}
	case *ast.CompositeLit:
		// T{} names a type declared in this file
		if id, ok := e.Type.(*ast.Ident); ok {
			return "", id.Name
		}
		return inferType(e.Type, aliases)
	case *ast.UnaryExpr:
		if e.Op == token.AND {
			return inferType(e.X, aliases)
		}
	case *ast.StarExpr:
		return inferType(e.X, aliases)
	case *ast.ParenExpr:
		return inferType(e.X, aliases)
	case *ast.CallExpr:
		// conversion: pkg.T(x)
		if len(e.Args) == 1 {
			return inferType(e.Fun, aliases)
		}
	}
	return "", ""
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
