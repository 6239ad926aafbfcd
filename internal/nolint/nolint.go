package nolint

import (
	"go/ast"
	"go/token"
	"strings"
)

const nolintPrefix = "//nolint"

// Manager answers whether a position is covered by a nolint directive.
type Manager struct {
	scopes []scope
}

type scope struct {
	// empty means every rule
	rules     map[string]struct{}
	startLine int
	endLine   int
}

// ParseComments collects the nolint directives of a file.
//
// A directive before the package clause covers the whole file. An inline
// directive covers the statement on its line; a directive on its own line
// covers the statement or declaration that follows it.
func ParseComments(f *ast.File, fset *token.FileSet) *Manager {
	m := &Manager{}
	stmts := statementsByLine(f, fset)
	decls := make(map[int]ast.Decl, len(f.Decls))
	for _, d := range f.Decls {
		decls[fset.Position(d.Pos()).Line] = d
	}
	packageLine := fset.Position(f.Package).Line

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			rules, ok := parseDirective(c.Text)
			if !ok {
				continue
			}
			line := fset.Position(c.Slash).Line
			s := scope{rules: rules, startLine: line, endLine: line}

			switch {
			case line < packageLine:
				s.startLine = 1
				s.endLine = fset.Position(f.End()).Line
			case stmts[line] != nil:
				s.startLine = fset.Position(stmts[line].Pos()).Line
				s.endLine = fset.Position(stmts[line].End()).Line
			case stmts[line+1] != nil:
				s.endLine = fset.Position(stmts[line+1].End()).Line
			case decls[line+1] != nil:
				s.endLine = fset.Position(decls[line+1].End()).Line
			}
			m.scopes = append(m.scopes, s)
		}
	}
	return m
}

// IsNolint reports whether rule is suppressed at pos.
func (m *Manager) IsNolint(pos token.Position, rule string) bool {
	if m == nil {
		return false
	}
	for _, s := range m.scopes {
		if pos.Line < s.startLine || pos.Line > s.endLine {
			continue
		}
		if len(s.rules) == 0 {
			return true
		}
		if _, ok := s.rules[rule]; ok {
			return true
		}
	}
	return false
}

// parseDirective accepts "//nolint" and "//nolint:a,b".
func parseDirective(text string) (map[string]struct{}, bool) {
	rest, ok := strings.CutPrefix(text, nolintPrefix)
	if !ok {
		return nil, false
	}
	rules := make(map[string]struct{})
	if rest == "" {
		return rules, true
	}
	if rest[0] != ':' {
		return nil, false
	}
	for _, r := range strings.Split(rest[1:], ",") {
		if r = strings.TrimSpace(r); r != "" {
			rules[r] = struct{}{}
		}
	}
	if len(rules) == 0 {
		return nil, false
	}
	return rules, true
}

func statementsByLine(f *ast.File, fset *token.FileSet) map[int]ast.Stmt {
	stmts := make(map[int]ast.Stmt)
	ast.Inspect(f, func(n ast.Node) bool {
		stmt, ok := n.(ast.Stmt)
		if !ok {
			return true
		}
		if _, isBlock := stmt.(*ast.BlockStmt); isBlock {
			return true
		}
		line := fset.Position(stmt.Pos()).Line
		if _, exists := stmts[line]; !exists {
			stmts[line] = stmt
		}
		return true
	})
	return stmts
}
