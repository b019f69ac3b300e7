// Package nolint interprets //nolint comments in SwiftSC sources and
// decides which reported issues they suppress.
package nolint

import (
	"fmt"
	"strings"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/token"
)

const nolintPrefix = "//nolint"

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	// scopes maps filename to a slice of nolint scopes.
	scopes map[string][]nolintScope
}

// nolintScope represents a range in the code where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start token.Position
	end   token.Position
}

// ParseComments scans the collected comments of a parsed program and
// returns a Manager holding every nolint scope.
func ParseComments(prog *ast.Program, comments []token.Comment) *Manager {
	manager := Manager{
		scopes: make(map[string][]nolintScope, len(comments)),
	}
	stmtMap := indexStatementsByLine(prog)
	firstItemLine := firstDeclarationLine(prog)

	for _, comment := range comments {
		ns, err := parseComment(comment, prog, stmtMap, firstItemLine)
		if err != nil {
			// ignore invalid nolint comments
			continue
		}
		filename := ns.start.Filename
		manager.scopes[filename] = append(manager.scopes[filename], ns)
	}
	return &manager
}

// parseComment parses a single nolint comment and determines its scope.
func parseComment(
	comment token.Comment,
	prog *ast.Program,
	stmtMap map[int]ast.Stmt,
	firstItemLine int,
) (nolintScope, error) {
	var ns nolintScope
	text := comment.Text

	if !strings.HasPrefix(text, nolintPrefix) {
		return ns, fmt.Errorf("invalid nolint comment")
	}

	rest := text[len(nolintPrefix):]

	// A nolint comment either lists rules after a colon or, with no
	// rules given, applies to every rule.
	if len(rest) > 0 && rest[0] != ':' {
		return ns, fmt.Errorf("invalid nolint comment format")
	}

	if len(rest) > 0 && rest[0] == ':' {
		rest = strings.TrimPrefix(rest, ":")
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return ns, fmt.Errorf("invalid nolint comment: no rules specified after colon")
		}
	}
	ns.rules = parseIgnoreRuleNames(rest)
	pos := comment.Pos

	// A comment above the first declaration suppresses for the whole file.
	if pos.Line < firstItemLine {
		ns.start = prog.Pos()
		ns.end = prog.End()
		ns.start.Filename = pos.Filename
		return ns, nil
	}

	// Inline comments apply to the statement sharing their line.
	if stmt, exists := stmtMap[pos.Line]; exists && pos.Offset > stmt.Pos().Offset {
		ns.start = stmt.Pos()
		ns.end = stmt.End()
		return ns, nil
	}

	// A standalone comment applies to the statement on the next line,
	// including the comment line itself.
	if stmt, exists := stmtMap[pos.Line+1]; exists {
		ns.start = pos
		ns.end = stmt.End()
		return ns, nil
	}

	// A comment directly above a function declaration suppresses the
	// whole function.
	if fn := functionStartingAtLine(prog, pos.Line+1); fn != nil {
		ns.start = pos
		ns.end = fn.End()
		return ns, nil
	}

	// default: the comment line only
	ns.start = pos
	ns.end = pos
	return ns, nil
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// indexStatementsByLine traverses the program once and maps each line to
// its first statement.
func indexStatementsByLine(prog *ast.Program) map[int]ast.Stmt {
	stmtMap := make(map[int]ast.Stmt)
	ast.Inspect(prog, func(n ast.Node) bool {
		if stmt, ok := n.(ast.Stmt); ok {
			line := stmt.Pos().Line
			if _, exists := stmtMap[line]; !exists {
				stmtMap[line] = stmt
			}
		}
		return true
	})
	return stmtMap
}

// firstDeclarationLine returns the line of the first top-level item, or
// 1 for an empty program.
func firstDeclarationLine(prog *ast.Program) int {
	if len(prog.Items) == 0 {
		return 1
	}
	return prog.Items[0].Pos().Line
}

// functionStartingAtLine finds a function, contract member or init
// declared exactly at the given line.
func functionStartingAtLine(prog *ast.Program, line int) *ast.Function {
	var found *ast.Function
	ast.Inspect(prog, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if fn, ok := n.(*ast.Function); ok && fn.Pos().Line == line {
			found = fn
			return false
		}
		return true
	})
	return found
}

// IsNolint checks if a given position and rule are nolinted.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if pos.Line < ns.start.Line || pos.Line > ns.end.Line {
			continue
		}
		// an empty rule list suppresses every rule
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
