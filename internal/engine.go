package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/internal/nolint"
	"github.com/swiftsc-lang/sclint/internal/symtab"
	tt "github.com/swiftsc-lang/sclint/internal/types"
	"github.com/swiftsc-lang/sclint/parser"
	"github.com/swiftsc-lang/sclint/token"
)

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	ignoredPaths []string
	rules        map[string]LintRule
	table        *symtab.Table
	cache        *Cache
}

// NewEngine creates a new lint engine. When rootDir is non-empty a
// program-wide symbol table is built from every .swsc file under it so
// cross-file references resolve.
func NewEngine(rootDir string, source []byte, rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{}

	if rootDir != "" {
		table, err := symtab.Build(rootDir)
		if err != nil {
			return nil, fmt.Errorf("building symbol table: %w", err)
		}
		engine.table = table
	} else if source != nil {
		engine.table = symtab.New()
		if prog, _, err := parser.ParseFile("", source); err == nil {
			engine.table.AddProgram("", prog)
		}
	}

	engine.applyRules(rules)
	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"uninitialized-storage":      NewUninitializedStorageRule,
	"unchecked-arithmetic":       NewUncheckedArithmeticRule,
	"reentrancy":                 NewReentrancyRule,
	"division-by-zero":           NewDivisionByZeroRule,
	"undefined-symbol":           NewUndefinedSymbolRule,
	"duplicate-declaration":      NewDuplicateDeclarationRule,
	"uninitialized-local":        NewUninitializedLocalRule,
	"arity-mismatch":             NewArityMismatchRule,
	"taint-storage-write":        NewTaintStorageWriteRule,
	"taint-external-call":        NewTaintExternalCallRule,
	"gas-limit":                  NewGasLimitRule,
	"constant-condition":         NewConstantConditionRule,
	"unreachable-code":           NewUnreachableCodeRule,
	"missing-return":             NewMissingReturnRule,
	"high-cyclomatic-complexity": NewCyclomaticComplexityRule,
	"unused-function":            NewUnusedFunctionRule,
	"unnecessary-else":           NewUnnecessaryElseRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity
	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil {
				// Unknown rule, continue to the next one
				continue
			}
			newRule := newRuleCstr()
			newRule.SetSeverity(rule.Severity)
			e.rules[key] = newRule
		} else {
			if rule.Severity == tt.SeverityOff {
				e.IgnoreRule(key)
			}
			r.SetSeverity(rule.Severity)
		}
	}

	// symbol resolution needs the program-wide table
	if r, ok := e.rules["undefined-symbol"].(*UndefinedSymbolRule); ok {
		r.Table = e.table
	}
}

func (e *Engine) registerDefaultRules() {
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// Rule returns the registered rule with the given name, or nil.
func (e *Engine) Rule(name string) LintRule {
	return e.findRule(name)
}

// SetCache attaches a result cache consulted before each Run.
func (e *Engine) SetCache(cache *Cache) {
	e.cache = cache
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename); ok {
			return issues, nil
		}
	}

	prog, comments, err := parser.ParseFile(filename, nil)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}

	issues, err := e.run(filename, prog, comments)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		_ = e.cache.Set(filename, issues)
	}
	return issues, nil
}

// RunSource applies all lint rules to the given source and returns a slice of Issues.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	prog, comments, err := parser.ParseFile("", source)
	if err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}
	return e.run("", prog, comments)
}

// run keeps the nolint manager local so concurrent Runs over
// different files cannot filter against each other's comments.
func (e *Engine) run(filename string, prog *ast.Program, comments []token.Comment) ([]tt.Issue, error) {
	nolintMgr := nolint.ParseComments(prog, comments)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			if e.ignoredRules[r.Name()] {
				return
			}
			issues, err := r.Check(filename, prog)
			if err != nil {
				return
			}

			nolinted := filterNolintIssues(nolintMgr, issues)

			mu.Lock()
			allIssues = append(allIssues, nolinted...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	return allIssues, nil
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath excludes a file or directory prefix from analysis.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

func (e *Engine) isIgnoredPath(filename string) bool {
	cleaned := filepath.Clean(filename)
	for _, prefix := range e.ignoredPaths {
		if cleaned == prefix || strings.HasPrefix(cleaned, prefix+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// filterNolintIssues filters issues based on nolint comments.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	if mgr == nil {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		pos := token.Position{
			Filename: issue.Filename,
			Line:     issue.Start.Line,
		}
		if !mgr.IsNolint(pos, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
