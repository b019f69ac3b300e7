package internal

import (
	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/internal/checks"
	"github.com/swiftsc-lang/sclint/internal/symtab"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given program and returns a slice of Issues.
	Check(filename string, prog *ast.Program) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	// Severity returns the rule's current severity.
	Severity() tt.Severity

	// SetSeverity overrides the severity of every issue the rule reports.
	SetSeverity(tt.Severity)
}

// baseRule carries the severity shared by all rules. A severity set via
// configuration is stamped onto every issue the rule reports; otherwise
// each issue keeps the level the detector chose.
type baseRule struct {
	severity   tt.Severity
	configured bool
}

func (r *baseRule) Severity() tt.Severity { return r.severity }

func (r *baseRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
	r.configured = true
}

func (r *baseRule) apply(issues []tt.Issue) []tt.Issue {
	if !r.configured {
		return issues
	}
	for i := range issues {
		issues[i].Severity = r.severity
	}
	return issues
}

type UninitializedStorageRule struct{ baseRule }

func NewUninitializedStorageRule() LintRule {
	return &UninitializedStorageRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *UninitializedStorageRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectUninitializedStorage(filename, prog)
	return r.apply(issues), err
}

func (r *UninitializedStorageRule) Name() string {
	return "uninitialized-storage"
}

// UncheckedArithmeticRule exempts literal-only operands by default;
// Strict restores flagging of every + - * occurrence.
type UncheckedArithmeticRule struct {
	baseRule
	Strict bool
}

func NewUncheckedArithmeticRule() LintRule {
	return &UncheckedArithmeticRule{baseRule: baseRule{severity: tt.SeverityInfo}}
}

func (r *UncheckedArithmeticRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectUncheckedArithmetic(filename, prog, r.Strict)
	return r.apply(issues), err
}

func (r *UncheckedArithmeticRule) Name() string {
	return "unchecked-arithmetic"
}

type ReentrancyRule struct{ baseRule }

func NewReentrancyRule() LintRule {
	return &ReentrancyRule{baseRule{severity: tt.SeverityError}}
}

func (r *ReentrancyRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectReentrancy(filename, prog)
	return r.apply(issues), err
}

func (r *ReentrancyRule) Name() string {
	return "reentrancy"
}

type DivisionByZeroRule struct{ baseRule }

func NewDivisionByZeroRule() LintRule {
	return &DivisionByZeroRule{baseRule{severity: tt.SeverityError}}
}

func (r *DivisionByZeroRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectDivisionByZero(filename, prog)
	return r.apply(issues), err
}

func (r *DivisionByZeroRule) Name() string {
	return "division-by-zero"
}

// UndefinedSymbolRule resolves identifiers against the program-wide
// symbol table when one is available.
type UndefinedSymbolRule struct {
	baseRule
	Table *symtab.Table
}

func NewUndefinedSymbolRule() LintRule {
	return &UndefinedSymbolRule{baseRule: baseRule{severity: tt.SeverityError}}
}

func (r *UndefinedSymbolRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectUndefinedSymbols(filename, prog, r.Table)
	return r.apply(issues), err
}

func (r *UndefinedSymbolRule) Name() string {
	return "undefined-symbol"
}

type DuplicateDeclarationRule struct{ baseRule }

func NewDuplicateDeclarationRule() LintRule {
	return &DuplicateDeclarationRule{baseRule{severity: tt.SeverityError}}
}

func (r *DuplicateDeclarationRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectDuplicateDeclarations(filename, prog)
	return r.apply(issues), err
}

func (r *DuplicateDeclarationRule) Name() string {
	return "duplicate-declaration"
}

type UninitializedLocalRule struct{ baseRule }

func NewUninitializedLocalRule() LintRule {
	return &UninitializedLocalRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *UninitializedLocalRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectUninitializedLocals(filename, prog)
	return r.apply(issues), err
}

func (r *UninitializedLocalRule) Name() string {
	return "uninitialized-local"
}

type ArityMismatchRule struct{ baseRule }

func NewArityMismatchRule() LintRule {
	return &ArityMismatchRule{baseRule{severity: tt.SeverityError}}
}

func (r *ArityMismatchRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectArityMismatch(filename, prog)
	return r.apply(issues), err
}

func (r *ArityMismatchRule) Name() string {
	return "arity-mismatch"
}

// The two taint rules share one flow analysis; each keeps the issues
// carrying its own name so config and --ignore address the names the
// output shows.

type TaintStorageWriteRule struct{ baseRule }

func NewTaintStorageWriteRule() LintRule {
	return &TaintStorageWriteRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *TaintStorageWriteRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectTaintFlows(filename, prog)
	return r.apply(filterByRule(issues, r.Name())), err
}

func (r *TaintStorageWriteRule) Name() string {
	return "taint-storage-write"
}

type TaintExternalCallRule struct{ baseRule }

func NewTaintExternalCallRule() LintRule {
	return &TaintExternalCallRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *TaintExternalCallRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectTaintFlows(filename, prog)
	return r.apply(filterByRule(issues, r.Name())), err
}

func (r *TaintExternalCallRule) Name() string {
	return "taint-external-call"
}

func filterByRule(issues []tt.Issue, name string) []tt.Issue {
	filtered := issues[:0]
	for _, issue := range issues {
		if issue.Rule == name {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

type GasLimitRule struct {
	baseRule
	Threshold int64
}

func NewGasLimitRule() LintRule {
	return &GasLimitRule{
		baseRule:  baseRule{severity: tt.SeverityWarning},
		Threshold: checks.DefaultGasThreshold,
	}
}

func (r *GasLimitRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectGasLimit(filename, prog, r.Threshold)
	return r.apply(issues), err
}

func (r *GasLimitRule) Name() string {
	return "gas-limit"
}

type ConstantConditionRule struct{ baseRule }

func NewConstantConditionRule() LintRule {
	return &ConstantConditionRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *ConstantConditionRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectConstantConditions(filename, prog)
	return r.apply(issues), err
}

func (r *ConstantConditionRule) Name() string {
	return "constant-condition"
}

type UnreachableCodeRule struct{ baseRule }

func NewUnreachableCodeRule() LintRule {
	return &UnreachableCodeRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *UnreachableCodeRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectUnreachableCode(filename, prog)
	return r.apply(issues), err
}

func (r *UnreachableCodeRule) Name() string {
	return "unreachable-code"
}

type MissingReturnRule struct{ baseRule }

func NewMissingReturnRule() LintRule {
	return &MissingReturnRule{baseRule{severity: tt.SeverityError}}
}

func (r *MissingReturnRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectMissingReturn(filename, prog)
	return r.apply(issues), err
}

func (r *MissingReturnRule) Name() string {
	return "missing-return"
}

type CyclomaticComplexityRule struct {
	baseRule
	Threshold int
}

func NewCyclomaticComplexityRule() LintRule {
	return &CyclomaticComplexityRule{
		baseRule:  baseRule{severity: tt.SeverityWarning},
		Threshold: checks.DefaultComplexityThreshold,
	}
}

func (r *CyclomaticComplexityRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectHighCyclomaticComplexity(filename, prog, r.Threshold)
	return r.apply(issues), err
}

func (r *CyclomaticComplexityRule) Name() string {
	return "high-cyclomatic-complexity"
}

type UnusedFunctionRule struct{ baseRule }

func NewUnusedFunctionRule() LintRule {
	return &UnusedFunctionRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *UnusedFunctionRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectUnusedFunctions(filename, prog)
	return r.apply(issues), err
}

func (r *UnusedFunctionRule) Name() string {
	return "unused-function"
}

type UnnecessaryElseRule struct{ baseRule }

func NewUnnecessaryElseRule() LintRule {
	return &UnnecessaryElseRule{baseRule{severity: tt.SeverityInfo}}
}

func (r *UnnecessaryElseRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	issues, err := checks.DetectUnnecessaryElse(filename, prog)
	return r.apply(issues), err
}

func (r *UnnecessaryElseRule) Name() string {
	return "unnecessary-else"
}
