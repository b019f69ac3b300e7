// Package internal provides the core functionality of the SwiftSC analyzer.
//
// This package implements a flexible and extensible analysis engine over
// parsed SwiftSC contracts, covering security checks, semantic validation,
// gas estimation and control flow analysis. It is designed to be easily
// extendable with custom rules while providing a set of default rules out
// of the box.
//
// Key components:
//
// Engine: The main analysis engine that coordinates the linting process.
// It manages a collection of rules and applies them concurrently to each
// parsed source file.
//
// LintRule: An interface that defines the contract for all rules. Each
// rule wraps one detector from internal/checks and carries a configurable
// severity.
//
// Cache: Persists per-file results keyed by content hash so unchanged
// files are not re-analyzed across runs.
//
// Watcher: Re-runs the engine whenever a watched .swsc file changes.
//
// SourceCode: A simple structure to represent the content of a source
// file as a collection of lines, used by the issue formatter.
//
// Usage:
//
//	engine, err := internal.NewEngine(".", nil, nil)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("path/to/contract.swsc")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("Found issue: %s at %s\n", issue.Message, issue.Start)
//	}
//
// This package is intended for internal use within the analyzer and should
// not be imported by external packages.
package internal
