// Package symtab builds a program-wide symbol table over SwiftSC
// sources so analyses can resolve names across files.
package symtab

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/parser"
)

// SymbolKind classifies a declared symbol.
type SymbolKind string

const (
	KindContract SymbolKind = "contract"
	KindFunction SymbolKind = "func"
	KindEvent    SymbolKind = "event"
	KindStruct   SymbolKind = "struct"
	KindStorage  SymbolKind = "storage"
)

// SymbolInfo describes a declared symbol and where it lives.
type SymbolInfo struct {
	FilePath string
	Contract string // enclosing contract, empty for top-level symbols
	Kind     SymbolKind
	Public   bool
	Arity    int // parameter count for functions and events
}

// Table is a concurrency-safe symbol table.
type Table struct {
	symbols map[string]SymbolInfo
	mutex   sync.RWMutex
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{
		symbols: make(map[string]SymbolInfo),
	}
}

// Build walks rootDir and indexes every declaration found in .swsc files.
// Files that fail to parse are skipped; resolution simply degrades for
// symbols they would have contributed.
func Build(rootDir string) (*Table, error) {
	st := New()
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".swsc") {
			prog, _, err := parser.ParseFile(path, nil)
			if err != nil {
				return nil
			}
			st.AddProgram(path, prog)
		}
		return nil
	})
	return st, err
}

// AddProgram indexes all declarations of a parsed program.
func (st *Table) AddProgram(path string, prog *ast.Program) {
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.Contract:
			st.add(it.Name, SymbolInfo{FilePath: path, Kind: KindContract, Public: true})
			for _, member := range it.Members {
				switch m := member.(type) {
				case *ast.Function:
					st.add(qualify(it.Name, m.Name), SymbolInfo{
						FilePath: path,
						Contract: it.Name,
						Kind:     KindFunction,
						Public:   m.Public,
						Arity:    len(m.Params),
					})
				case *ast.EventDecl:
					st.add(qualify(it.Name, m.Name), SymbolInfo{
						FilePath: path,
						Contract: it.Name,
						Kind:     KindEvent,
						Public:   true,
						Arity:    len(m.Params),
					})
				case *ast.StorageBlock:
					for _, f := range m.Fields {
						st.add(qualify(it.Name, f.Name), SymbolInfo{
							FilePath: path,
							Contract: it.Name,
							Kind:     KindStorage,
						})
					}
				}
			}
		case *ast.Function:
			st.add(it.Name, SymbolInfo{
				FilePath: path,
				Kind:     KindFunction,
				Public:   it.Public,
				Arity:    len(it.Params),
			})
		case *ast.StructDecl:
			st.add(it.Name, SymbolInfo{FilePath: path, Kind: KindStruct, Public: true})
		}
	}
}

func qualify(contract, name string) string {
	return contract + "." + name
}

func (st *Table) add(name string, info SymbolInfo) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.symbols[name] = info
}

// IsDefined reports whether a symbol name is declared anywhere in the
// indexed program.
func (st *Table) IsDefined(name string) bool {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	_, exists := st.symbols[name]
	return exists
}

// Lookup returns the symbol info for a top-level or Contract.name key.
func (st *Table) Lookup(name string) (SymbolInfo, bool) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	info, exists := st.symbols[name]
	return info, exists
}

// Method resolves a method or event of a contract.
func (st *Table) Method(contract, name string) (SymbolInfo, bool) {
	return st.Lookup(qualify(contract, name))
}

// All returns a copy of every indexed symbol.
func (st *Table) All() map[string]SymbolInfo {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	out := make(map[string]SymbolInfo, len(st.symbols))
	for k, v := range st.symbols {
		out[k] = v
	}
	return out
}
