// Package cfg builds control flow graphs for SwiftSC functions.
//
// Each node is a basic block: a run of statements without jumps.
// Branching statements (if, while) terminate their block and fan out
// to successor blocks; return statements edge straight to Exit. A
// require or assert whose condition folds to false ends its block with
// no successors, and a while whose condition folds to false gets no
// edge into its body. The graph backs unreachable-code and
// missing-return analyses and can be rendered as GraphViz DOT.
package cfg

import (
	"fmt"
	"io"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/internal/symbolic"
)

// Block is a basic block of the graph.
type Block struct {
	ID    int
	Stmts []ast.Stmt
}

// last returns the final statement of the block, or nil when empty.
func (b *Block) last() ast.Stmt {
	if len(b.Stmts) == 0 {
		return nil
	}
	return b.Stmts[len(b.Stmts)-1]
}

// CFG is the control flow graph of a single function.
type CFG struct {
	Entry *Block
	Exit  *Block

	blocks []*Block
	succs  map[*Block][]*Block
	preds  map[*Block][]*Block
}

// FromFunc constructs the control flow graph of fn.
func FromFunc(fn *ast.Function) *CFG {
	g := &CFG{
		succs: make(map[*Block][]*Block),
		preds: make(map[*Block][]*Block),
	}
	g.Entry = g.newBlock()
	g.Exit = g.newBlock()

	first := g.newBlock()
	g.addEdge(g.Entry, first)

	end := g.build(first, fn.Body.Stmts)
	if end != nil {
		g.addEdge(end, g.Exit)
	}
	return g
}

// Blocks returns all blocks including Entry and Exit.
func (g *CFG) Blocks() []*Block { return g.blocks }

// Succs returns the successor blocks of b.
func (g *CFG) Succs(b *Block) []*Block { return g.succs[b] }

// Preds returns the predecessor blocks of b.
func (g *CFG) Preds(b *Block) []*Block { return g.preds[b] }

func (g *CFG) newBlock() *Block {
	b := &Block{ID: len(g.blocks)}
	g.blocks = append(g.blocks, b)
	return b
}

func (g *CFG) addEdge(from, to *Block) {
	g.succs[from] = append(g.succs[from], to)
	g.preds[to] = append(g.preds[to], from)
}

// build threads stmts through cur and returns the block where control
// continues, or nil when every path has left the function.
func (g *CFG) build(cur *Block, stmts []ast.Stmt) *Block {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ReturnStmt:
			cur.Stmts = append(cur.Stmts, s)
			g.addEdge(cur, g.Exit)
			// statements after a return land in a fresh block with
			// no predecessors so reachability analysis can see them
			cur = g.newBlock()

		case *ast.IfStmt:
			cur.Stmts = append(cur.Stmts, s)

			then := g.newBlock()
			g.addEdge(cur, then)
			thenEnd := g.build(then, s.Then.Stmts)

			join := g.newBlock()
			if thenEnd != nil {
				g.addEdge(thenEnd, join)
			}

			if s.Else != nil {
				els := g.newBlock()
				g.addEdge(cur, els)
				elseEnd := g.build(els, s.Else.Stmts)
				if elseEnd != nil {
					g.addEdge(elseEnd, join)
				}
			} else {
				g.addEdge(cur, join)
			}
			cur = join

		case *ast.WhileStmt:
			cond := g.newBlock()
			g.addEdge(cur, cond)
			cond.Stmts = append(cond.Stmts, s)

			body := g.newBlock()
			if constantFalse(s.Cond) {
				// loop body can never run
				g.build(body, s.Body.Stmts)
			} else {
				g.addEdge(cond, body)
				bodyEnd := g.build(body, s.Body.Stmts)
				if bodyEnd != nil {
					g.addEdge(bodyEnd, cond)
				}
			}

			after := g.newBlock()
			g.addEdge(cond, after)
			cur = after

		case *ast.RequireStmt:
			cur.Stmts = append(cur.Stmts, s)
			if constantFalse(s.Cond) {
				// always reverts; control never continues
				cur = g.newBlock()
			}

		case *ast.AssertStmt:
			cur.Stmts = append(cur.Stmts, s)
			if constantFalse(s.Cond) {
				cur = g.newBlock()
			}

		default:
			cur.Stmts = append(cur.Stmts, stmt)
		}
	}
	return cur
}

func constantFalse(cond ast.Expr) bool {
	return symbolic.EvalBool(cond, symbolic.NewEnv()) == symbolic.False
}

// Reachable returns the set of blocks reachable from Entry.
func (g *CFG) Reachable() map[*Block]bool {
	seen := make(map[*Block]bool)
	stack := []*Block{g.Entry}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[b] {
			continue
		}
		seen[b] = true
		stack = append(stack, g.succs[b]...)
	}
	return seen
}

// UnreachableStmts returns the first statement of every non-empty
// block that cannot be reached from Entry.
func (g *CFG) UnreachableStmts() []ast.Stmt {
	reachable := g.Reachable()
	var dead []ast.Stmt
	for _, b := range g.blocks {
		if !reachable[b] && len(b.Stmts) > 0 {
			dead = append(dead, b.Stmts[0])
		}
	}
	return dead
}

// MissingReturnPaths returns the blocks from which control can reach
// Exit without executing a return statement. Only meaningful for
// functions declaring a result type.
func (g *CFG) MissingReturnPaths() []*Block {
	reachable := g.Reachable()
	var open []*Block
	for _, pred := range g.preds[g.Exit] {
		if !reachable[pred] {
			continue
		}
		if _, isReturn := pred.last().(*ast.ReturnStmt); !isReturn {
			open = append(open, pred)
		}
	}
	return open
}

// PrintDot writes the graph in GraphViz DOT format. The label function
// renders one statement; when nil a positional label is used.
func (g *CFG) PrintDot(w io.Writer, label func(ast.Stmt) string) {
	if label == nil {
		label = func(s ast.Stmt) string { return s.Pos().String() }
	}
	fmt.Fprintln(w, "digraph cfg {")
	reachable := g.Reachable()
	for _, b := range g.blocks {
		name := g.blockName(b)
		text := ""
		for _, s := range b.Stmts {
			text += label(s) + `\n`
		}
		attrs := fmt.Sprintf("label=%q", name+`\n`+text)
		if !reachable[b] && len(b.Stmts) > 0 {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(w, "    %s [%s];\n", name, attrs)
	}
	for _, b := range g.blocks {
		for _, succ := range g.succs[b] {
			fmt.Fprintf(w, "    %s -> %s;\n", g.blockName(b), g.blockName(succ))
		}
	}
	fmt.Fprintln(w, "}")
}

func (g *CFG) blockName(b *Block) string {
	switch b {
	case g.Entry:
		return "entry"
	case g.Exit:
		return "exit"
	}
	return fmt.Sprintf("b%d", b.ID)
}
