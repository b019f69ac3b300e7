package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/internal/analysis/cfg"
	"github.com/swiftsc-lang/sclint/parser"
)

// variable for flags
var (
	funcName string
	output   string
)

var cfgCmd = &cobra.Command{
	Use:   "cfg [paths...]",
	Short: "Run control flow graph analysis",
	Long: `Outputs the Control Flow Graph (CFG) of the specified function in
GraphViz DOT format.
Example) sclint cfg --func withdraw bank.swsc`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		if funcName == "" {
			fmt.Println("error: Please provide a function name with --func")
			os.Exit(1)
		}
		if err := runCFGAnalysis(logger, args, funcName, output); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	cfgCmd.Flags().StringVar(&funcName, "func", "", "Function name for CFG analysis")
	cfgCmd.Flags().StringVarP(&output, "output", "o", "", "Output path for the DOT file")
}

func runCFGAnalysis(logger *zap.Logger, paths []string, funcName string, output string) error {
	for _, path := range paths {
		prog, _, err := parser.ParseFile(path, nil)
		if err != nil {
			logger.Error("Failed to parse file", zap.String("path", path), zap.Error(err))
			continue
		}

		fn := findFunction(prog, funcName)
		if fn == nil {
			continue
		}

		graph := cfg.FromFunc(fn)
		var buf strings.Builder
		graph.PrintDot(&buf, nil)

		if output != "" {
			if err := os.WriteFile(output, []byte(buf.String()), 0o644); err != nil {
				return fmt.Errorf("writing DOT file: %w", err)
			}
			fmt.Printf("DOT file created: %s\n", output)
		} else {
			fmt.Printf("CFG for function %s in file %s:\n%s\n", funcName, path, buf.String())
		}
		return nil
	}

	return fmt.Errorf("function not found: %s", funcName)
}

// findFunction looks up a function by name among free functions,
// contract members and constructors.
func findFunction(prog *ast.Program, name string) *ast.Function {
	var found *ast.Function
	ast.Inspect(prog, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if fn, ok := n.(*ast.Function); ok && fn.Name == name {
			found = fn
			return false
		}
		return true
	})
	return found
}
