package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swiftsc-lang/sclint/internal/checks"
	"github.com/swiftsc-lang/sclint/lint"
)

var (
	gasThreshold  int64
	gasJSONOutput bool
	gasOutPath    string
)

var gasCmd = &cobra.Command{
	Use:   "gas [paths...]",
	Short: "Run static gas estimation",
	Long: `Estimates the gas cost of every contract function using a static
cost model. Functions above the threshold are marked.
Example) sclint gas --threshold 3000000 contracts/`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		runGasEstimation(args, gasThreshold, gasJSONOutput)
	},
}

func init() {
	gasCmd.Flags().Int64Var(&gasThreshold, "threshold", checks.DefaultGasThreshold, "Gas estimate threshold")
	gasCmd.Flags().BoolVar(&gasJSONOutput, "json", false, "Output estimates in JSON format")
	gasCmd.Flags().StringVarP(&gasOutPath, "output", "o", "", "Output path (when using JSON)")
}

type gasReport struct {
	Function  string `json:"function"`
	Estimate  int64  `json:"estimate"`
	OverLimit bool   `json:"over_limit"`
}

func runGasEstimation(paths []string, threshold int64, isJSON bool) {
	var reports []gasReport
	for _, path := range paths {
		estimates, err := lint.ProcessGasEstimation(path)
		if err != nil {
			logger.Error("Error estimating gas", zap.String("path", path), zap.Error(err))
			os.Exit(1)
		}
		for _, fg := range estimates {
			name := fg.Name
			if fg.Contract != "" {
				name = fg.Contract + "." + fg.Name
			}
			reports = append(reports, gasReport{
				Function:  name,
				Estimate:  fg.Estimate,
				OverLimit: fg.Estimate > threshold,
			})
		}
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Estimate > reports[j].Estimate
	})

	if isJSON {
		d, err := json.Marshal(reports)
		if err != nil {
			logger.Error("Error marshalling gas report", zap.Error(err))
			os.Exit(1)
		}
		if gasOutPath != "" {
			if err := os.WriteFile(gasOutPath, d, 0o644); err != nil {
				logger.Error("Error writing gas report", zap.Error(err))
				os.Exit(1)
			}
			return
		}
		fmt.Println(string(d))
		return
	}

	var overLimit bool
	for _, r := range reports {
		marker := " "
		if r.OverLimit {
			marker = "!"
			overLimit = true
		}
		fmt.Printf("%s %-40s %12d\n", marker, r.Function, r.Estimate)
	}
	if overLimit {
		fmt.Printf("\nfunctions marked with ! exceed the threshold of %d\n", threshold)
		os.Exit(1)
	}
}
