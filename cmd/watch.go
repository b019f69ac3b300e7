package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swiftsc-lang/sclint/formatter"
	"github.com/swiftsc-lang/sclint/internal"
	tt "github.com/swiftsc-lang/sclint/internal/types"
	"github.com/swiftsc-lang/sclint/lint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-lint contracts whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := lint.New(".", nil, configPath())
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		watcher, err := internal.NewWatcher(engine, logger, args, printWatchedIssues)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		if err := watcher.StartWatching(); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer watcher.StopWatching()

		fmt.Println("watching for changes, press Ctrl+C to stop")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
	},
}

func printWatchedIssues(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		return
	}
	sourceCode, err := internal.ReadSourceCode(filename)
	if err != nil {
		logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
		return
	}
	fmt.Println(formatter.GenerateFormattedIssue(issues, sourceCode))
}
