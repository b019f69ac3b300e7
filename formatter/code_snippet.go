package formatter

import (
	"strings"

	"github.com/swiftsc-lang/sclint/internal"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

func GetCodeSnippet(issue tt.Issue, snippet *internal.SourceCode) string {
	startLine := issue.Start.Line - 1
	if startLine < 0 {
		startLine = 0
	}
	endLine := issue.End.Line
	if endLine > len(snippet.Lines) {
		endLine = len(snippet.Lines)
	}
	return strings.Join(snippet.Lines[startLine:endLine], "\n")
}
