package formatter

import (
	"fmt"
	"strings"
)

// GasLimitFormatter adds an estimate line under the usual underline so
// the cost stands out from the prose message.
type GasLimitFormatter struct{}

func (f *GasLimitFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
{{gasInfo .Padding .Message }}

{{- if .Suggestion }}
{{suggestion .Suggestion .Padding .MaxLineNumWidth .StartLine}}
{{- end }}

{{- if .Note }}
{{note .Note}}
{{- end }}
`
}

func gasInfo(padding string, message string) string {
	var endString string
	gasInfo := fmt.Sprintf("Gas Estimate: %s", strings.TrimPrefix(message, "function "))
	endString = lineStyle.Sprintf("%s| ", padding)
	endString += messageStyle.Sprintf("%s\n", gasInfo)

	return endString
}
