package formatter

// SecurityIssueFormatter prepends an explicit warning banner to issues
// from the security analyses so they are not skimmed over.
type SecurityIssueFormatter struct{}

func (f *SecurityIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
{{securityWarning .Rule}}

{{- if .Suggestion }}
{{suggestion .Suggestion .Padding .MaxLineNumWidth .StartLine}}
{{- end }}

{{- if .Note }}
{{note .Note}}
{{- end }}
`
}

func securityWarning(rule string) string {
	endString := warningStyle.Sprint("warning: ")
	switch rule {
	case Reentrancy:
		endString += "An attacker-controlled contract can re-enter before the state update lands.\n"
	case TaintStorage:
		endString += "Unvalidated caller input flows into persistent storage.\n"
	case TaintCall:
		endString += "Unvalidated caller input is forwarded to an external contract.\n"
	default:
		endString += "Potential security issue.\n"
	}
	return endString
}
