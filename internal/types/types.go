package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/swiftsc-lang/sclint/token"
)

// Issue represents a single finding reported by an analysis rule.
type Issue struct {
	Rule       string
	Category   string
	Severity   Severity
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      token.Position
	End        token.Position
}

// Severity ranks how serious an issue is. Off disables a rule entirely.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalYAML implements yaml.Marshaler.
func (s Severity) MarshalYAML() (interface{}, error) {
	return strings.ToLower(s.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "error":
		*s = SeverityError
	case "warning", "warn":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "off", "none":
		*s = SeverityOff
	default:
		return fmt.Errorf("unknown severity %q", raw)
	}
	return nil
}

// ConfigRule is the per-rule configuration block of .sclint.yaml.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
