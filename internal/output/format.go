package output

import "strings"

// Format specifies a structured output format.
type Format string

const (
	// FormatYAML outputs YAML.
	FormatYAML Format = "yaml"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"

	// FormatTable outputs a human-readable table or tree.
	FormatTable Format = "table"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses s into a Format. The second result is false for an
// unknown format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	case "table", "text":
		return FormatTable, true
	default:
		return "", false
	}
}

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{"yaml", "json", "table"}
}
