package status

import (
	"fmt"
	"strings"
)

// FileFormatter defines how file states and errors are formatted
type FileFormatter interface {
	// FormatFileOperation formats the state of one file
	FormatFileOperation(info FileInfo) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file state with emojis
func (f *DefaultFileFormatter) FormatFileOperation(info FileInfo) string {
	if info.Error != nil {
		return fmt.Sprintf("❌ Failed %s", info.Path)
	}
	switch info.Status {
	case StatusCommitted:
		return fmt.Sprintf("📝 Updated %s (%s)", info.Path, describe(info))
	case StatusRewritten:
		return fmt.Sprintf("🔄 Rewritten %s (%s)", info.Path, describe(info))
	case StatusCandidate:
		return fmt.Sprintf("🔍 Checked %s", info.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", info.Path)
	}
}

func describe(info FileInfo) string {
	cats := make([]string, 0, len(info.Categories))
	seen := map[string]bool{}
	for _, c := range info.Categories {
		if !seen[string(c)] {
			seen[string(c)] = true
			cats = append(cats, string(c))
		}
	}
	return fmt.Sprintf("%d replacements: %s", info.Replacements, strings.Join(cats, ", "))
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
