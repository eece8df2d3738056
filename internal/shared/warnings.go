package shared

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WarningType represents different types of warnings
type WarningType int

const (
	InvalidDocumentWarning WarningType = iota
	MalformedSongWarning
	MalformedFilterKeyWarning
)

// Warning represents a single warning with context
type Warning struct {
	Type    WarningType
	Message string
	Context string // File or record context
	Details string
}

// WarningCollector collects warnings raised while reading catalog files
type WarningCollector struct {
	warnings []Warning
	enabled  bool
}

// NewWarningCollector creates a new warning collector
func NewWarningCollector(enabled bool) *WarningCollector {
	return &WarningCollector{
		warnings: make([]Warning, 0),
		enabled:  enabled,
	}
}

// AddWarning adds a warning to the collector
func (wc *WarningCollector) AddWarning(warningType WarningType, context, message, details string) {
	if !wc.enabled {
		return
	}
	wc.warnings = append(wc.warnings, Warning{
		Type:    warningType,
		Message: message,
		Context: context,
		Details: details,
	})
}

// AddInvalidDocumentWarning records a persisted file that could not be parsed
func (wc *WarningCollector) AddInvalidDocumentWarning(path, details string) {
	wc.AddWarning(InvalidDocumentWarning, path, "Document could not be parsed", details)
}

// AddMalformedSongWarning records a catalog entry that could not be decoded as a song
func (wc *WarningCollector) AddMalformedSongWarning(index int, details string) {
	wc.AddWarning(MalformedSongWarning, fmt.Sprintf("songs[%d]", index), "Song entry skipped", details)
}

// AddMalformedFilterKeyWarning records a filter key that lost some or all of its values on load
func (wc *WarningCollector) AddMalformedFilterKeyWarning(key, details string) {
	wc.AddWarning(MalformedFilterKeyWarning, key, "Filter key repaired", details)
}

// HasWarnings returns true if there are any warnings
func (wc *WarningCollector) HasWarnings() bool {
	return len(wc.warnings) > 0
}

// GetWarningCount returns the total number of warnings
func (wc *WarningCollector) GetWarningCount() int {
	return len(wc.warnings)
}

// GetWarningsByType returns warnings grouped by type
func (wc *WarningCollector) GetWarningsByType() map[WarningType][]Warning {
	grouped := make(map[WarningType][]Warning)
	for _, warning := range wc.warnings {
		grouped[warning.Type] = append(grouped[warning.Type], warning)
	}
	return grouped
}

// Clear drops all collected warnings
func (wc *WarningCollector) Clear() {
	wc.warnings = wc.warnings[:0]
}

// PrintSummary writes a formatted summary of all warnings to w
func (wc *WarningCollector) PrintSummary(w io.Writer) {
	if !wc.HasWarnings() {
		return
	}

	ColorWarning.Fprintf(w, "\n⚠️  Warning Summary (%d warnings):\n", len(wc.warnings))
	ColorWarning.Fprintln(w, strings.Repeat("─", 50))

	grouped := wc.GetWarningsByType()

	var types []WarningType
	for warningType := range grouped {
		types = append(types, warningType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, warningType := range types {
		warnings := grouped[warningType]
		ColorWarning.Fprintf(w, "\n%s (%d):\n", warningTypeTitle(warningType), len(warnings))
		for _, warning := range warnings {
			if warning.Details != "" {
				ColorWarning.Fprintf(w, "  • %s: %s\n", warning.Context, warning.Details)
			} else {
				ColorWarning.Fprintf(w, "  • %s\n", warning.Context)
			}
		}
	}
}

func warningTypeTitle(warningType WarningType) string {
	switch warningType {
	case InvalidDocumentWarning:
		return "Unreadable Documents"
	case MalformedSongWarning:
		return "Skipped Song Entries"
	case MalformedFilterKeyWarning:
		return "Repaired Filter Keys"
	default:
		return "Other Warnings"
	}
}
