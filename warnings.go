package fieldsnap

import "strings"

// Warning describes a non-fatal problem encountered while gathering
// evidence. Refinement continues without the affected source.
type Warning struct {
	// Source names the evidence source that degraded: "vector", "raster",
	// or "ocr".
	Source string

	Message string
}

func (w Warning) String() string {
	return w.Source + ": " + w.Message
}

// FormatWarnings joins warnings into a single line for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
