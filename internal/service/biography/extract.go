package biography

import "strings"

// leakMarkers show the model kept going past its answer into prompt text.
var leakMarkers = []string{"\nExample", "\nInput:", "\nNow convert"}

// ExtractOutput returns the text after the last OutputMarker with symmetric
// double quotes and echoed prompt fragments removed. Without a marker the
// trimmed input is returned.
func ExtractOutput(raw string) string {
	idx := strings.LastIndex(raw, OutputMarker)
	if idx < 0 {
		return strings.TrimSpace(raw)
	}

	out := strings.TrimSpace(raw[idx+len(OutputMarker):])
	if strings.HasPrefix(out, `"`) && strings.HasSuffix(out, `"`) {
		// a lone quote counts as both ends
		out = strings.TrimPrefix(out, `"`)
		out = strings.TrimSuffix(out, `"`)
	}

	for _, m := range leakMarkers {
		if i := strings.Index(out, m); i >= 0 {
			out = out[:i]
		}
	}
	return strings.TrimSpace(out)
}
