package repo

import (
	"fmt"
	"strings"
)

// Airtable columns drifted across spreadsheet revisions, so every
// mapper reads through an ordered list of candidate field names and
// falls back to a documented default.

func strField(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			switch value := v.(type) {
			case string:
				if trimmed := strings.TrimSpace(value); trimmed != "" {
					return trimmed
				}
			case float64:
				return trimFloat(value)
			}
		}
	}
	return ""
}

func boolField(fields map[string]any, keys ...string) bool {
	for _, key := range keys {
		switch value := fields[key].(type) {
		case bool:
			return value
		case string:
			if strings.EqualFold(value, "true") || value == "1" {
				return true
			}
		}
	}
	return false
}

// imageField resolves an image either from an Airtable attachment
// array or from a plain URL column; missing images get the
// placeholder path served by the static site.
func imageField(fields map[string]any, placeholder string, keys ...string) string {
	for _, key := range keys {
		switch value := fields[key].(type) {
		case []any:
			if len(value) == 0 {
				continue
			}
			if attachment, ok := value[0].(map[string]any); ok {
				if url, ok := attachment["url"].(string); ok && url != "" {
					return url
				}
			}
		case string:
			if strings.HasPrefix(value, "http") {
				return value
			}
		}
	}
	return placeholder
}

func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
