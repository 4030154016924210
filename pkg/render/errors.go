package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-authform/pkg/pages"
)

// ErrorMapping splits an error payload into messages the page can show next
// to an input and messages that belong to the form as a whole.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// MapErrors assigns each message in payload to the page input it names.
// Keys may be a bare field name or a path such as "/body/email" or
// "body.email"; the last segment is matched. Keys that match no input become
// form level messages so nothing is lost.
func MapErrors(page pages.Page, payload map[string]string) ErrorMapping {
	var mapping ErrorMapping
	for _, key := range sortedKeys(payload) {
		message := strings.TrimSpace(payload[key])
		if message == "" {
			continue
		}
		name := lastSegment(key)
		if _, ok := page.Input(name); ok && name != "" {
			if mapping.Fields == nil {
				mapping.Fields = make(map[string]string)
			}
			if _, exists := mapping.Fields[name]; !exists {
				mapping.Fields[name] = message
			}
			continue
		}
		mapping.Form = MergeFormErrors(mapping.Form, message)
	}
	return mapping
}

// MergeFormErrors concatenates form level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	seen := make(map[string]struct{}, len(existing)+len(extras))
	for _, message := range append(append([]string{}, existing...), extras...) {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		combined = append(combined, trimmed)
	}
	if len(combined) == 0 {
		return nil
	}
	return combined
}

func lastSegment(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "$")
	if idx := strings.LastIndexAny(key, "./"); idx >= 0 {
		key = key[idx+1:]
	}
	return key
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
