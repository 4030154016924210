package config

import (
	"fmt"
	"strings"
)

var levels = []string{"debug", "info", "warn", "error"}

// ParseLevel normalises a log level name. An empty name means "info".
func ParseLevel(raw string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(raw))
	if level == "" {
		return "info", nil
	}
	if level == "warning" {
		level = "warn"
	}
	for _, known := range levels {
		if level == known {
			return level, nil
		}
	}
	return "", fmt.Errorf("logging.level %q must be one of %s", raw, strings.Join(levels, ", "))
}
