package utils

import (
	"fmt"
	"strings"
)

var eventTypes = map[string]bool{
	"seminar":    true,
	"workshop":   true,
	"conference": true,
	"cultural":   true,
	"sports":     true,
	"exam":       true,
	"other":      true,
}

// NormalizeEventType lower-cases and validates the event_type metadata value.
func NormalizeEventType(eventType string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(eventType))
	if !eventTypes[normalized] {
		return "", fmt.Errorf("unknown event type %q", eventType)
	}
	return normalized, nil
}
