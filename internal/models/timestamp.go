// ABOUTME: Timestamp parsing shared by the CLI and MCP server.
// ABOUTME: Accepts RFC 3339 plus a few local-time shorthands.
package models

import (
	"fmt"
	"time"
)

var localLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses s as RFC 3339, or as a local time in loc when it
// carries no offset.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %s (use RFC 3339 or YYYY-MM-DD HH:MM)", s)
}
