// ABOUTME: Export and import of the full journal.
// ABOUTME: Supports JSON, YAML, and Markdown export; JSON and YAML import.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/tracker"
)

const (
	// Version is the export format version.
	Version = "1.0"
	// Tool names the producer in exports.
	Tool = "healthlog"
)

// Data is the full export format.
type Data struct {
	Version    string                    `json:"version" yaml:"version"`
	ExportedAt time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool       string                    `json:"tool" yaml:"tool"`
	Glucose    []*models.GlucoseReading  `json:"glucose" yaml:"glucose"`
	Pressure   []*models.PressureReading `json:"pressure" yaml:"pressure"`
	Weight     []*models.WeightReading   `json:"weight" yaml:"weight"`
	Activity   []*models.ActivityEntry   `json:"activity" yaml:"activity"`
}

// Format is an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts json, yaml/yml, and markdown/md.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format: %s (use json, yaml, or markdown)", s)
}

// Collect gathers every stored reading.
func Collect(ctx context.Context, t *tracker.Tracker) *Data {
	return &Data{
		Version:    Version,
		ExportedAt: t.Now(),
		Tool:       Tool,
		Glucose:    t.Glucose.GetAll(ctx),
		Pressure:   t.Pressure.GetAll(ctx),
		Weight:     t.Weight.GetAll(ctx),
		Activity:   t.Activity.GetAll(ctx),
	}
}

// Encode renders data in the given format.
func Encode(data *Data, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		return yaml.Marshal(data)
	case FormatMarkdown:
		return []byte(Markdown(data)), nil
	}
	return nil, fmt.Errorf("unknown export format: %s", format)
}

// Decode parses an export. JSON is detected by a leading brace; anything
// else is read as YAML.
func Decode(raw []byte) (*Data, error) {
	var data Data
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &data); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	return &data, nil
}

// ImportResult counts the records added per metric.
type ImportResult struct {
	Glucose  int `json:"glucose"`
	Pressure int `json:"pressure"`
	Weight   int `json:"weight"`
	Activity int `json:"activity"`
}

// Total returns the number of records added.
func (r ImportResult) Total() int {
	return r.Glucose + r.Pressure + r.Weight + r.Activity
}

// Import appends the records of data whose IDs are not already stored.
// Activities with mismatched detail payloads are rejected before anything
// is written.
func Import(ctx context.Context, t *tracker.Tracker, data *Data) (ImportResult, error) {
	for _, e := range data.Activity {
		if err := e.CheckVariant(); err != nil {
			return ImportResult{}, fmt.Errorf("import activity %s: %w", e.ID, err)
		}
	}

	var (
		res ImportResult
		err error
	)
	if res.Glucose, err = t.Glucose.Import(ctx, data.Glucose); err != nil {
		return res, err
	}
	if res.Pressure, err = t.Pressure.Import(ctx, data.Pressure); err != nil {
		return res, err
	}
	if res.Weight, err = t.Weight.Import(ctx, data.Weight); err != nil {
		return res, err
	}
	if res.Activity, err = t.Activity.Import(ctx, data.Activity); err != nil {
		return res, err
	}
	return res, nil
}
