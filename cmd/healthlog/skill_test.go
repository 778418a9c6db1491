// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation, and embedded content.
package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestInstallSkillWritesEmbeddedFile(t *testing.T) {
	home := t.TempDir()

	var out bytes.Buffer
	written, err := installSkill(home, strings.NewReader(""), &out, true)
	if err != nil {
		t.Fatalf("installSkill: %v", err)
	}
	if !written {
		t.Fatal("expected skill to be written")
	}

	got, err := os.ReadFile(skillPath(home))
	if err != nil {
		t.Fatalf("read installed skill: %v", err)
	}
	want, _ := skillFS.ReadFile("skill/SKILL.md")
	if !bytes.Equal(got, want) {
		t.Error("installed skill differs from embedded content")
	}
}

func TestInstallSkillOverwritesExistingFile(t *testing.T) {
	home := t.TempDir()
	if _, err := installSkill(home, nil, &bytes.Buffer{}, true); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(skillPath(home), []byte("stale"), 0600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if _, err := installSkill(home, nil, &out, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("expected overwrite note, got %q", out.String())
	}
	got, _ := os.ReadFile(skillPath(home))
	if string(got) == "stale" {
		t.Error("stale skill file was not replaced")
	}
}

func TestInstallSkillPrompt(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.answer), func(t *testing.T) {
			home := t.TempDir()
			written, err := installSkill(home, strings.NewReader(tt.answer), &bytes.Buffer{}, false)
			if err != nil {
				t.Fatalf("installSkill: %v", err)
			}
			if written != tt.want {
				t.Errorf("written = %v, want %v", written, tt.want)
			}
			_, statErr := os.Stat(skillPath(home))
			if (statErr == nil) != tt.want {
				t.Errorf("file presence = %v, want %v", statErr == nil, tt.want)
			}
		})
	}
}

func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	if flag == nil {
		t.Fatal("Expected --yes flag to be defined")
	}
	if flag.Shorthand != "y" {
		t.Errorf("Expected shorthand 'y', got %q", flag.Shorthand)
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected default value 'false', got %q", flag.DefValue)
	}
}

func TestSkillEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}
	s := string(content)

	if !strings.HasPrefix(s, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}
	for _, marker := range []string{
		"name: healthlog",
		"description:",
		"mcp__healthlog__log_glucose",
		"mcp__healthlog__log_pressure",
		"mcp__healthlog__log_weight",
		"mcp__healthlog__log_activity",
		"mcp__healthlog__get_stats",
		"## Metric types",
	} {
		if !strings.Contains(s, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}
