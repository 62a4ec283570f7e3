package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	got := ProgressBar(1, 2, 10)
	if !strings.HasPrefix(got, strings.Repeat("█", 5)+strings.Repeat("░", 5)) {
		t.Fatalf("unexpected bar %q", got)
	}
	if !strings.HasSuffix(got, " 50%") {
		t.Fatalf("expected 50%%, got %q", got)
	}
	if got := ProgressBar(0, 0, 1); !strings.HasSuffix(got, "  0%") {
		t.Fatalf("expected 0%% for empty total, got %q", got)
	}
}

func TestLookupTheme(t *testing.T) {
	dark, err := LookupTheme("")
	if err != nil || dark.Name != ThemeDark {
		t.Fatalf("expected dark default, got %q (%v)", dark.Name, err)
	}
	if dark.Toggled().Name != ThemeLight || dark.Toggled().Toggled().Name != ThemeDark {
		t.Fatal("expected toggle to alternate themes")
	}
	if _, err := LookupTheme("neon"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestStatusLines(t *testing.T) {
	th, _ := LookupTheme(ThemeDark)
	var buf bytes.Buffer
	th.OK(&buf, "saved")
	th.Fail(&buf, "nope")
	out := buf.String()
	if !strings.Contains(out, "✔ saved") || !strings.Contains(out, "✖ nope") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPanelContainsLines(t *testing.T) {
	th, _ := LookupTheme(ThemeLight)
	out := th.Panel("one", "two")
	if !strings.Contains(out, "one") || !strings.Contains(out, "two") || !strings.Contains(out, "╭") {
		t.Fatalf("unexpected panel %q", out)
	}
}
