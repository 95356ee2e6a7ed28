package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestProgressBar(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	cases := []struct {
		pct, width int
		want       string
	}{
		{0, 10, "---------- " + "  0%"},
		{25, 8, "##------ " + " 25%"},
		{100, 5, "##### 100%"},
		{150, 5, "##### 100%"},
		{-3, 2, "----- " + "  0%"},
	}
	for _, tc := range cases {
		if got := ProgressBar(tc.pct, tc.width); got != tc.want {
			t.Errorf("ProgressBar(%d, %d) = %q, want %q", tc.pct, tc.width, got, tc.want)
		}
	}
}

func TestTruncate_CountsCellsNotBytes(t *testing.T) {
	t.Parallel()

	// "Cámara" is 6 cells but 7 bytes.
	if got := Truncate("Cámara", 6); got != "Cámara" {
		t.Fatalf("Truncate kept-width = %q", got)
	}
	got := Truncate("Pantalla de vista previa", 10)
	if w := ansi.StringWidth(got); w > 10 {
		t.Fatalf("width %d > 10: %q", w, got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("missing ellipsis: %q", got)
	}
}

func TestPanel_UsesThemeBorder(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	out := Panel("hello")
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "┌") || !strings.Contains(lines[1], "hello") {
		t.Fatalf("unexpected panel: %q", out)
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })

	cases := map[string]string{"NEON": "neon", "mono": "mono", "sepia": "classic"}
	for in, want := range cases {
		SetTheme(in)
		if got := Current().Name; got != want {
			t.Errorf("SetTheme(%q) -> %q, want %q", in, got, want)
		}
	}
}

func TestLongDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), "sábado, 17 de octubre"},
		{time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), "miércoles, 7 de enero"},
		{time.Date(2025, 12, 28, 23, 0, 0, 0, time.UTC), "domingo, 28 de diciembre"},
	}
	for _, tc := range cases {
		if got := LongDate(tc.in); got != tc.want {
			t.Errorf("LongDate(%s) = %q, want %q", tc.in.Format(time.DateOnly), got, tc.want)
		}
	}
}
