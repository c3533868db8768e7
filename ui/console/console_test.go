package console

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"graphview/internal/output"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"empty", colorYellow},
		{"failed", colorRed},
		{"ok", colorGreen},
		{"", colorGreen},
		{"UNKNOWN", colorGreen},
	}

	for _, tt := range tests {
		result := colorFor(tt.status)
		if result != tt.expected {
			t.Errorf("colorFor(%q) = %q; want %q", tt.status, result, tt.expected)
		}
	}
}

func TestPrint(t *testing.T) {
	view := output.ReportView{
		Status:     "ok",
		Renderable: true,
		RequestID:  "req-1",
		Sections: []output.Section{
			{
				ID:    output.SectionLabels,
				Title: "Node Labels",
				Items: []output.Item{
					{Key: "Person", Label: "Person", Status: output.ItemStyled, Note: "#ADD8E6"},
					{Key: "long", Label: strings.Repeat("VeryLongLabel", 4), Status: output.ItemStyled},
				},
			},
			{
				ID:    output.SectionRelationships,
				Title: "Relationship Types",
				Items: []output.Item{
					{Key: "KNOWS", Label: "KNOWS", Status: output.ItemSkipped},
				},
			},
		},
	}

	var buf bytes.Buffer
	Print(&buf, view)
	out := buf.String()

	for _, want := range []string{"GRAPHVIEW SCHEMA", "Node Labels (2)", "Person", "KNOWS", "...", "request req-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrint_Failure(t *testing.T) {
	view := output.ReportView{Status: "failed", Failure: "connection", Error: "refused"}

	var buf bytes.Buffer
	Print(&buf, view)

	if !strings.Contains(buf.String(), "connection failure: refused") {
		t.Errorf("Expected failure line, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "container left empty") {
		t.Errorf("Expected empty container summary, got:\n%s", buf.String())
	}
}

func TestPrint_WideLabel(t *testing.T) {
	label := "研究者の名前と関係性のラベル"
	view := output.ReportView{
		Status: "ok",
		Sections: []output.Section{{
			ID:    output.SectionLabels,
			Title: "Node Labels",
			Items: []output.Item{{Key: label, Label: label, Status: output.ItemStyled}},
		}},
	}

	var buf bytes.Buffer
	Print(&buf, view)
	out := buf.String()

	if !utf8.ValidString(out) {
		t.Fatalf("Expected valid UTF-8, got %q", out)
	}
	if !strings.Contains(out, "研究者") || !strings.Contains(out, "...") {
		t.Errorf("Expected truncated wide label, got:\n%s", out)
	}

	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "研究者") {
			continue
		}
		cells := strings.SplitN(line, colorCyan, 2)[0]
		if w := lipgloss.Width(cells); w > labelWidth {
			t.Errorf("Label column is %d cells wide; want at most %d", w, labelWidth)
		}
	}
}
