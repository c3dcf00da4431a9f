package stats

import (
	"bytes"
	"testing"

	"github.com/verte-zerg/propdrill/internal/model"
)

func TestRenderHistogram(t *testing.T) {
	var buf bytes.Buffer
	hist := histogramOf(t, 7, 3, 3, 5)
	if err := RenderHistogram(&buf, hist, 0); err != nil {
		t.Fatalf("render histogram: %v", err)
	}
	want := "Errors by factor\n" +
		"Factor Errors\n" +
		"     3      2 #####\n" +
		"     5      1 ##\n" +
		"     7      1 ##\n" +
		"\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestRenderHistogramEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistogram(&buf, model.Histogram{}, 80); err != nil {
		t.Fatalf("render histogram: %v", err)
	}
	if buf.String() != "No errors recorded.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestBarWidthFor(t *testing.T) {
	if got := BarWidthFor(0); got != minBarWidth {
		t.Fatalf("expected min width %d, got %d", minBarWidth, got)
	}
	if got := BarWidthFor(30); got != 30-14 {
		t.Fatalf("expected width 16, got %d", got)
	}
	if got := BarWidthFor(500); got != maxBarWidth {
		t.Fatalf("expected max width %d, got %d", maxBarWidth, got)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		count, max, width int
		want              string
	}{
		{0, 4, 10, ""},
		{4, 4, 10, "##########"},
		{1, 4, 10, "##"},
		{1, 40, 10, "#"},
	}
	for _, tt := range tests {
		if got := Bar(tt.count, tt.max, tt.width); got != tt.want {
			t.Fatalf("Bar(%d, %d, %d): expected %q, got %q", tt.count, tt.max, tt.width, tt.want, got)
		}
	}
}
