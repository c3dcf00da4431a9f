package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/propdrill/internal/model"
)

const (
	barChar             = "#"
	minBarWidth         = 5
	maxBarWidth         = 40
	terminalWidthBackup = 80
)

// histogramHeaders are the table columns printed by RenderHistogram.
var histogramHeaders = []string{"Factor", "Errors", ""}

// Bar renders count as a bar scaled so that maxCount fills width.
func Bar(count, maxCount, width int) string {
	if count <= 0 || maxCount <= 0 || width <= 0 {
		return ""
	}
	n := count * width / maxCount
	if n == 0 {
		n = 1
	}
	return strings.Repeat(barChar, n)
}

// RenderHistogram prints the per-factor error counts. Factors without errors
// are omitted.
func RenderHistogram(w io.Writer, hist model.Histogram, totalWidth int) error {
	if hist.Total() == 0 {
		_, err := fmt.Fprintln(w, "No errors recorded.")
		return err
	}
	_, maxCount := DominantFactor(hist)
	width := BarWidthFor(totalWidth)

	rows := make([][]string, 0, model.MaxFactor)
	for f := model.MinFactor; f <= model.MaxFactor; f++ {
		c := hist.Count(f)
		if c == 0 {
			continue
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", f),
			fmt.Sprintf("%d", c),
			Bar(c, maxCount, width),
		})
	}
	if _, err := fmt.Fprintln(w, "Errors by factor"); err != nil {
		return err
	}
	for _, line := range formatTable(histogramHeaders, rows, map[int]bool{0: true, 1: true}) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// BarWidthFor computes a bar width that fits next to the histogram columns.
func BarWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	fixed := 0
	for _, h := range histogramHeaders[:2] {
		fixed += runewidth.StringWidth(h) + 1
	}
	width := totalWidth - fixed
	if width < minBarWidth {
		width = minBarWidth
	}
	if width > maxBarWidth {
		width = maxBarWidth
	}
	return width
}

// TerminalWidth returns the stdout width, or a fallback when it is not a
// terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
