package lineui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/verte-zerg/propdrill/internal/generator"
	"github.com/verte-zerg/propdrill/internal/model"
	"github.com/verte-zerg/propdrill/internal/session"
)

// upcoming returns the answers a seeded session will ask for.
func upcoming(t *testing.T, seed int64, n int) []int {
	t.Helper()
	g := generator.NewSeeded(seed)
	answers := make([]int, n)
	for i := range answers {
		ans, err := g.Next().Answer()
		if err != nil {
			t.Fatalf("answer: %v", err)
		}
		answers[i] = ans
	}
	return answers
}

func runScript(t *testing.T, seed int64, rounds int, lines ...string) (string, session.Snapshot) {
	t.Helper()
	disp := session.NewDispatcher(session.New(generator.NewSeeded(seed)), nil)
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := New(disp, rounds, in, &out, 40).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String(), disp.Snapshot()
}

func TestRunEndToEnd(t *testing.T) {
	answers := upcoming(t, 8, 2)
	out, snap := runScript(t, 8, 2,
		"",
		"abc",
		"999",
		"",
		strconv.Itoa(answers[1]),
		"",
		"q",
	)
	if snap.Phase != session.PhaseFinalEvaluation {
		t.Fatalf("expected final evaluation, got %s", snap.Phase)
	}
	if snap.TotalAnswered != 2 || snap.TotalErrors != 1 {
		t.Fatalf("unexpected totals: %+v", snap)
	}
	for _, want := range []string{
		title,
		"Exercise 1/2",
		"Enter a whole number from 1 to 999.",
		"Wrong, the answer was " + strconv.Itoa(answers[0]),
		"Exercise 2/2",
		"Correct!",
		"Press enter to see your results.",
		"Accuracy: 50.0%",
		"Errors by factor",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRunRestartFromFinal(t *testing.T) {
	answers := upcoming(t, 21, 1)
	_, snap := runScript(t, 21, 1,
		"",
		strconv.Itoa(answers[0]),
		"",
		"maybe",
		"r",
	)
	if snap.Phase != session.PhaseExercising {
		t.Fatalf("expected exercising after restart, got %s", snap.Phase)
	}
	if snap.TotalAnswered != 0 || snap.TotalErrors != 0 {
		t.Fatalf("expected cleared counters, got %+v", snap)
	}
}

func TestRunStopsOnEOF(t *testing.T) {
	out, snap := runScript(t, 3, 20, "")
	if snap.Phase != session.PhaseExercising {
		t.Fatalf("expected exercising, got %s", snap.Phase)
	}
	if !strings.HasSuffix(out, "> ") {
		t.Fatalf("expected to stop at the answer prompt, got:\n%s", out)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	disp := session.NewDispatcher(session.New(generator.NewSeeded(1)), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(disp, 20, strings.NewReader("\n"), &bytes.Buffer{}, 40).Run(ctx)
	if err == nil {
		t.Fatalf("expected context error")
	}
}

func TestFormatProblem(t *testing.T) {
	p := model.Problem{NumA: 3, DenA: 4, NumB: 15, DenB: 20, Hidden: model.SlotNumB}
	if got := FormatProblem(p, "?"); got != "3/4 = ?/20" {
		t.Fatalf("unexpected problem text %q", got)
	}
	p.Hidden = model.SlotDenA
	if got := FormatProblem(p, "_"); got != "3/_ = 15/20" {
		t.Fatalf("unexpected problem text %q", got)
	}
}

// promptWriter closes wrote on the first prompt.
type promptWriter struct {
	once  sync.Once
	wrote chan struct{}
}

func (w *promptWriter) Write(p []byte) (int, error) {
	w.once.Do(func() { close(w.wrote) })
	return len(p), nil
}

func TestRunReturnsOnCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	disp := session.NewDispatcher(session.New(generator.NewSeeded(3)), nil)
	out := &promptWriter{wrote: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- New(disp, 20, pr, out, 40).Run(ctx)
	}()

	select {
	case <-out.wrote:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a start prompt")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run still blocked after cancel")
	}
	if snap := disp.Snapshot(); snap.Phase != session.PhaseStart {
		t.Fatalf("expected untouched session, got %s", snap.Phase)
	}
}
