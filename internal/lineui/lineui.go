// Package lineui provides a line-oriented drill interface for plain terminals
// and pipes.
package lineui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/propdrill/internal/model"
	"github.com/verte-zerg/propdrill/internal/session"
	"github.com/verte-zerg/propdrill/internal/stats"
)

const (
	title      = "Exercises on Invariant Property"
	hiddenMark = "?"
	quitInput  = "q"
)

var errQuit = errors.New("quit requested")

type inputLine struct {
	text string
	err  error
}

// UI drives a session from lines of input.
type UI struct {
	disp   *session.Dispatcher
	rounds int
	in     *bufio.Scanner
	lines  chan inputLine
	out    io.Writer
	width  int
}

// New returns a UI reading answers from in and writing prompts to out. width
// sizes the histogram bars.
func New(disp *session.Dispatcher, rounds int, in io.Reader, out io.Writer, width int) *UI {
	if rounds <= 0 {
		rounds = session.DefaultRounds
	}
	return &UI{
		disp:   disp,
		rounds: rounds,
		in:     bufio.NewScanner(in),
		out:    out,
		width:  width,
	}
}

// Run loops until the user quits, input ends or ctx is cancelled. A blocked
// read does not delay cancellation. Run must be called at most once.
func (u *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	u.lines = make(chan inputLine)
	go u.scan(ctx)

	err := u.run(ctx)
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (u *UI) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap := u.disp.Snapshot()
		var err error
		switch snap.Phase {
		case session.PhaseStart:
			err = u.start(ctx)
		case session.PhaseExercising:
			err = u.exercise(ctx, snap)
		case session.PhaseResult:
			err = u.result(ctx, snap)
		case session.PhaseFinalEvaluation:
			err = u.final(ctx, snap)
		default:
			err = fmt.Errorf("%w: unknown phase %s", session.ErrInternalFault, snap.Phase)
		}
		if err != nil {
			return err
		}
	}
}

func (u *UI) start(ctx context.Context) error {
	if err := u.printf("%s\nPress enter to start, q to quit.\n", title); err != nil {
		return err
	}
	if _, err := u.readLine(ctx); err != nil {
		return err
	}
	return u.dispatch(session.Begin{})
}

func (u *UI) exercise(ctx context.Context, snap session.Snapshot) error {
	if err := u.printf("\nExercise %d/%d\n  %s\n> ", snap.TotalAnswered+1, u.rounds, FormatProblem(snap.Problem, hiddenMark)); err != nil {
		return err
	}
	line, err := u.readLine(ctx)
	if err != nil {
		return err
	}
	if err := u.dispatch(session.SetInput{Text: line}); err != nil {
		return err
	}
	if !u.disp.Snapshot().CanSubmit() {
		return u.printf("Enter a whole number from 1 to 999.\n")
	}
	return u.dispatch(session.Submit{})
}

func (u *UI) result(ctx context.Context, snap session.Snapshot) error {
	answer, err := snap.Problem.Answer()
	if err != nil {
		return fmt.Errorf("%w: %w", session.ErrInternalFault, err)
	}
	if snap.LastAnswerWrong {
		err = u.printf("Wrong, the answer was %d: %s\n", answer, FormatProblem(snap.Problem, strconv.Itoa(answer)))
	} else {
		err = u.printf("Correct!\n")
	}
	if err != nil {
		return err
	}

	next, prompt := session.Event(session.Advance{}), "Press enter for the next exercise."
	if snap.ShouldConclude(u.rounds) {
		next, prompt = session.Conclude{}, "Press enter to see your results."
	}
	if err := u.printf("%s\n", prompt); err != nil {
		return err
	}
	if _, err := u.readLine(ctx); err != nil {
		return err
	}
	return u.dispatch(next)
}

func (u *UI) final(ctx context.Context, snap session.Snapshot) error {
	summary := stats.Summarize(snap.TotalAnswered, snap.TotalErrors, snap.Histogram)
	if err := u.printf("\n"); err != nil {
		return err
	}
	if err := stats.RenderSummary(u.out, summary); err != nil {
		return err
	}
	if err := stats.RenderHistogram(u.out, summary.Histogram, u.width); err != nil {
		return err
	}
	for {
		if err := u.printf("Type r to restart or q to quit.\n"); err != nil {
			return err
		}
		line, err := u.readLine(ctx)
		if err != nil {
			return err
		}
		if strings.EqualFold(line, "r") {
			return u.dispatch(session.Restart{})
		}
	}
}

func (u *UI) dispatch(ev session.Event) error {
	_, err := u.disp.Dispatch(ev)
	if err != nil && errors.Is(err, session.ErrInternalFault) {
		return err
	}
	return nil
}

// scan feeds input lines to readLine until input ends or ctx is done.
func (u *UI) scan(ctx context.Context) {
	defer close(u.lines)
	for u.in.Scan() {
		select {
		case u.lines <- inputLine{text: u.in.Text()}:
		case <-ctx.Done():
			return
		}
	}
	if err := u.in.Err(); err != nil {
		select {
		case u.lines <- inputLine{err: fmt.Errorf("failed to read input: %w", err)}:
		case <-ctx.Done():
		}
	}
}

// readLine returns the next trimmed line. q ends the run.
func (u *UI) readLine(ctx context.Context) (string, error) {
	var l inputLine
	var ok bool
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok = <-u.lines:
	}
	if !ok {
		return "", io.EOF
	}
	if l.err != nil {
		return "", l.err
	}
	text := strings.TrimSpace(l.text)
	if strings.EqualFold(text, quitInput) {
		return "", errQuit
	}
	return text, nil
}

func (u *UI) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(u.out, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// FormatProblem renders a/b = c/d with the hidden slot replaced by mark.
func FormatProblem(p model.Problem, mark string) string {
	values := [model.SlotCount]string{
		strconv.Itoa(p.NumA),
		strconv.Itoa(p.DenA),
		strconv.Itoa(p.NumB),
		strconv.Itoa(p.DenB),
	}
	if p.Hidden.Valid() {
		values[p.Hidden] = mark
	}
	return fmt.Sprintf("%s/%s = %s/%s", values[model.SlotNumA], values[model.SlotDenA], values[model.SlotNumB], values[model.SlotDenB])
}
