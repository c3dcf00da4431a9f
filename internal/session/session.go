// Package session implements the drill state machine.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/propdrill/internal/generator"
	"github.com/verte-zerg/propdrill/internal/model"
)

// DefaultRounds is the number of answers after which a run is concluded.
const DefaultRounds = 20

// Accepted input bounds, exclusive.
const (
	minInput = 0
	maxInput = 1000
)

var (
	// ErrIllegalEvent reports an event the current phase does not accept.
	ErrIllegalEvent = errors.New("event not allowed in current phase")
	// ErrNoInput reports a Submit without an entered value.
	ErrNoInput = errors.New("no value entered")
	// ErrInternalFault reports a broken invariant inside the session.
	ErrInternalFault = errors.New("internal session fault")
)

// Phase is the coarse stage of a run.
type Phase int

// Run phases.
const (
	PhaseStart Phase = iota
	PhaseExercising
	PhaseResult
	PhaseFinalEvaluation
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseExercising:
		return "exercising"
	case PhaseResult:
		return "result"
	case PhaseFinalEvaluation:
		return "final-evaluation"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session holds the state of one training run. It is not safe for concurrent
// use; the owning event loop applies one event at a time.
type Session struct {
	gen *generator.Generator

	phase           Phase
	lastAnswerWrong bool
	totalAnswered   int
	totalErrors     int
	problem         model.Problem
	entered         int
	histogram       model.Histogram
}

// New returns a Session in the start phase.
func New(gen *generator.Generator) *Session {
	return &Session{gen: gen, phase: PhaseStart}
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Phase           Phase
	LastAnswerWrong bool
	TotalAnswered   int
	TotalErrors     int
	Problem         model.Problem
	Entered         int
	Histogram       model.Histogram
}

// CanSubmit reports whether Submit would be accepted.
func (s Snapshot) CanSubmit() bool {
	return s.Phase == PhaseExercising && s.Entered != 0
}

// ShouldConclude reports whether the run has reached rounds answers, so the
// result screen offers Conclude instead of Advance.
func (s Snapshot) ShouldConclude(rounds int) bool {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	return s.TotalAnswered >= rounds
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:           s.phase,
		LastAnswerWrong: s.lastAnswerWrong,
		TotalAnswered:   s.totalAnswered,
		TotalErrors:     s.totalErrors,
		Problem:         s.problem,
		Entered:         s.entered,
		Histogram:       s.histogram,
	}
}

// Apply runs ev against the session. Rejected events leave the session
// unchanged.
func (s *Session) Apply(ev Event) error {
	switch ev := ev.(type) {
	case Begin:
		return s.begin()
	case SetInput:
		return s.setInput(ev.Text)
	case Submit:
		return s.submit()
	case Advance:
		return s.advance()
	case Conclude:
		return s.conclude()
	case Restart:
		s.restart()
		return nil
	default:
		return fmt.Errorf("%w: unknown event %T", ErrInternalFault, ev)
	}
}

func (s *Session) begin() error {
	if err := s.expect(PhaseStart, Begin{}); err != nil {
		return err
	}
	s.nextProblem()
	s.phase = PhaseExercising
	return nil
}

func (s *Session) setInput(text string) error {
	if err := s.expect(PhaseExercising, SetInput{Text: text}); err != nil {
		return err
	}
	s.entered = ParseInput(text)
	return nil
}

func (s *Session) submit() error {
	if err := s.expect(PhaseExercising, Submit{}); err != nil {
		return err
	}
	if s.entered == 0 {
		return ErrNoInput
	}
	answer, err := s.problem.Answer()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternalFault, err)
	}

	wrong := s.entered != answer
	hist := s.histogram
	if wrong {
		if err := recordError(&hist, s.problem); err != nil {
			return fmt.Errorf("%w: %w", ErrInternalFault, err)
		}
	}

	s.totalAnswered++
	if wrong {
		s.totalErrors++
	}
	s.histogram = hist
	s.lastAnswerWrong = wrong
	s.phase = PhaseResult
	return nil
}

func (s *Session) advance() error {
	if err := s.expect(PhaseResult, Advance{}); err != nil {
		return err
	}
	s.nextProblem()
	s.lastAnswerWrong = false
	s.phase = PhaseExercising
	return nil
}

func (s *Session) conclude() error {
	if err := s.expect(PhaseResult, Conclude{}); err != nil {
		return err
	}
	s.phase = PhaseFinalEvaluation
	return nil
}

func (s *Session) restart() {
	s.totalAnswered = 0
	s.totalErrors = 0
	s.histogram.Reset()
	s.lastAnswerWrong = false
	s.nextProblem()
	s.phase = PhaseExercising
}

func (s *Session) nextProblem() {
	s.problem = s.gen.Next()
	s.entered = 0
}

func (s *Session) expect(phase Phase, ev Event) error {
	if s.phase != phase {
		return fmt.Errorf("%w: %s in %s", ErrIllegalEvent, ev, s.phase)
	}
	return nil
}

// recordError charges the multiplier and the smaller base value of the pair
// holding the hidden slot.
func recordError(hist *model.Histogram, p model.Problem) error {
	a, b, err := p.Pair(p.Hidden)
	if err != nil {
		return err
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo <= 0 {
		return fmt.Errorf("non-positive pair value %d", lo)
	}
	if hi%lo != 0 {
		return fmt.Errorf("pair %d/%d is not an integer multiple", hi, lo)
	}
	if err := hist.Inc(hi / lo); err != nil {
		return err
	}
	return hist.Inc(lo)
}

// ParseInput converts raw text to an entered value. An optional leading plus
// sign is accepted. Anything that is not an integer in 1..999 yields 0.
func ParseInput(text string) int {
	text = strings.TrimPrefix(strings.TrimSpace(text), "+")
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0
	}
	if n <= minInput || n >= maxInput {
		return 0
	}
	return int(n)
}
