package session

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Dispatcher is the entry point collaborators use to drive a Session. Every
// event is traced to the logger under the current run id.
type Dispatcher struct {
	sess  *Session
	log   *zap.Logger
	runID string
}

// NewDispatcher wraps sess. A nil logger disables tracing.
func NewDispatcher(sess *Session, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		sess:  sess,
		log:   log,
		runID: newRunID(),
	}
}

// RunID identifies the current run; Restart starts a new one.
func (d *Dispatcher) RunID() string {
	return d.runID
}

// Snapshot returns the current session state.
func (d *Dispatcher) Snapshot() Snapshot {
	return d.sess.Snapshot()
}

// Dispatch applies ev and returns the resulting snapshot.
func (d *Dispatcher) Dispatch(ev Event) (Snapshot, error) {
	if _, ok := ev.(Restart); ok {
		prev := d.runID
		d.runID = newRunID()
		d.log.Debug("run restarted", zap.String("run_id", d.runID), zap.String("previous_run_id", prev))
	}
	err := d.sess.Apply(ev)
	snap := d.sess.Snapshot()
	switch {
	case err == nil:
		d.log.Debug("event applied",
			zap.String("run_id", d.runID),
			zap.Stringer("event", ev),
			zap.Object("state", snap),
		)
	case errors.Is(err, ErrInternalFault):
		d.log.Error("session fault",
			zap.String("run_id", d.runID),
			zap.Stringer("event", ev),
			zap.Object("state", snap),
			zap.Error(err),
		)
	default:
		d.log.Debug("event rejected",
			zap.String("run_id", d.runID),
			zap.Stringer("event", ev),
			zap.Stringer("phase", snap.Phase),
			zap.Error(err),
		)
	}
	return snap, err
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Snapshot) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("phase", s.Phase.String())
	enc.AddBool("last_answer_wrong", s.LastAnswerWrong)
	enc.AddInt("answered", s.TotalAnswered)
	enc.AddInt("errors", s.TotalErrors)
	enc.AddInt("entered", s.Entered)
	enc.AddString("hidden", s.Problem.Hidden.String())
	enc.AddInt("num_a", s.Problem.NumA)
	enc.AddInt("den_a", s.Problem.DenA)
	enc.AddInt("num_b", s.Problem.NumB)
	enc.AddInt("den_b", s.Problem.DenB)
	return enc.AddArray("histogram", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, n := range s.Histogram {
			arr.AppendInt(n)
		}
		return nil
	}))
}

func newRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}
