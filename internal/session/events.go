package session

import "fmt"

// Event is a user intent dispatched into a Session. The set is closed: only
// the types in this file implement it.
type Event interface {
	fmt.Stringer
	event()
}

// Begin starts the first exercise.
type Begin struct{}

// SetInput replaces the entered value with the parsed Text.
type SetInput struct {
	Text string
}

// Submit checks the entered value against the hidden one.
type Submit struct{}

// Advance moves from a result to a new exercise.
type Advance struct{}

// Conclude moves from a result to the final evaluation.
type Conclude struct{}

// Restart clears all counters and starts a new exercise.
type Restart struct{}

func (Begin) event()    {}
func (SetInput) event() {}
func (Submit) event()   {}
func (Advance) event()  {}
func (Conclude) event() {}
func (Restart) event()  {}

func (Begin) String() string      { return "begin" }
func (e SetInput) String() string { return fmt.Sprintf("set-input(%q)", e.Text) }
func (Submit) String() string     { return "submit" }
func (Advance) String() string    { return "advance" }
func (Conclude) String() string   { return "conclude" }
func (Restart) String() string    { return "restart" }
