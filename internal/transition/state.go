// Package transition implements the animators that fly the viewer image
// between a thumbnail and full screen.
//
// Presentation runs once and always succeeds. Dismissal can run straight
// through or be driven interactively with Update and then settled with Finish
// or Cancel. Both borrow the viewer chrome for the duration of one run and
// leave it attached to exactly one screen when they complete.
package transition

import (
	"errors"
	"fmt"
	"log"
)

// State is the progress of one transition run.
type State int

const (
	// Idle means Start has not been called yet.
	Idle State = iota
	// Pending means the transition has started but no update was applied.
	Pending
	// InteractiveUpdating means a gesture is feeding updates.
	InteractiveUpdating
	// Cancelling means the animation back to the start state is running.
	Cancelling
	// Finishing means the animation to the end state is running.
	Finishing
	// Completed means the run is over, successfully or not.
	Completed
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case InteractiveUpdating:
		return "interactive-updating"
	case Cancelling:
		return "cancelling"
	case Finishing:
		return "finishing"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrNotStarted is returned when Finish or Cancel is called before Start.
	ErrNotStarted = errors.New("transition not started")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("transition already started")
	// ErrCompleted is returned when a settled transition is driven again.
	ErrCompleted = errors.New("transition already settling or completed")
)

// LoggerFunc defines a function signature for logging messages.
type LoggerFunc func(message string)

func logMessage(logger LoggerFunc, format string, args ...interface{}) {
	if logger != nil {
		logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}
