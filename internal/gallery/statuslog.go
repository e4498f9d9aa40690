package gallery

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DefaultStatusHistory is the number of messages the status log keeps.
const DefaultStatusHistory = 100

// StatusLog is the one-line message area at the bottom of the gallery. Older
// messages stay reachable with the arrow buttons.
type StatusLog struct {
	label *widget.Label
	prev  *widget.Button
	next  *widget.Button

	history []string
	pos     int
	limit   int

	dispatch func(func())
}

// NewStatusLog creates an empty status log keeping up to limit messages.
func NewStatusLog(limit int) *StatusLog {
	if limit <= 0 {
		limit = DefaultStatusHistory
	}
	s := &StatusLog{
		label:    widget.NewLabel(""),
		pos:      -1,
		limit:    limit,
		dispatch: fyne.Do,
	}
	s.label.Truncation = fyne.TextTruncateEllipsis
	s.prev = widget.NewButtonWithIcon("", theme.MoveUpIcon(), s.Back)
	s.next = widget.NewButtonWithIcon("", theme.MoveDownIcon(), s.Forward)
	s.show()
	return s
}

// Log records message. It can be called from any goroutine, so it serves as
// the logger of the loader, the stage and the viewer.
func (s *StatusLog) Log(message string) {
	log.Println(message)
	s.dispatch(func() { s.append(message) })
}

// Logf formats and records a message.
func (s *StatusLog) Logf(format string, args ...interface{}) {
	s.Log(fmt.Sprintf(format, args...))
}

func (s *StatusLog) append(message string) {
	s.history = append(s.history, message)
	if over := len(s.history) - s.limit; over > 0 {
		s.history = s.history[over:]
	}
	s.pos = len(s.history) - 1
	s.show()
}

// Messages returns the kept history, oldest first.
func (s *StatusLog) Messages() []string {
	return append([]string(nil), s.history...)
}

// Current returns the message on display, or "" when there is none.
func (s *StatusLog) Current() string {
	if s.pos < 0 || s.pos >= len(s.history) {
		return ""
	}
	return s.history[s.pos]
}

// Back shows the previous message.
func (s *StatusLog) Back() {
	if s.pos > 0 {
		s.pos--
		s.show()
	}
}

// Forward shows the next message.
func (s *StatusLog) Forward() {
	if s.pos < len(s.history)-1 {
		s.pos++
		s.show()
	}
}

func (s *StatusLog) show() {
	if len(s.history) == 0 {
		s.label.SetText("")
		s.prev.Disable()
		s.next.Disable()
		return
	}
	s.label.SetText(fmt.Sprintf("[%d/%d] %s", s.pos+1, len(s.history), s.history[s.pos]))
	setEnabled(s.prev, s.pos > 0)
	setEnabled(s.next, s.pos < len(s.history)-1)
}

func setEnabled(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

// Bar lays the log out as a status bar with trailing on the right.
func (s *StatusLog) Bar(trailing fyne.CanvasObject) fyne.CanvasObject {
	return container.NewVBox(
		widget.NewSeparator(),
		container.NewBorder(nil, nil, container.NewHBox(s.prev, s.next), trailing, s.label),
	)
}
