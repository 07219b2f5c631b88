package banker

import "fmt"

// Window is a half-open range of dates [From, To).
type Window struct{ From, To Date }

// NewWindow creates a new window. If 'from' is after 'to', they are swapped.
func NewWindow(from, to Date) Window {
	if from.After(to) {
		from, to = to, from
	}
	return Window{From: from, To: to}
}

// Contains returns true if the date is in the window: From is included, To is not.
func (w Window) Contains(date Date) bool { return !date.Before(w.From) && date.Before(w.To) }

// Days returns the number of days covered by the window.
func (w Window) Days() int { return w.From.DaysUntil(w.To) }

func (w Window) String() string { return fmt.Sprintf("[%s, %s)", w.From, w.To) }

// ToleranceWindow returns the window in which a document satisfies the period starting on 'start'.
//
// The window spans one period plus the buffer, so that a monthly statement
// arriving a few days late still counts for its month.
func (p FrequencyPolicy) ToleranceWindow(start Date) Window {
	return Window{From: start, To: start.Add(p.PeriodDays + p.BufferDays)}
}
