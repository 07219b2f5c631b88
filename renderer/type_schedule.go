package renderer

import (
	"slices"

	"github.com/etnz/banker"
)

// ScheduleView is the data of the schedule report.
type ScheduleView struct {
	On    banker.Date   `json:"on"`
	Items []ScheduleRow `json:"items"`
}

// ScheduleRow is one scheduled item.
type ScheduleRow struct {
	Name      string       `json:"name"`
	Payee     string       `json:"payee"`
	Frequency string       `json:"frequency"`
	Amount    banker.Money `json:"amount"`
	Category  string       `json:"category"`
	NextDue   banker.Date  `json:"nextDue"`
}

// NewScheduleView lists the active items of s, sorted by next due date.
// Inactive items are included if all is true.
func NewScheduleView(s *banker.Schedule, on banker.Date, all bool) *ScheduleView {
	v := &ScheduleView{On: on}
	items := s.Active()
	if all {
		items = s.Items
	}
	for _, it := range items {
		v.Items = append(v.Items, ScheduleRow{
			Name:      it.Name,
			Payee:     it.Payee,
			Frequency: it.Frequency.Name,
			Amount:    it.Amount,
			Category:  it.Category,
			NextDue:   it.NextDue(on),
		})
	}
	slices.SortStableFunc(v.Items, func(a, b ScheduleRow) int { return a.NextDue.Compare(b.NextDue) })
	return v
}
