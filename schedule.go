package banker

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// ScheduleItem is a recurring payment or income.
type ScheduleItem struct {
	Name      string          `json:"name"`
	Payee     string          `json:"payee"`
	StartDate Date            `json:"start_date"`
	Frequency FrequencyPolicy `json:"frequency"`
	Day       int             `json:"day,omitempty"` // day of the month, for monthly items
	Amount    Money           `json:"amount"`
	Category  string          `json:"category"`
	Active    bool            `json:"active"`
}

// Schedule is the set of scheduled items, sorted by name.
type Schedule struct {
	Items []*ScheduleItem `json:"items"`
}

type rawScheduleItem struct {
	Payee     string      `yaml:"payee"`
	StartDate Date        `yaml:"start-date"`
	Frequency string      `yaml:"frequency"`
	Day       int         `yaml:"day"`
	Amount    yamlDecimal `yaml:"amount"`
	Currency  string      `yaml:"currency"`
	Category  string      `yaml:"category"`
	Active    bool        `yaml:"active"`
}

// DecodeSchedule decodes a schedule file. Frequencies are resolved through freqs
// and amounts without currency get defaultCurrency.
func DecodeSchedule(r io.Reader, freqs Frequencies, defaultCurrency string) (*Schedule, error) {
	var raw struct {
		Items map[string]rawScheduleItem `yaml:"items"`
	}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	s := new(Schedule)
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(raw.Items)) {
		it := raw.Items[name]
		policy, err := freqs.Resolve(it.Frequency)
		if err != nil {
			errs = append(errs, fmt.Errorf("schedule item %q: %w", name, err))
			continue
		}
		if it.StartDate.IsZero() {
			errs = append(errs, fmt.Errorf("schedule item %q: missing start-date", name))
			continue
		}
		if it.Day < 0 || it.Day > 31 {
			errs = append(errs, fmt.Errorf("schedule item %q: invalid day %d", name, it.Day))
			continue
		}
		currency := it.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		s.Items = append(s.Items, &ScheduleItem{
			Name:      name,
			Payee:     it.Payee,
			StartDate: it.StartDate,
			Frequency: policy,
			Day:       it.Day,
			Amount:    M(it.Amount.Decimal, currency),
			Category:  it.Category,
			Active:    it.Active,
		})
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSchedule reads the schedule file at path.
func LoadSchedule(path string, freqs Frequencies, defaultCurrency string) (*Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := DecodeSchedule(f, freqs, defaultCurrency)
	if err != nil {
		return nil, &ConfigError{Path: path, Msg: "invalid schedule", Err: err}
	}
	return s, nil
}

// Active returns the active items.
func (s *Schedule) Active() []*ScheduleItem {
	var items []*ScheduleItem
	for _, it := range s.Items {
		if it.Active {
			items = append(items, it)
		}
	}
	return items
}

// NextDue returns the first due date on or after 'on'.
//
// Monthly items with a day of the month are due on that day (or the last day
// of shorter months), other items every Frequency.PeriodDays from their start.
func (it *ScheduleItem) NextDue(on Date) Date {
	if !it.StartDate.Before(on) {
		return it.StartDate
	}
	if it.Frequency.Name == Monthly && it.Day > 0 {
		for m := 0; ; m++ {
			due := dayOfMonth(on.Year(), on.Month()+time.Month(m), it.Day)
			if !due.Before(on) {
				return due
			}
		}
	}
	period := it.Frequency.PeriodDays
	if period <= 0 {
		return it.StartDate
	}
	elapsed := it.StartDate.DaysUntil(on)
	k := (elapsed + period - 1) / period
	return it.StartDate.Add(k * period)
}

// dayOfMonth returns the given day of the month, clamped to the month's last day.
func dayOfMonth(year int, month time.Month, day int) Date {
	first := NewDate(year, month, 1)
	last := NewDate(first.Year(), first.Month()+1, 0).Day()
	return NewDate(first.Year(), first.Month(), min(day, last))
}
