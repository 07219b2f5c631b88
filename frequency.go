package banker

import (
	"maps"
	"slices"
	"strings"
)

// FrequencyPolicy describes the cadence at which a periodic document is expected.
type FrequencyPolicy struct {
	Name       string `yaml:"-" json:"name"`
	PeriodDays int    `yaml:"period_days" json:"period_days"` // nominal interval between two documents
	BufferDays int    `yaml:"buffer_days" json:"buffer_days"` // tolerance added to the interval
}

// Frequencies is the lookup table of supported frequency policies, by name.
type Frequencies map[string]FrequencyPolicy

// Standard frequency names.
const (
	BiWeekly  = "bi-weekly"
	Monthly   = "monthly"
	Quarterly = "quarterly"
)

// DefaultFrequencies returns the built-in frequency table.
func DefaultFrequencies() Frequencies {
	return Frequencies{
		BiWeekly:  {Name: BiWeekly, PeriodDays: 14, BufferDays: 2},
		Monthly:   {Name: Monthly, PeriodDays: 30, BufferDays: 5},
		Quarterly: {Name: Quarterly, PeriodDays: 90, BufferDays: 5},
	}
}

// Resolve returns the policy registered under name.
func (f Frequencies) Resolve(name string) (FrequencyPolicy, error) {
	p, ok := f[normalizeFrequency(name)]
	if !ok {
		return FrequencyPolicy{}, &UnknownFrequencyError{Name: name}
	}
	return p, nil
}

// Merge returns a copy of f where the policies in other are added or replace existing ones.
func (f Frequencies) Merge(other Frequencies) Frequencies {
	merged := make(Frequencies, len(f)+len(other))
	maps.Copy(merged, f)
	for name, p := range other {
		name = normalizeFrequency(name)
		p.Name = name
		merged[name] = p
	}
	return merged
}

// Names returns the supported frequency names, sorted.
func (f Frequencies) Names() []string {
	return slices.Sorted(maps.Keys(f))
}

// Policies returns the policies sorted by period length, then name.
func (f Frequencies) Policies() []FrequencyPolicy {
	policies := slices.Collect(maps.Values(f))
	slices.SortFunc(policies, func(a, b FrequencyPolicy) int {
		if a.PeriodDays != b.PeriodDays {
			return a.PeriodDays - b.PeriodDays
		}
		return strings.Compare(a.Name, b.Name)
	})
	return policies
}

// Validate checks that every policy has a usable period.
func (f Frequencies) Validate() error {
	for _, name := range f.Names() {
		p := f[name]
		if p.PeriodDays <= 0 {
			return &ConfigError{Msg: "frequency " + name + ": period_days must be positive"}
		}
		if p.BufferDays < 0 {
			return &ConfigError{Msg: "frequency " + name + ": buffer_days must not be negative"}
		}
	}
	return nil
}

func normalizeFrequency(name string) string { return strings.ToLower(strings.TrimSpace(name)) }
