package banker

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Snapshot returns the loaded records as a generic json document:
//
//	{"accounts": {"<short name>": {...}}, "schedule": {"<name>": {...}}, "frequencies": {...}}
//
// It is meant to be queried with Query.
func Snapshot(accounts []*Account, schedule *Schedule, freqs Frequencies) (any, error) {
	doc := struct {
		Accounts    map[string]*Account          `json:"accounts"`
		Schedule    map[string]*ScheduleItem     `json:"schedule"`
		Frequencies map[string]FrequencyPolicy `json:"frequencies"`
	}{
		Accounts:    make(map[string]*Account),
		Schedule:    make(map[string]*ScheduleItem),
		Frequencies: freqs,
	}
	for _, a := range accounts {
		doc.Accounts[a.ShortName] = a
	}
	if schedule != nil {
		for _, it := range schedule.Items {
			doc.Schedule[it.Name] = it
		}
	}

	// round trip through json to get plain maps and slices jsonpath can walk.
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot encode snapshot: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("cannot decode snapshot: %w", err)
	}
	return generic, nil
}

// Query evaluates a JSONPath expression (e.g. "$.accounts.chk.statement_period") on doc.
func Query(doc any, expr string) (any, error) {
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", expr, err)
	}
	return v, nil
}
