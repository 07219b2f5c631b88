package banker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// compactDateFormat is the integer-like form used in configuration files (20211215).
const compactDateFormat = "20060102"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// newStrictDate is like NewDate but refuses values that need normalization (2021-02-30).
func newStrictDate(year int, month time.Month, day int) (Date, error) {
	d := NewDate(year, month, day)
	if d.y != year || d.m != month || d.d != day {
		return Date{}, fmt.Errorf("invalid calendar date %04d-%02d-%02d", year, int(month), day)
	}
	return d, nil
}

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool {
	return d.y == 0 && d.m == 0 && d.d == 0
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted according to the layout defined by the argument.
//
//	See the documentation for the [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// Compare returns -1, 0 or +1 depending on whether d is before, equal or after x.
// It is suitable for slices.SortFunc.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// DaysUntil returns the number of days from d to x (negative if x is before d).
func (d Date) DaysUntil(x Date) int {
	return int(x.time().Sub(d.time()).Hours() / 24)
}

// ParseDate parses a Date from a string.
//
// It accepts the ISO format, leniently ("2021-12-15", "2021-12-1"), the compact
// integer form used in index files ("20211215") and full RFC3339 timestamps.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)

	if len(str) == len(compactDateFormat) && isDigits(str) {
		n, err := strconv.Atoi(str)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", str, err)
		}
		return compactDate(n)
	}

	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		// try the long format, yaml timestamps are sometimes written that way.
		on, err = time.Parse(time.RFC3339, str)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParse is like ParseDate but panics on error.
func MustParse(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// NormalizeDate converts a configuration value into a Date.
//
// Supported values are Date, time.Time, integers in the YYYYMMDD form and
// strings accepted by ParseDate. 20211215 and "2021-12-15" give the same Date.
func NormalizeDate(v any) (Date, error) {
	switch v := v.(type) {
	case Date:
		return v, nil
	case time.Time:
		return NewDate(v.Date()), nil
	case int:
		return compactDate(v)
	case int64:
		return compactDate(int(v))
	case uint64:
		return compactDate(int(v))
	case string:
		return ParseDate(v)
	default:
		return Date{}, fmt.Errorf("cannot convert %v (%T) to a date", v, v)
	}
}

// compactDate decodes 20211215 into 2021-12-15.
func compactDate(n int) (Date, error) {
	if n < 10000101 || n > 99991231 {
		return Date{}, fmt.Errorf("invalid date %d want format YYYYMMDD", n)
	}
	return newStrictDate(n/10000, time.Month(n/100%100), n%100)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
// The empty string is the zero Date.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*j = Date{}
		return nil
	}
	d, err := ParseDate(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	if j.IsZero() {
		return []byte(`""`), nil
	}
	str := j.String()
	return json.Marshal(&str)
}

// UnmarshalYAML decodes dates written as yaml timestamps (2021-12-15),
// plain strings or integers (20211215).
func (j *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a date, got a %s", value.Line, kindName(value.Kind))
	}
	d, err := ParseDate(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*j = d
	return nil
}

func (j Date) MarshalYAML() (any, error) {
	if j.IsZero() {
		return nil, nil
	}
	return j.String(), nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "scalar"
	}
}

// check that a Date pointer is a valid json and yaml marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
var _ yaml.Unmarshaler = (*Date)(nil)
var _ yaml.Marshaler = (*Date)(nil)
