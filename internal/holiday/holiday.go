package holiday

import (
	"errors"
	"time"
)

// Status classifies a single date lookup
type Status int

const (
	// StatusUnknown means the resolver could not answer (registry unreadable, fetch failed)
	StatusUnknown Status = iota
	StatusNotHoliday
	StatusHoliday
)

func (s Status) String() string {
	switch s {
	case StatusHoliday:
		return "holiday"
	case StatusNotHoliday:
		return "not-holiday"
	default:
		return "unknown"
	}
}

var (
	// ErrSectionNotFound is returned by Registry.Section when the document has no holiday section
	ErrSectionNotFound = errors.New("holiday section not found")

	// ErrDuplicateDate is returned by a strict Registry when two entries share a date
	ErrDuplicateDate = errors.New("duplicate holiday date")
)

// Lookup is the answer for one date
type Lookup struct {
	Date   time.Time
	Status Status
	Label  string
}

// IsHoliday reports whether the lookup found a holiday
func (l Lookup) IsHoliday() bool {
	return l.Status == StatusHoliday
}

// Entry is a single holiday found in a registry
type Entry struct {
	Date  time.Time
	Title string // heading text as written
	Label string // cleaned title
}

// Resolver answers whether a date is a holiday.
// A non-nil error always comes with StatusUnknown.
type Resolver interface {
	Resolve(date time.Time) (Lookup, error)
}

func holidayLookup(date time.Time, label string) Lookup {
	return Lookup{Date: date, Status: StatusHoliday, Label: label}
}

func notHoliday(date time.Time) Lookup {
	return Lookup{Date: date, Status: StatusNotHoliday}
}

func unknown(date time.Time) Lookup {
	return Lookup{Date: date, Status: StatusUnknown}
}
