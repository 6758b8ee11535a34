package schedule

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var weekdayByName = func() map[string]time.Weekday {
	names := make(map[string]time.Weekday, 14)
	for d := time.Sunday; d <= time.Saturday; d++ {
		names[d.String()] = d
		names[d.String()[:3]] = d
	}
	return names
}()

// WeekdaySet is the set of weekdays a class meets on
type WeekdaySet map[time.Weekday]struct{}

// NewWeekdaySet builds a set from weekdays; duplicates collapse
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	set := make(WeekdaySet, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

// Contains reports whether the weekday is selected
func (s WeekdaySet) Contains(day time.Weekday) bool {
	_, ok := s[day]
	return ok
}

// Names returns the canonical English names, Monday first
func (s WeekdaySet) Names() []string {
	days := make([]time.Weekday, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return mondayFirst(days[i]) < mondayFirst(days[j])
	})

	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return names
}

func mondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// CanonicalWeekday title-cases a weekday token: "monday" -> "Monday"
func CanonicalWeekday(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// ParseWeekdays reads a comma separated weekday list such as "monday, Wednesday".
// English names, three-letter abbreviations and names in the translator's
// locale are accepted. Tokens that name no weekday are returned separately.
func ParseWeekdays(input string, translator *Translator) (WeekdaySet, []string) {
	set := make(WeekdaySet)
	unknown := []string{}

	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		day, ok := lookupWeekday(token, translator)
		if !ok {
			unknown = append(unknown, token)
			continue
		}
		set[day] = struct{}{}
	}

	return set, unknown
}

func lookupWeekday(token string, translator *Translator) (time.Weekday, bool) {
	if day, ok := weekdayByName[CanonicalWeekday(token)]; ok {
		return day, true
	}

	if translator == nil {
		return 0, false
	}

	en, ok := translator.english(token)
	if !ok {
		return 0, false
	}

	day, ok := weekdayByName[CanonicalWeekday(en)]
	return day, ok
}
