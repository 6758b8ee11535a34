package holiday

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/username/class-schedule/pkg/dateutil"
	"go.uber.org/zap"
)

// DefaultSection is the top-level heading that holds holidays
const DefaultSection = "Feriados"

var (
	headingLine = regexp.MustCompile(`^(\*+)\s+(.*)$`)
	isoDate     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// RegistryOptions controls how a registry document is interpreted
type RegistryOptions struct {
	Section string // top-level heading title, matched case-insensitively
	Strict  bool   // reject documents where two entries share a date
}

// Registry resolves holidays from an outline document:
//
//	* Feriados
//	** Día de la Memoria (feriado nacional)
//	   <2024-03-24 Sun>
//
// The document is read once, on Load or on the first Resolve, and kept for the
// life of the Registry. Build a new Registry to pick up changes.
type Registry struct {
	source  Source
	options RegistryOptions
	logger  *zap.Logger

	mu      sync.Mutex
	loaded  bool
	loadErr error
	found   bool
	entries []registryEntry
}

type registryEntry struct {
	title string
	text  string
}

// NewRegistry creates a new Registry instance
func NewRegistry(source Source, options RegistryOptions, logger *zap.Logger) *Registry {
	if options.Section == "" {
		options.Section = DefaultSection
	}

	return &Registry{
		source:  source,
		options: options,
		logger:  logger,
	}
}

// Load reads and parses the registry document
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadLocked()
}

// Reset drops the parsed document so the next call reads it again
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loaded = false
	r.loadErr = nil
	r.found = false
	r.entries = nil
}

func (r *Registry) loadLocked() error {
	if r.loaded {
		return r.loadErr
	}

	r.loaded = true
	r.loadErr = r.parse()
	if r.loadErr != nil {
		r.found = false
		r.entries = nil
	}

	return r.loadErr
}

func (r *Registry) parse() error {
	rc, err := r.source.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	var (
		inSection bool
		current   *registryEntry
		entries   []registryEntry
		found     bool
	)

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		match := headingLine.FindStringSubmatch(line)
		if match == nil {
			if current != nil {
				current.text += "\n" + line
			}
			continue
		}

		level := len(match[1])
		if level == 1 {
			flush()
			inSection = strings.EqualFold(CleanLabel(match[2]), CleanLabel(r.options.Section))
			if inSection {
				found = true
			}
			continue
		}

		if !inSection {
			continue
		}

		// Every nested heading is its own entry, whatever its depth
		flush()
		current = &registryEntry{
			title: strings.TrimSpace(match[2]),
			text:  line,
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday registry: %w", err)
	}

	if !found {
		r.logger.Warn("Holiday section not found in registry",
			zap.String("source", r.source.String()),
			zap.String("section", r.options.Section))
	}

	if err := r.checkDuplicates(entries); err != nil {
		return err
	}

	r.found = found
	r.entries = entries

	r.logger.Info("Holiday registry loaded",
		zap.String("source", r.source.String()),
		zap.Bool("section_found", found),
		zap.Int("entries", len(entries)))

	return nil
}

// checkDuplicates warns about dates claimed by more than one entry.
// The first entry in document order wins unless the registry is strict.
func (r *Registry) checkDuplicates(entries []registryEntry) error {
	firstTitle := make(map[string]string)

	for _, entry := range entries {
		for _, date := range uniqueDates(entry.text) {
			first, seen := firstTitle[date]
			if !seen {
				firstTitle[date] = entry.title
				continue
			}

			if r.options.Strict {
				return fmt.Errorf("%w: %s in %q and %q", ErrDuplicateDate, date, first, entry.title)
			}

			r.logger.Warn("Date claimed by more than one holiday entry, first one wins",
				zap.String("date", date),
				zap.String("used", first),
				zap.String("ignored", entry.title))
		}
	}

	return nil
}

// Resolve checks the holiday section for an entry mentioning the date
func (r *Registry) Resolve(date time.Time) (Lookup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadLocked(); err != nil {
		return unknown(date), err
	}

	if !r.found {
		return notHoliday(date), nil
	}

	dateStr := dateutil.FormatDate(date)
	for _, entry := range r.entries {
		if strings.Contains(entry.text, dateStr) {
			return holidayLookup(date, CleanLabel(entry.title)), nil
		}
	}

	return notHoliday(date), nil
}

// Entries lists every dated holiday in the section, in document order
func (r *Registry) Entries() ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadLocked(); err != nil {
		return nil, err
	}

	if !r.found {
		return nil, fmt.Errorf("%w: %q in %s", ErrSectionNotFound, r.options.Section, r.source.String())
	}

	result := []Entry{}
	for _, entry := range r.entries {
		for _, dateStr := range uniqueDates(entry.text) {
			date, err := time.Parse(dateutil.ISODate, dateStr)
			if err != nil {
				r.logger.Warn("Failed to parse holiday date",
					zap.String("date", dateStr),
					zap.String("entry", entry.title),
					zap.Error(err))
				continue
			}

			result = append(result, Entry{
				Date:  date,
				Title: entry.title,
				Label: CleanLabel(entry.title),
			})
		}
	}

	return result, nil
}

func uniqueDates(text string) []string {
	seen := make(map[string]bool)
	dates := []string{}

	for _, date := range isoDate.FindAllString(text, -1) {
		if seen[date] {
			continue
		}
		seen[date] = true
		dates = append(dates, date)
	}

	return dates
}
