package holiday

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/username/class-schedule/pkg/dateutil"
	"go.uber.org/zap"
)

const sampleRegistry = `#+TITLE: Calendario 2024

* Clases
** Repaso parcial
   <2024-03-13 Wed>

* Feriados
** Carnaval (feriado nacional)
   <2024-02-12 Mon>
** Día de la Memoria (feriado nacional)
   <2024-03-24 Sun>
** TODO Feriado puente :puente:
   SCHEDULED: <2024-04-01 Mon>
*** Malvinas (feriado inamovible)
    <2024-04-02 Tue>

* Notas
** 2024-05-01 fuera de la sección
`

func writeRegistry(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feriados.org")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestRegistry(t *testing.T, content string, options RegistryOptions) *Registry {
	t.Helper()

	return NewRegistry(FileSource{Path: writeRegistry(t, content)}, options, zap.NewNop())
}

func TestRegistry_Resolve(t *testing.T) {
	registry := newTestRegistry(t, sampleRegistry, RegistryOptions{})

	tests := []struct {
		name       string
		date       time.Time
		wantStatus Status
		wantLabel  string
	}{
		{"labelled holiday", dateutil.Date(2024, time.March, 24), StatusHoliday, "Día de la Memoria"},
		{"first entry", dateutil.Date(2024, time.February, 12), StatusHoliday, "Carnaval"},
		{"todo with tags", dateutil.Date(2024, time.April, 1), StatusHoliday, "Feriado puente"},
		{"nested entry", dateutil.Date(2024, time.April, 2), StatusHoliday, "Malvinas"},
		{"regular day", dateutil.Date(2024, time.March, 11), StatusNotHoliday, ""},
		{"date in another section", dateutil.Date(2024, time.March, 13), StatusNotHoliday, ""},
		{"date after the section", dateutil.Date(2024, time.May, 1), StatusNotHoliday, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup, err := registry.Resolve(tt.date)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}

			if lookup.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", lookup.Status, tt.wantStatus)
			}
			if lookup.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", lookup.Label, tt.wantLabel)
			}
		})
	}
}

func TestRegistry_SectionIsCaseInsensitive(t *testing.T) {
	registry := newTestRegistry(t, sampleRegistry, RegistryOptions{Section: "FERIADOS"})

	lookup, err := registry.Resolve(dateutil.Date(2024, time.March, 24))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !lookup.IsHoliday() {
		t.Errorf("Resolve() = %+v, want holiday", lookup)
	}
}

func TestRegistry_MissingSection(t *testing.T) {
	registry := newTestRegistry(t, sampleRegistry, RegistryOptions{Section: "Holidays"})

	lookup, err := registry.Resolve(dateutil.Date(2024, time.March, 24))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if lookup.Status != StatusNotHoliday {
		t.Errorf("Status = %v, want %v", lookup.Status, StatusNotHoliday)
	}

	_, err = registry.Entries()
	if !errors.Is(err, ErrSectionNotFound) {
		t.Errorf("Entries() error = %v, want ErrSectionNotFound", err)
	}
}

func TestRegistry_UnreadableSource(t *testing.T) {
	source := FileSource{Path: filepath.Join(t.TempDir(), "missing.org")}
	registry := NewRegistry(source, RegistryOptions{}, zap.NewNop())

	date := dateutil.Date(2024, time.March, 24)
	lookup, err := registry.Resolve(date)
	if err == nil {
		t.Fatal("Resolve() expected error for missing registry, got nil")
	}
	if lookup.Status != StatusUnknown {
		t.Errorf("Status = %v, want %v", lookup.Status, StatusUnknown)
	}
	if !lookup.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", lookup.Date, date)
	}
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	content := `* Feriados
** Primero (a)
   <2024-03-24 Sun>
** Segundo (b)
   <2024-03-24 Sun>
`
	registry := newTestRegistry(t, content, RegistryOptions{})

	lookup, err := registry.Resolve(dateutil.Date(2024, time.March, 24))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if lookup.Label != "Primero" {
		t.Errorf("Label = %q, want %q", lookup.Label, "Primero")
	}
}

func TestRegistry_StrictRejectsDuplicates(t *testing.T) {
	content := `* Feriados
** Primero
   <2024-03-24 Sun>
** Segundo
   <2024-03-24 Sun>
`
	registry := newTestRegistry(t, content, RegistryOptions{Strict: true})

	err := registry.Load()
	if !errors.Is(err, ErrDuplicateDate) {
		t.Fatalf("Load() error = %v, want ErrDuplicateDate", err)
	}

	lookup, err := registry.Resolve(dateutil.Date(2024, time.March, 24))
	if err == nil || lookup.Status != StatusUnknown {
		t.Errorf("Resolve() = %+v, %v; want unknown with error", lookup, err)
	}
}

func TestRegistry_StrictAllowsRepeatedDateInOneEntry(t *testing.T) {
	content := `* Feriados
** Navidad
   SCHEDULED: <2024-12-25 Wed>
   <2024-12-25 Wed>
`
	registry := newTestRegistry(t, content, RegistryOptions{Strict: true})

	if err := registry.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestRegistry_ReadsOnce(t *testing.T) {
	path := writeRegistry(t, sampleRegistry)
	registry := NewRegistry(FileSource{Path: path}, RegistryOptions{}, zap.NewNop())

	date := dateutil.Date(2024, time.March, 24)
	if lookup, err := registry.Resolve(date); err != nil || !lookup.IsHoliday() {
		t.Fatalf("Resolve() = %+v, %v; want holiday", lookup, err)
	}

	// Content stays stable for the life of the registry
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if lookup, err := registry.Resolve(date); err != nil || !lookup.IsHoliday() {
		t.Fatalf("Resolve() after removal = %+v, %v; want cached holiday", lookup, err)
	}

	registry.Reset()
	if _, err := registry.Resolve(date); err == nil {
		t.Error("Resolve() after Reset expected error for removed file, got nil")
	}
}

func TestRegistry_Entries(t *testing.T) {
	registry := newTestRegistry(t, sampleRegistry, RegistryOptions{})

	entries, err := registry.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}

	want := []struct {
		date  string
		label string
	}{
		{"2024-02-12", "Carnaval"},
		{"2024-03-24", "Día de la Memoria"},
		{"2024-04-01", "Feriado puente"},
		{"2024-04-02", "Malvinas"},
	}

	if len(entries) != len(want) {
		t.Fatalf("Entries() returned %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if got := dateutil.FormatDate(entries[i].Date); got != w.date {
			t.Errorf("entries[%d].Date = %s, want %s", i, got, w.date)
		}
		if entries[i].Label != w.label {
			t.Errorf("entries[%d].Label = %q, want %q", i, entries[i].Label, w.label)
		}
	}
}

func TestRegistry_HTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feriados.org" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(sampleRegistry))
	}))
	defer server.Close()

	logger := zap.NewNop()

	t.Run("ok", func(t *testing.T) {
		source := NewSource(server.URL+"/feriados.org", time.Second, logger)
		if _, ok := source.(*HTTPSource); !ok {
			t.Fatalf("NewSource() = %T, want *HTTPSource", source)
		}

		registry := NewRegistry(source, RegistryOptions{}, logger)
		lookup, err := registry.Resolve(dateutil.Date(2024, time.March, 24))
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if lookup.Label != "Día de la Memoria" {
			t.Errorf("Label = %q, want %q", lookup.Label, "Día de la Memoria")
		}
	})

	t.Run("not found", func(t *testing.T) {
		registry := NewRegistry(NewSource(server.URL+"/missing.org", time.Second, logger), RegistryOptions{}, logger)
		lookup, err := registry.Resolve(dateutil.Date(2024, time.March, 24))
		if err == nil {
			t.Fatal("Resolve() expected error for 404, got nil")
		}
		if lookup.Status != StatusUnknown {
			t.Errorf("Status = %v, want %v", lookup.Status, StatusUnknown)
		}
	})
}

func TestNewSource_File(t *testing.T) {
	source := NewSource("/tmp/feriados.org", 0, zap.NewNop())
	if _, ok := source.(FileSource); !ok {
		t.Errorf("NewSource() = %T, want FileSource", source)
	}
}
