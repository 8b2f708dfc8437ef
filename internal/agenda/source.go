package agenda

import (
	"context"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/errors"
	"github.com/Iron-Ham/calgrid/internal/logging"
)

// DefaultMaxParallelLoads bounds LoadAll when no limit is given.
const DefaultMaxParallelLoads = 4

// File is the on-disk layout of an agenda source.
type File struct {
	Name    string      `yaml:"name,omitempty"`
	Entries []FileEntry `yaml:"entries"`
}

// FileEntry is one entry as written in a source file. Start and End accept
// "2006-01-02", "2006-01-02 15:04", "2006-01-02T15:04" and RFC 3339.
type FileEntry struct {
	ID       string   `yaml:"id,omitempty"`
	Title    string   `yaml:"title"`
	Start    string   `yaml:"start"`
	End      string   `yaml:"end,omitempty"`
	Days     int      `yaml:"days,omitempty"`
	Location string   `yaml:"location,omitempty"`
	Notes    string   `yaml:"notes,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
}

var timeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

// parseStart parses a start value and reports whether it has no time of day.
func parseStart(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if d, err := calendar.ParseDate(s); err == nil {
		return d.Time(time.Local), true, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, errors.Wrapf(errors.ErrEntryInvalid, "unrecognized start %q", s)
}

// toEntry validates fe and converts it.
func (fe FileEntry) toEntry(source string) (Entry, error) {
	if strings.TrimSpace(fe.Title) == "" {
		return Entry{}, errors.Wrap(errors.ErrEntryInvalid, "missing title")
	}
	start, allDay, err := parseStart(fe.Start)
	if err != nil {
		return Entry{}, err
	}
	if fe.Days < 0 {
		return Entry{}, errors.Wrapf(errors.ErrEntryInvalid, "negative days %d", fe.Days)
	}

	days := max(fe.Days, 1)
	if fe.End != "" {
		end, _, err := parseStart(fe.End)
		if err != nil {
			return Entry{}, err
		}
		first, last := calendar.DateOf(start), calendar.DateOf(end)
		if last.Before(first) {
			return Entry{}, errors.Wrapf(errors.ErrEntryInvalid, "end %s before start %s", last, first)
		}
		days = first.DaysUntil(last) + 1
	}

	id := fe.ID
	if id == "" {
		id = uuid.NewString()
	}
	return Entry{
		ID:       id,
		Title:    strings.TrimSpace(fe.Title),
		Start:    start,
		AllDay:   allDay,
		Days:     days,
		Location: fe.Location,
		Notes:    fe.Notes,
		Tags:     fe.Tags,
		Source:   source,
	}, nil
}

// ParseFile decodes a source file. Invalid entries fail the whole file.
func ParseFile(data []byte, path string) ([]Entry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewSourceError("parse failed", errors.Join(errors.ErrSourceInvalid, err)).WithPath(path)
	}

	entries := make([]Entry, 0, len(f.Entries))
	for i, fe := range f.Entries {
		e, err := fe.toEntry(path)
		if err != nil {
			return nil, errors.NewSourceError("invalid entry", err).WithPath(path).WithEntry(i)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadFile reads and parses one source file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSourceError("source missing", errors.ErrSourceNotFound).WithPath(path)
		}
		return nil, errors.NewSourceError("read failed", err).WithPath(path)
	}
	return ParseFile(data, path)
}

// LoadAll reads paths with at most maxParallel files in flight. Files that
// fail are skipped; their errors are joined into the returned error while the
// entries of every other file are still returned, sorted by start.
func LoadAll(ctx context.Context, paths []string, maxParallel int, logger *logging.Logger) ([]Entry, error) {
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallelLoads
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	if len(paths) == 0 {
		return nil, nil
	}

	p := pool.NewWithResults[[]Entry]().
		WithContext(ctx).
		WithMaxGoroutines(maxParallel)

	for _, path := range paths {
		p.Go(func(ctx context.Context) ([]Entry, error) {
			if err := ctx.Err(); err != nil {
				return nil, errors.Join(errors.ErrCanceled, err)
			}
			entries, err := LoadFile(path)
			if err != nil {
				logger.Warn("agenda source skipped", "path", path, "error", err)
				return nil, err
			}
			logger.Debug("agenda source loaded", "path", path, "entries", len(entries))
			return entries, nil
		})
	}

	results, err := p.Wait()
	var all []Entry
	for _, r := range results {
		all = append(all, r...)
	}
	slices.SortFunc(all, compareEntries)
	return all, err
}

// WriteFile stores entries as a source file at path.
func WriteFile(path, name string, entries []Entry) error {
	f := File{Name: name, Entries: make([]FileEntry, 0, len(entries))}
	for _, e := range entries {
		fe := FileEntry{
			ID:       e.ID,
			Title:    e.Title,
			Location: e.Location,
			Notes:    e.Notes,
			Tags:     e.Tags,
		}
		if e.AllDay {
			fe.Start = e.StartDate().String()
		} else {
			fe.Start = e.Start.Format("2006-01-02 15:04")
		}
		if e.Span() > 1 {
			fe.End = e.EndDate().String()
		}
		f.Entries = append(f.Entries, fe)
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return errors.Wrap(err, "failed to encode agenda")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewSourceError("write failed", err).WithPath(path)
	}
	return nil
}
