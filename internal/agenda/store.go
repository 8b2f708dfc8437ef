package agenda

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/errors"
	"github.com/Iron-Ham/calgrid/internal/event"
	"github.com/Iron-Ham/calgrid/internal/layout"
	"github.com/Iron-Ham/calgrid/internal/logging"
)

// Containers hands out item containers for a Store. The layout owner usually
// implements it.
type Containers interface {
	ContainerForItem() layout.Container
	ClearContainer(c layout.Container)
}

// Option configures a Store.
type Option func(*Store)

// WithFilter limits the entries handed to the layout engine.
func WithFilter(f *Filter) Option {
	return func(s *Store) { s.filter = f }
}

// WithMaxParallel bounds the number of files loaded at once.
func WithMaxParallel(n int) Option {
	return func(s *Store) { s.maxParallel = n }
}

// WithBus publishes an AgendaReloadedEvent after every load.
func WithBus(bus *event.Bus) Option {
	return func(s *Store) { s.bus = bus }
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithContainers sets where item containers come from. Without it the store
// numbers containers itself, starting at FirstItemContainer.
func WithContainers(c Containers) Option {
	return func(s *Store) { s.containers = c }
}

// FirstItemContainer is the first handle a store allocates on its own.
const FirstItemContainer layout.Container = 1 << 20

// Store holds the loaded entries and serves them to a layout.Panel as items.
// It implements layout.ItemGenerator and layout.ItemMover.
type Store struct {
	mu          sync.RWMutex
	paths       []string
	filter      *Filter
	maxParallel int
	bus         *event.Bus
	logger      *logging.Logger

	all     []Entry
	entries []Entry
	lastErr error

	containers Containers
	free       *layout.Pool
	nextHandle layout.Container
}

// NewStore returns an empty store reading from paths.
func NewStore(paths []string, opts ...Option) *Store {
	s := &Store{
		paths:       slices.Clone(paths),
		maxParallel: DefaultMaxParallelLoads,
		free:        layout.NewPool(),
		nextHandle:  FirstItemContainer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NopLogger()
	}
	s.logger = s.logger.WithComponent("agenda")
	return s
}

// Paths returns the source files of the store.
func (s *Store) Paths() []string { return slices.Clone(s.paths) }

// Load reads every source file without changing the store. Files that fail
// to load are skipped and their errors joined.
func (s *Store) Load(ctx context.Context) ([]Entry, error) {
	return LoadAll(ctx, s.paths, s.maxParallel, s.logger)
}

// Reload is Load followed by Replace. The successful files are applied even
// when an error is returned. A panel reading the store must not be in a
// measure pass while Reload runs; the TUI loads off the update loop and
// calls Replace from it instead.
func (s *Store) Reload(ctx context.Context) error {
	entries, err := s.Load(ctx)
	s.Replace(entries, err)
	return err
}

// Replace swaps in entries, applying the filter, and publishes an
// AgendaReloadedEvent carrying loadErr.
func (s *Store) Replace(entries []Entry, loadErr error) {
	s.mu.Lock()
	s.all = slices.Clone(entries)
	s.entries = s.filter.Apply(entries)
	slices.SortFunc(s.entries, compareEntries)
	s.lastErr = loadErr
	n, total := len(s.entries), len(s.all)
	s.mu.Unlock()

	s.logger.Info("agenda reloaded", "files", len(s.paths), "entries", n, "filtered_out", total-n)
	s.bus.Publish(event.NewAgendaReloadedEvent(s.Paths(), n, loadErr))
}

// Entries returns a copy of the filtered entries, sorted by start.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Between returns the entries overlapping [from, to].
func (s *Store) Between(from, to calendar.Date) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.Overlaps(from, to) {
			out = append(out, e)
		}
	}
	return out
}

// On returns the entries covering d.
func (s *Store) On(d calendar.Date) []Entry { return s.Between(d, d) }

// Len returns the number of entries after filtering.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// LastError returns the error of the last load, if any.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ItemCount implements layout.ItemGenerator.
func (s *Store) ItemCount() int { return s.Len() }

// RealizeItem implements layout.ItemGenerator. The entry itself is the item
// data.
func (s *Store) RealizeItem(i int, t layout.Tagger) (layout.Container, any, error) {
	s.mu.RLock()
	if i < 0 || i >= len(s.entries) {
		s.mu.RUnlock()
		return layout.NoContainer, nil, errors.NewNotFoundError("entry", strconv.Itoa(i))
	}
	e := s.entries[i]
	s.mu.RUnlock()

	c := s.container()
	if err := t.SetDay(c, e.Tag()); err != nil {
		return c, nil, err
	}
	t.SetSpan(c, e.Span())
	return c, e, nil
}

// RecycleItem implements layout.ItemGenerator.
func (s *Store) RecycleItem(c layout.Container) {
	if s.containers != nil {
		s.containers.ClearContainer(c)
	}
	s.free.Push(c)
}

// MoveItem implements layout.ItemMover. The entry keeps its time of day.
func (s *Store) MoveItem(data any, start calendar.Date, span int) {
	moved, ok := data.(Entry)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range [][]Entry{s.all, s.entries} {
		for i := range list {
			if list[i].ID == moved.ID {
				list[i] = list[i].moveTo(start, span)
			}
		}
	}
	slices.SortFunc(s.entries, compareEntries)
	s.logger.Debug("entry moved", "id", moved.ID, "start", start.String(), "days", span)
}

// Save writes every entry read from path back to it, including the ones the
// filter hides.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	var out []Entry
	for _, e := range s.all {
		if e.Source == path {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()
	return WriteFile(path, "", out)
}

func (s *Store) container() layout.Container {
	if c, ok := s.free.Pop(); ok {
		return c
	}
	if s.containers != nil {
		return s.containers.ContainerForItem()
	}
	c := s.nextHandle
	s.nextHandle++
	return c
}
