package agenda

import (
	"context"
	"testing"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/event"
	"github.com/Iron-Ham/calgrid/internal/layout"
	"github.com/Iron-Ham/calgrid/internal/testutil"
)

// arena is a minimal layout owner that also hands out item containers.
type arena struct {
	next    layout.Container
	items   int
	cleared map[layout.Container]int
}

func newArena() *arena { return &arena{cleared: make(map[layout.Container]int)} }

func (a *arena) alloc() layout.Container {
	c := a.next
	a.next++
	return c
}

func (a *arena) ContainerForDate() layout.Container         { return a.alloc() }
func (a *arena) ContainerForWeekHeader() layout.Container   { return a.alloc() }
func (a *arena) ContainerForColumnHeader() layout.Container { return a.alloc() }

func (a *arena) ContainerForItem() layout.Container {
	a.items++
	return a.alloc()
}

func (a *arena) PrepareDate(layout.Container, *calendar.DayItem)          {}
func (a *arena) PrepareWeekHeader(layout.Container, int)                  {}
func (a *arena) PrepareColumnHeader(layout.Container, time.Weekday, bool) {}
func (a *arena) ClearContainer(c layout.Container)                        { a.cleared[c]++ }
func (a *arena) DesiredHeight(layout.Container) int                       { return 1 }

func newStoreFixture(t *testing.T, opts ...Option) (*Store, *layout.Panel, *arena) {
	t.Helper()

	_, paths := testutil.AgendaDir(t, map[string]string{"work.yaml": workAgenda})
	owner := newArena()
	store := NewStore(paths, append([]Option{WithContainers(owner)}, opts...)...)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	cfg := layout.DefaultConfig()
	cfg.Rows = 5
	p := layout.New(testutil.Date(2024, time.February, 1), cfg)
	p.Initialize(owner, store)
	return store, p, owner
}

func TestStore_FeedsPanel(t *testing.T) {
	store, p, owner := newStoreFixture(t)
	if err := p.Measure(); err != nil {
		t.Fatalf("Measure failed: %v", err)
	}

	if store.ItemCount() != 2 || len(p.VisibleItems()) != 2 {
		t.Fatalf("ItemCount=%d visible=%d, want 2 and 2", store.ItemCount(), len(p.VisibleItems()))
	}
	if owner.items != 2 {
		t.Errorf("allocated %d item containers, want 2", owner.items)
	}

	review := p.ItemsOn(testutil.Date(2024, time.February, 9))
	if len(review) != 1 {
		t.Fatalf("ItemsOn(Feb 9) = %v", review)
	}
	data, _ := p.ItemData(review[0])
	if e, ok := data.(Entry); !ok || e.ID != "review" {
		t.Errorf("item data = %#v, want the review entry", data)
	}
	if p.Span(review[0]) != 2 {
		t.Errorf("Span() = %d, want 2", p.Span(review[0]))
	}

	// A second pass recycles and reuses the same containers.
	p.Invalidate()
	if err := p.Measure(); err != nil {
		t.Fatalf("second Measure failed: %v", err)
	}
	if owner.items != 2 {
		t.Errorf("second pass allocated new containers: %d", owner.items)
	}
	if len(owner.cleared) != 2 {
		t.Errorf("cleared %d item containers, want 2", len(owner.cleared))
	}
}

func TestStore_MoveItemPersistsAcrossPasses(t *testing.T) {
	store, p, _ := newStoreFixture(t)
	if err := p.Measure(); err != nil {
		t.Fatalf("Measure failed: %v", err)
	}

	item := p.ItemsOn(testutil.Date(2024, time.February, 9))[0]
	if err := p.Stretch(item, testutil.Date(2024, time.February, 12)); err != nil {
		t.Fatalf("Stretch failed: %v", err)
	}

	var review Entry
	for _, e := range store.Entries() {
		if e.ID == "review" {
			review = e
		}
	}
	if review.Span() != 4 || review.Start.Hour() != 14 {
		t.Errorf("moved entry = span %d at %v, want span 4 at 14:00", review.Span(), review.Start)
	}

	p.Invalidate()
	if err := p.Measure(); err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	got := p.ItemsOn(testutil.Date(2024, time.February, 9))
	if len(got) != 1 || p.Span(got[0]) != 4 {
		t.Errorf("stretch lost after re-measure: %v", got)
	}
}

func TestStore_FilterAndEvents(t *testing.T) {
	bus := event.NewBus()
	var reloaded []event.AgendaReloadedEvent
	bus.Subscribe(event.TypeAgendaReloaded, func(e event.Event) {
		reloaded = append(reloaded, e.(event.AgendaReloadedEvent))
	})

	f, err := NewFilter(nil, []string{"travel"})
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}
	store, _, _ := newStoreFixture(t, WithFilter(f), WithBus(bus))

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after excluding travel", store.Len())
	}
	if len(reloaded) != 1 || reloaded[0].Entries != 1 || reloaded[0].Err != nil {
		t.Errorf("reload events = %+v", reloaded)
	}
	if got := store.Between(testutil.Date(2024, time.February, 10), testutil.Date(2024, time.February, 20)); len(got) != 1 {
		t.Errorf("Between() = %v, want the review only", got)
	}
	if got := store.On(testutil.Date(2024, time.February, 11)); len(got) != 0 {
		t.Errorf("On(Feb 11) = %v, want none", got)
	}
}

func TestStore_SaveKeepsFilteredEntries(t *testing.T) {
	f, _ := NewFilter([]string{"sprint*"}, nil)
	store, _, _ := newStoreFixture(t, WithFilter(f))
	path := store.Paths()[0]

	if err := store.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("saved %d entries, want 2", len(entries))
	}
}

func TestStore_RealizeItemOutOfRange(t *testing.T) {
	store := NewStore(nil)
	if _, _, err := store.RealizeItem(3, nil); err == nil {
		t.Error("expected an error for a missing entry")
	}
}
