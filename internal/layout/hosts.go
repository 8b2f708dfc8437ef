package layout

import (
	"slices"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
)

// Host is a vertical stack of item containers sharing an anchor date and a
// column span. Items are kept sorted by tag time; ties keep insertion order.
type Host struct {
	id     int
	Anchor calendar.Date
	Span   int
	Items  []Container
	// Lane is the first vertical slot the host occupies on every date it covers.
	Lane int
}

// End returns the last date the host covers.
func (h *Host) End() calendar.Date { return h.Anchor.AddDays(h.Span - 1) }

// Covers reports whether d lies within the host's span.
func (h *Host) Covers(d calendar.Date) bool {
	return !d.Before(h.Anchor) && !d.After(h.End())
}

// Height returns the number of slots the host occupies.
func (h *Host) Height() int { return len(h.Items) }

// moveResult says what a move did to the host set.
type moveResult int

const (
	moveNone moveResult = iota
	moveReused
	moveResized
	moveDetached
)

func (r moveResult) String() string {
	switch r {
	case moveReused:
		return "reused"
	case moveResized:
		return "resized"
	case moveDetached:
		return "detached"
	default:
		return "none"
	}
}

// arranger owns the hosts of one layout pass.
type arranger struct {
	hosts     []*Host
	byItem    map[Container]*Host
	seq       map[Container]int
	nextID    int
	nextSeq   int
	at        func(Container) time.Time
	preceding map[calendar.Date]int
}

func newArranger(at func(Container) time.Time) *arranger {
	return &arranger{
		byItem:    make(map[Container]*Host),
		seq:       make(map[Container]int),
		at:        at,
		preceding: make(map[calendar.Date]int),
	}
}

func (a *arranger) reset() {
	a.hosts = nil
	clear(a.byItem)
	clear(a.seq)
	clear(a.preceding)
	a.nextID = 0
	a.nextSeq = 0
}

// add groups item into the host for (anchor, span), creating it if needed.
func (a *arranger) add(item Container, anchor calendar.Date, span int) *Host {
	if _, ok := a.seq[item]; !ok {
		a.seq[item] = a.nextSeq
		a.nextSeq++
	}
	for _, h := range a.hosts {
		if h.Anchor == anchor && h.Span == span {
			a.attach(item, h)
			return h
		}
	}
	h := a.newHost(anchor, span)
	a.attach(item, h)
	return h
}

func (a *arranger) newHost(anchor calendar.Date, span int) *Host {
	h := &Host{id: a.nextID, Anchor: anchor, Span: span}
	a.nextID++
	a.hosts = append(a.hosts, h)
	return h
}

func (a *arranger) attach(item Container, h *Host) {
	h.Items = append(h.Items, item)
	a.byItem[item] = h
	a.sortItems(h)
}

func (a *arranger) sortItems(h *Host) {
	slices.SortStableFunc(h.Items, func(x, y Container) int {
		if c := a.at(x).Compare(a.at(y)); c != 0 {
			return c
		}
		return a.seq[x] - a.seq[y]
	})
}

// detach removes item from h and drops h once it is empty.
func (a *arranger) detach(item Container, h *Host) {
	h.Items = slices.DeleteFunc(h.Items, func(c Container) bool { return c == item })
	delete(a.byItem, item)
	if len(h.Items) == 0 {
		a.hosts = slices.DeleteFunc(a.hosts, func(o *Host) bool { return o == h })
	}
}

// remove takes item out of the arrangement entirely.
func (a *arranger) remove(item Container) {
	if h, ok := a.byItem[item]; ok {
		a.detach(item, h)
	}
	delete(a.seq, item)
}

// move re-anchors item to (anchor, span). A host with exactly that anchor and
// span is reused; otherwise a host holding only item is resized in place and
// a shared host gives up item to a new one.
func (a *arranger) move(item Container, anchor calendar.Date, span int) (*Host, moveResult) {
	old, ok := a.byItem[item]
	if !ok {
		return a.add(item, anchor, span), moveDetached
	}
	if old.Anchor == anchor && old.Span == span {
		a.sortItems(old)
		return old, moveNone
	}

	for _, h := range a.hosts {
		if h != old && h.Anchor == anchor && h.Span == span {
			a.detach(item, old)
			a.attach(item, h)
			return h, moveReused
		}
	}

	if len(old.Items) == 1 {
		old.Anchor = anchor
		old.Span = span
		return old, moveResized
	}

	a.detach(item, old)
	h := a.newHost(anchor, span)
	a.attach(item, h)
	return h, moveDetached
}

// pack assigns lanes. Hosts are placed by anchor ascending, longer spans
// first, then creation order; each takes the lowest lane range that is free
// on every date it covers. Preceding counts are rebuilt alongside.
func (a *arranger) pack() {
	order := slices.Clone(a.hosts)
	slices.SortFunc(order, func(x, y *Host) int {
		if c := x.Anchor.Compare(y.Anchor); c != 0 {
			return c
		}
		if x.Span != y.Span {
			return y.Span - x.Span
		}
		return x.id - y.id
	})

	occupied := make(map[calendar.Date][]bool)
	clear(a.preceding)

	for _, h := range order {
		lane := 0
		for !fits(occupied, h, lane) {
			lane++
		}
		h.Lane = lane

		for i := 0; i < h.Span; i++ {
			d := h.Anchor.AddDays(i)
			slots := occupied[d]
			for len(slots) < lane+h.Height() {
				slots = append(slots, false)
			}
			for s := lane; s < lane+h.Height(); s++ {
				slots[s] = true
			}
			occupied[d] = slots
			if i > 0 {
				a.preceding[d] += h.Height()
			}
		}
	}
}

func fits(occupied map[calendar.Date][]bool, h *Host, lane int) bool {
	for i := 0; i < h.Span; i++ {
		slots := occupied[h.Anchor.AddDays(i)]
		for s := lane; s < lane+h.Height() && s < len(slots); s++ {
			if slots[s] {
				return false
			}
		}
	}
	return true
}

// hostOf returns the host holding item.
func (a *arranger) hostOf(item Container) (*Host, bool) {
	h, ok := a.byItem[item]
	return h, ok
}

// covering returns the hosts covering d, by lane.
func (a *arranger) covering(d calendar.Date) []*Host {
	var out []*Host
	for _, h := range a.hosts {
		if h.Covers(d) {
			out = append(out, h)
		}
	}
	slices.SortFunc(out, func(x, y *Host) int { return x.Lane - y.Lane })
	return out
}
