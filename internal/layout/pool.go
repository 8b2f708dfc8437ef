package layout

// Pool is a LIFO stack of recycled containers. Pushing a container that is
// already pooled is a no-op.
type Pool struct {
	stack   []Container
	members map[Container]struct{}
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{members: make(map[Container]struct{})}
}

// Push adds c to the top of the pool. It reports whether c was added.
func (p *Pool) Push(c Container) bool {
	if _, ok := p.members[c]; ok {
		return false
	}
	p.members[c] = struct{}{}
	p.stack = append(p.stack, c)
	return true
}

// Pop removes and returns the most recently pushed container.
func (p *Pool) Pop() (Container, bool) {
	if len(p.stack) == 0 {
		return NoContainer, false
	}
	c := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	delete(p.members, c)
	return c, true
}

// Contains reports whether c is pooled.
func (p *Pool) Contains(c Container) bool {
	_, ok := p.members[c]
	return ok
}

// Len returns the number of pooled containers.
func (p *Pool) Len() int { return len(p.stack) }
