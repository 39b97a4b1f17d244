package collision

// Pool recycles colliders. Put releases the collider before keeping it, so a
// collider coming out of Get is always detached and has no data.
type Pool[C Collider] struct {
	newFn     func() C
	free      []C
	allocated int
}

func NewPool[C Collider](newFn func() C) *Pool[C] {
	return &Pool[C]{newFn: newFn}
}

// Get returns a free collider bound to model, allocating one if needed.
func (p *Pool[C]) Get(model Model) C {
	var c C
	if n := len(p.free); n > 0 {
		c = p.free[n-1]
		var zero C
		p.free[n-1] = zero
		p.free = p.free[:n-1]
	} else {
		c = p.newFn()
		p.allocated++
	}
	c.SetModel(model)
	return c
}

func (p *Pool[C]) Put(c C) {
	c.Release()
	p.free = append(p.free, c)
}

// Free is the number of colliders waiting for reuse.
func (p *Pool[C]) Free() int {
	return len(p.free)
}

// Allocated is the number of colliders the pool has ever created.
func (p *Pool[C]) Allocated() int {
	return p.allocated
}
