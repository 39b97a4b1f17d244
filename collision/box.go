package collision

import (
	"time"

	"github.com/milk9111/colliders/geom"
)

// Box tests axis-aligned world boxes. In DetailedTest mode each box is
// approximated by a circle with radius max(halfWidth, halfHeight).
type Box struct {
	base
	boxHost BoxHost
}

var _ Collider = (*Box)(nil)

func NewBox(model Model, opts ...Option) *Box {
	return &Box{base: newBase("Box", model, opts)}
}

// Attach binds the box to host. A host without WorldBox is accepted but the
// collider stays inert.
func (b *Box) Attach(host Host) {
	b.bind(host)
	b.boxHost = nil
	if host == nil {
		return
	}
	bh, ok := host.(BoxHost)
	if !ok || !hasCapability(host, CapWorldBox) {
		b.missing("WorldBox")
		return
	}
	b.boxHost = bh
	b.capable = true
}

func (b *Box) Test(at time.Duration, candidate Host, hostMask, targetMask uint32) Verdict {
	b.dispose()
	if !b.capable || b.boxHost == nil {
		return Continue
	}
	other, ok := worldBox(candidate)
	if !ok {
		return Continue
	}
	self := b.boxHost.WorldBox()

	if b.mode == DetailedTest {
		data, hit := boxOverlap(self, other)
		if !hit {
			return Continue
		}
		b.store(data)
	} else if !self.Intersects(other) {
		return Continue
	}
	return b.dispatch(at, candidate, hostMask, targetMask)
}

func (b *Box) Release() {
	b.base.Release()
	b.boxHost = nil
}

func boxOverlap(a, b geom.Rect) (*Data, bool) {
	return overlapCircles(a.Center(), b.Center(), a.BoundingRadius(), b.BoundingRadius())
}
