package system

import (
	"log"
	"sort"
	"time"

	"github.com/dhconnelly/rtreego"
	"github.com/milk9111/colliders/collision"
	"github.com/milk9111/colliders/ecs"
	"github.com/milk9111/colliders/ecs/component"
	"github.com/milk9111/colliders/geom"
)

const (
	treeMinChildren = 4
	treeMaxChildren = 16
	minTreeExtent   = 1e-6
)

// CollisionStats summarizes the last tick.
type CollisionStats struct {
	At       time.Duration
	Hosts    int
	Tests    int
	Stops    int
	Contacts int
}

// CollisionSystem is the broad phase. Every tick it indexes collider bounds in
// an R-tree, then sweeps each collider over the candidates whose bounds
// intersect its own, honoring collision layers and Stop verdicts.
type CollisionSystem struct {
	step    time.Duration
	elapsed time.Duration

	tree  *rtreego.Rtree
	items map[collision.Host]*treeItem
	order []*treeItem
	stats CollisionStats
}

type treeItem struct {
	entity   ecs.Entity
	host     collision.Host
	collider collision.Collider
	layer    *component.CollisionLayer
	bounds   rtreego.Rect
}

func (t *treeItem) Bounds() rtreego.Rect {
	return t.bounds
}

var _ collision.Model = (*CollisionSystem)(nil)

// NewCollisionSystem creates a broad phase that advances simulated time by
// step each Update.
func NewCollisionSystem(step time.Duration) *CollisionSystem {
	return &CollisionSystem{
		step:  step,
		items: make(map[collision.Host]*treeItem),
	}
}

func (cs *CollisionSystem) Stats() CollisionStats {
	if cs == nil {
		return CollisionStats{}
	}
	return cs.stats
}

func (cs *CollisionSystem) Elapsed() time.Duration {
	if cs == nil {
		return 0
	}
	return cs.elapsed
}

func (cs *CollisionSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	cs.elapsed += cs.step

	ecs.ForEach(w, component.ContactsComponent.Kind(), func(_ ecs.Entity, c *component.Contacts) {
		c.Touching = false
		c.Pending = c.Pending[:0]
	})

	cs.index(w)
	cs.stats = CollisionStats{At: cs.elapsed, Hosts: len(cs.order)}
	for _, item := range cs.order {
		verdict, tested := collision.Sweep(cs.elapsed, item.collider)
		cs.stats.Tests += tested
		if verdict == collision.Stop {
			cs.stats.Stops++
		}
	}
	ecs.ForEach(w, component.ContactsComponent.Kind(), func(_ ecs.Entity, c *component.Contacts) {
		cs.stats.Contacts += len(c.Pending)
	})
}

func (cs *CollisionSystem) index(w *ecs.World) {
	cs.tree = rtreego.NewTree(2, treeMinChildren, treeMaxChildren)
	clear(cs.items)
	cs.order = cs.order[:0]

	ecs.ForEach(w, component.ColliderComponent.Kind(), func(e ecs.Entity, c *component.Collider) {
		if c.Collider == nil || c.Collider.Host() == nil {
			return
		}
		host := c.Collider.Host()
		bounds, err := treeRect(colliderBounds(c.Collider, host))
		if err != nil {
			log.Printf("CollisionSystem: skip %s: %v", host, err)
			return
		}
		layer, _ := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
		item := &treeItem{
			entity:   e,
			host:     host,
			collider: c.Collider,
			layer:    layer,
			bounds:   bounds,
		}
		cs.items[host] = item
		cs.order = append(cs.order, item)
		cs.tree.Insert(item)
	})
	sort.Slice(cs.order, func(i, j int) bool { return cs.order[i].entity < cs.order[j].entity })
}

// Candidates yields the indexed hosts whose bounds intersect host's bounds and
// whose category is in host's mask, in entity order.
func (cs *CollisionSystem) Candidates(host collision.Host, yield func(candidate collision.Host, hostMask, targetMask uint32) bool) {
	if cs == nil || cs.tree == nil {
		return
	}
	self, ok := cs.items[host]
	if !ok {
		return
	}
	found := cs.tree.SearchIntersect(self.bounds)
	candidates := make([]*treeItem, 0, len(found))
	for _, s := range found {
		item, ok := s.(*treeItem)
		if !ok || item == self {
			continue
		}
		if !self.layer.Accepts(item.layer) {
			continue
		}
		candidates = append(candidates, item)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].entity < candidates[j].entity })

	hostMask := self.layer.EffectiveCategory()
	for _, item := range candidates {
		if !yield(item.host, hostMask, item.layer.EffectiveCategory()) {
			return
		}
	}
}

type originHost interface {
	Origin() geom.Point
}

func hostBounds(h collision.Host) geom.Rect {
	if bh, ok := h.(collision.BoxHost); ok {
		return bh.WorldBox()
	}
	if ch, ok := h.(collision.CircleHost); ok {
		return ch.WorldCircle().Bounds()
	}
	if oh, ok := h.(originHost); ok {
		p := oh.Origin()
		return geom.Rect{Min: p, Max: p}
	}
	return geom.Rect{}
}

// colliderBounds is the region a collider can report contacts in. Detailed
// boxes test their bounding circles, which reach past the box corners.
func colliderBounds(col collision.Collider, host collision.Host) geom.Rect {
	r := hostBounds(host)
	if _, ok := col.(*collision.Box); ok && col.Mode() == collision.DetailedTest {
		radius := r.BoundingRadius()
		return geom.RectFromCenter(r.Center(), radius, radius)
	}
	return r
}

// treeRect converts r to an R-tree rectangle. Degenerate rectangles get a tiny
// extent because the tree rejects zero lengths.
func treeRect(r geom.Rect) (rtreego.Rect, error) {
	w := r.Width()
	if w < minTreeExtent {
		w = minTreeExtent
	}
	h := r.Height()
	if h < minTreeExtent {
		h = minTreeExtent
	}
	return rtreego.NewRect(rtreego.Point{r.Min.X, r.Min.Y}, []float64{w, h})
}
