package collision

import (
	"sync/atomic"

	"github.com/milk9111/colliders/geom"
)

// DebugDrawer renders collider outlines. local is relative to the host's
// origin; the drawer maps it back to screen space.
type DebugDrawer interface {
	DrawOutline(host Host, local geom.Rect)
}

var debugDraw atomic.Bool

// SetDebugDraw toggles collider outlines for every collider with a drawer.
func SetDebugDraw(on bool) {
	debugDraw.Store(on)
}

func DebugDrawEnabled() bool {
	return debugDraw.Load()
}
