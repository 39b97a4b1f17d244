package system

import (
	"fmt"
	"strings"

	"github.com/milk9111/colliders/ecs"
	"github.com/milk9111/colliders/ecs/component"
)

// Report renders the last tick's stats and every entity's recent contacts as
// plain text.
func Report(w *ecs.World, stats CollisionStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "t=%v hosts=%d tests=%d contacts=%d stops=%d\n", stats.At, stats.Hosts, stats.Tests, stats.Contacts, stats.Stops)
	if w == nil {
		return b.String()
	}
	ecs.ForEach(w, component.ContactsComponent.Kind(), func(e ecs.Entity, c *component.Contacts) {
		if len(c.Recent) == 0 {
			return
		}
		name := e.String()
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
			name = n.Value
		}
		fmt.Fprintf(&b, "%s: total=%d touching=%v\n", name, c.Total, c.Touching)
		for _, r := range c.Recent {
			fmt.Fprintf(&b, "  %v %s %s", r.At, r.Other, r.Verdict)
			if r.Data != nil {
				fmt.Fprintf(&b, " %s", r.Data)
			}
			b.WriteByte('\n')
		}
	})
	return b.String()
}
