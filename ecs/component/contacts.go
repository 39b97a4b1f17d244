package component

import (
	"time"

	"github.com/milk9111/colliders/collision"
)

// ContactRecord is one contact reported to an entity's OnCollide.
type ContactRecord struct {
	Other   string
	At      time.Duration
	Verdict collision.Verdict
	// Data is a private copy of the collider's detailed data, nil for simple tests.
	Data *collision.Data
}

const maxRecentContacts = 8

// Contacts accumulates contacts for the physics response and the HUD.
type Contacts struct {
	// Pending is consumed and cleared by the physics response each tick.
	Pending []ContactRecord
	// Recent keeps the last few contacts, newest last.
	Recent []ContactRecord
	Total  int
	// Touching is set when a contact was recorded during the current tick.
	Touching bool
}

func (c *Contacts) Record(r ContactRecord) {
	c.Touching = true
	c.Pending = append(c.Pending, r)
	c.Recent = append(c.Recent, r)
	if n := len(c.Recent); n > maxRecentContacts {
		c.Recent = append(c.Recent[:0], c.Recent[n-maxRecentContacts:]...)
	}
	c.Total++
}

var ContactsComponent = NewComponent[Contacts]()
