// Package collision implements the narrow-phase collider components. A
// collider is attached to one host object, tested against candidates proposed
// by a broad-phase Model, and reports positive tests back to the host through
// OnCollide. In DetailedTest mode it also records separation Data for the
// physics response step.
package collision

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/colliders/geom"
)

var (
	ErrMissingCapability = errors.New("collision: host lacks required geometry accessor")
	ErrStaleData         = errors.New("collision: stale collision data at test start")
)

// Verdict tells the broad phase whether to keep testing candidates against a
// host during the current tick.
type Verdict int

const (
	Continue Verdict = iota
	Stop
)

func (v Verdict) String() string {
	if v == Stop {
		return "stop"
	}
	return "continue"
}

// Mode selects between boolean-only and data-producing tests.
type Mode int

const (
	SimpleTest Mode = iota
	DetailedTest
)

func (m Mode) String() string {
	switch m {
	case SimpleTest:
		return "simple"
	case DetailedTest:
		return "detailed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "simple":
		return SimpleTest, nil
	case "detailed":
		return DetailedTest, nil
	default:
		return SimpleTest, fmt.Errorf("collision: unknown test mode %q", s)
	}
}

// Host is the game object a collider is attached to. Candidates are hosts too.
type Host interface {
	fmt.Stringer
	OnCollide(c Contact) Verdict
}

// BoxHost exposes an axis-aligned world bounding box.
type BoxHost interface {
	Host
	WorldBox() geom.Rect
}

// CircleHost exposes a world bounding circle.
type CircleHost interface {
	Host
	WorldCircle() geom.Circle
}

// Capabilities is a bit set of geometry accessors a host actually supports.
type Capabilities uint8

const (
	CapWorldBox Capabilities = 1 << iota
	CapWorldCircle
)

// CapabilityReporter lets a host that implements both accessor interfaces
// declare which of them are backed by real geometry. Hosts that do not
// implement it are trusted by their method set alone.
type CapabilityReporter interface {
	Capabilities() Capabilities
}

func hasCapability(h Host, want Capabilities) bool {
	if r, ok := h.(CapabilityReporter); ok {
		return r.Capabilities()&want != 0
	}
	return true
}

func worldBox(h Host) (geom.Rect, bool) {
	bh, ok := h.(BoxHost)
	if !ok || !hasCapability(h, CapWorldBox) {
		return geom.Rect{}, false
	}
	return bh.WorldBox(), true
}

func worldCircle(h Host) (geom.Circle, bool) {
	ch, ok := h.(CircleHost)
	if !ok || !hasCapability(h, CapWorldCircle) {
		return geom.Circle{}, false
	}
	return ch.WorldCircle(), true
}

// Contact is handed to Host.OnCollide on a positive test.
type Contact struct {
	At         time.Duration
	Candidate  Host
	HostMask   uint32
	TargetMask uint32
	// Data is nil for SimpleTest colliders.
	Data *Data
}

// Model is the broad phase. Candidates calls yield once per candidate that
// shares a region with host, in model order, until yield returns false.
type Model interface {
	Candidates(host Host, yield func(candidate Host, hostMask, targetMask uint32) bool)
}

// WarnFunc receives non-fatal diagnostics.
type WarnFunc func(format string, args ...any)
