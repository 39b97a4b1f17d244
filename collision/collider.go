package collision

import (
	"fmt"
	"log"
	"time"
)

// Collider is a collision component attached to exactly one host and one
// broad-phase model.
type Collider interface {
	fmt.Stringer
	Attach(host Host)
	Test(at time.Duration, candidate Host, hostMask, targetMask uint32) Verdict
	Release()

	Host() Host
	Model() Model
	SetModel(m Model)
	Mode() Mode
	SetMode(m Mode)
	// Data is the result of the most recent detailed test, nil when it found
	// no collision.
	Data() *Data
	// Capable reports whether the attached host exposes the geometry this
	// collider needs.
	Capable() bool
}

// Option configures a collider at construction.
type Option func(*base)

// WithMode sets the test mode. The default is SimpleTest.
func WithMode(m Mode) Option {
	return func(b *base) { b.mode = m }
}

// WithWarn routes missing-capability warnings to fn instead of log.Printf.
func WithWarn(fn WarnFunc) Option {
	return func(b *base) {
		if fn != nil {
			b.warn = fn
		}
	}
}

// WithDebugDrawer installs the hook used when debug drawing is enabled.
func WithDebugDrawer(d DebugDrawer) Option {
	return func(b *base) { b.drawer = d }
}

// base carries the state shared by all collider variants.
type base struct {
	kind    string
	host    Host
	model   Model
	mode    Mode
	data    *Data
	capable bool

	warn   WarnFunc
	drawer DebugDrawer
}

func newBase(kind string, model Model, opts []Option) base {
	b := base{kind: kind, model: model, warn: log.Printf}
	for _, opt := range opts {
		if opt != nil {
			opt(&b)
		}
	}
	return b
}

func (b *base) Host() Host       { return b.host }
func (b *base) Model() Model     { return b.model }
func (b *base) SetModel(m Model) { b.model = m }
func (b *base) Mode() Mode       { return b.mode }
func (b *base) SetMode(m Mode)   { b.mode = m }
func (b *base) Data() *Data      { return b.data }
func (b *base) Capable() bool    { return b.capable }

func (b *base) String() string {
	if b.host == nil {
		return b.kind + "Collider(detached)"
	}
	return fmt.Sprintf("%sCollider(%s)", b.kind, b.host)
}

// bind records the host and resets the capability cache. The variant decides
// capability right after.
func (b *base) bind(host Host) {
	b.host = host
	b.capable = false
	b.data = nil
}

func (b *base) missing(accessor string) {
	b.capable = false
	if b.warn != nil {
		b.warn("%s: host %v has no %s, collision tests skipped: %v", b, b.host, accessor, ErrMissingCapability)
	}
}

// dispose drops the data from the previous test.
func (b *base) dispose() {
	b.data = nil
}

func (b *base) store(d *Data) {
	if b.data != nil {
		if staleDataFatal {
			panic(fmt.Errorf("%s: %w", b, ErrStaleData))
		}
		if b.warn != nil {
			b.warn("%s: %v", b, ErrStaleData)
		}
	}
	b.data = d
}

// dispatch hands a positive test to the host and propagates its verdict.
func (b *base) dispatch(at time.Duration, candidate Host, hostMask, targetMask uint32) Verdict {
	if b.host == nil {
		return Continue
	}
	return b.host.OnCollide(Contact{
		At:         at,
		Candidate:  candidate,
		HostMask:   hostMask,
		TargetMask: targetMask,
		Data:       b.data,
	})
}

// Release returns the collider to a reusable state. Mode and options are kept.
func (b *base) Release() {
	b.host = nil
	b.model = nil
	b.data = nil
	b.capable = false
}

// Sweep tests c against every candidate its model proposes for its host,
// halting at the first Stop. It returns the final verdict and the number of
// tests run.
func Sweep(at time.Duration, c Collider) (Verdict, int) {
	if c == nil || c.Host() == nil || c.Model() == nil {
		return Continue, 0
	}
	host := c.Host()
	verdict := Continue
	tested := 0
	c.Model().Candidates(host, func(candidate Host, hostMask, targetMask uint32) bool {
		if candidate == nil || candidate == host {
			return true
		}
		tested++
		verdict = c.Test(at, candidate, hostMask, targetMask)
		return verdict != Stop
	})
	return verdict, tested
}
