package collision

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/milk9111/colliders/geom"
)

const eps = 1e-9

type testHost struct {
	name    string
	verdict Verdict
	calls   []Contact
}

func (h *testHost) String() string { return h.name }

func (h *testHost) OnCollide(c Contact) Verdict {
	h.calls = append(h.calls, c)
	return h.verdict
}

type boxHost struct {
	testHost
	box geom.Rect
}

func (h *boxHost) WorldBox() geom.Rect { return h.box }

type circleHost struct {
	testHost
	circle geom.Circle
}

func (h *circleHost) WorldCircle() geom.Circle { return h.circle }

// shapeHost implements both accessors but only reports the ones it really has.
type shapeHost struct {
	testHost
	caps   Capabilities
	box    geom.Rect
	circle geom.Circle
}

func (h *shapeHost) WorldBox() geom.Rect        { return h.box }
func (h *shapeHost) WorldCircle() geom.Circle   { return h.circle }
func (h *shapeHost) Capabilities() Capabilities { return h.caps }

func newBoxHost(name string, cx, cy, hw, hh float64) *boxHost {
	return &boxHost{
		testHost: testHost{name: name},
		box:      geom.RectFromCenter(geom.Point{X: cx, Y: cy}, hw, hh),
	}
}

func newCircleHost(name string, cx, cy, r float64) *circleHost {
	return &circleHost{
		testHost: testHost{name: name},
		circle:   geom.Circle{Center: geom.Point{X: cx, Y: cy}, Radius: r},
	}
}

type listModel struct {
	hosts []Host
}

func (m *listModel) Candidates(host Host, yield func(Host, uint32, uint32) bool) {
	for _, h := range m.hosts {
		if h == host {
			continue
		}
		if !yield(h, 1, 2) {
			return
		}
	}
}

type warnRecorder struct {
	msgs []string
}

func (w *warnRecorder) warn(format string, args ...any) {
	w.msgs = append(w.msgs, fmt.Sprintf(format, args...))
}

func nearly(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestBoxSimpleSymmetry(t *testing.T) {
	cases := []struct {
		name string
		a, b *boxHost
		want bool
	}{
		{"overlap", newBoxHost("a", 0, 0, 2, 2), newBoxHost("b", 3, 1, 2, 2), true},
		{"contained", newBoxHost("a", 0, 0, 5, 5), newBoxHost("b", 1, 1, 1, 1), true},
		{"touching", newBoxHost("a", 0, 0, 1, 1), newBoxHost("b", 2, 0, 1, 1), false},
		{"apart", newBoxHost("a", 0, 0, 1, 1), newBoxHost("b", 5, 0, 1, 1), false},
		{"overlap_one_axis", newBoxHost("a", 0, 0, 1, 1), newBoxHost("b", 0.5, 3, 1, 1), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ab := NewBox(nil)
			ab.Attach(c.a)
			ba := NewBox(nil)
			ba.Attach(c.b)

			ab.Test(0, c.b, 0, 0)
			ba.Test(0, c.a, 0, 0)
			gotAB := len(c.a.calls) == 1
			gotBA := len(c.b.calls) == 1
			if gotAB != gotBA {
				t.Fatalf("asymmetric result: a->b=%v b->a=%v", gotAB, gotBA)
			}
			if gotAB != c.want {
				t.Fatalf("expected collision=%v, got %v", c.want, gotAB)
			}
			if ab.Data() != nil {
				t.Fatalf("simple test must not produce data")
			}
		})
	}
}

func TestBoxSimpleSymmetryRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := newBoxHost("a", rng.Float64()*10, rng.Float64()*10, rng.Float64()*3, rng.Float64()*3)
		b := newBoxHost("b", rng.Float64()*10, rng.Float64()*10, rng.Float64()*3, rng.Float64()*3)
		ab := NewBox(nil)
		ab.Attach(a)
		ba := NewBox(nil)
		ba.Attach(b)
		ab.Test(0, b, 0, 0)
		ba.Test(0, a, 0, 0)
		if len(a.calls) != len(b.calls) {
			t.Fatalf("case %d asymmetric: %v vs %v", i, a.box, b.box)
		}
	}
}

func TestCircleBoundary(t *testing.T) {
	cases := []struct {
		name   string
		d      float64
		r1, r2 float64
		want   bool
	}{
		{"inside", 3, 2, 2, true},
		{"boundary", 4, 2, 2, false},
		{"outside", 4.5, 2, 2, false},
		{"uneven", 2.9, 1, 2, true},
		{"uneven_boundary", 3, 1, 2, false},
	}
	for _, mode := range []Mode{SimpleTest, DetailedTest} {
		for _, c := range cases {
			t.Run(mode.String()+"_"+c.name, func(t *testing.T) {
				a := newCircleHost("a", 0, 0, c.r1)
				b := newCircleHost("b", c.d, 0, c.r2)
				col := NewCircle(nil, WithMode(mode))
				col.Attach(a)
				col.Test(0, b, 0, 0)
				if got := len(a.calls) == 1; got != c.want {
					t.Fatalf("expected collision=%v, got %v", c.want, got)
				}
				if mode == DetailedTest && (col.Data() != nil) != c.want {
					t.Fatalf("data presence %v does not match collision %v", col.Data() != nil, c.want)
				}
			})
		}
	}
}

func TestDetailedDistanceMatchesSeparation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	hits := 0
	for i := 0; i < 1000; i++ {
		ca := newCircleHost("a", rng.Float64()*8, rng.Float64()*8, 0.5+rng.Float64()*3)
		cb := newCircleHost("b", rng.Float64()*8, rng.Float64()*8, 0.5+rng.Float64()*3)
		cc := NewCircle(nil, WithMode(DetailedTest))
		cc.Attach(ca)
		cc.Test(0, cb, 0, 0)

		ba := newBoxHost("a", rng.Float64()*8, rng.Float64()*8, 0.5+rng.Float64()*3, 0.5+rng.Float64()*3)
		bb := newBoxHost("b", rng.Float64()*8, rng.Float64()*8, 0.5+rng.Float64()*3, 0.5+rng.Float64()*3)
		bc := NewBox(nil, WithMode(DetailedTest))
		bc.Attach(ba)
		bc.Test(0, bb, 0, 0)

		for _, d := range []*Data{cc.Data(), bc.Data()} {
			if d == nil {
				continue
			}
			hits++
			if d.Distance < 0 {
				t.Fatalf("case %d: negative distance %v", i, d.Distance)
			}
			if !nearly(d.Distance, d.Separation.Length()) {
				t.Fatalf("case %d: distance %v != |separation| %v", i, d.Distance, d.Separation.Length())
			}
			if !nearly(d.Normal.Length(), 1) {
				t.Fatalf("case %d: normal %v is not unit length", i, d.Normal)
			}
			if !nearly(d.Normal.X*d.Separation.Y-d.Normal.Y*d.Separation.X, 0) {
				t.Fatalf("case %d: separation %v not parallel to normal %v", i, d.Separation, d.Normal)
			}
		}
	}
	if hits == 0 {
		t.Fatalf("generator produced no overlapping pairs")
	}
}

func TestCircleScenario(t *testing.T) {
	a := newCircleHost("a", 0, 0, 2)
	b := newCircleHost("b", 3, 0, 2)
	col := NewCircle(nil, WithMode(DetailedTest))
	col.Attach(a)

	if v := col.Test(time.Second, b, 1, 2); v != Continue {
		t.Fatalf("expected continue, got %v", v)
	}
	d := col.Data()
	if d == nil {
		t.Fatalf("expected collision data")
	}
	if !nearly(d.Normal.X, 1) || !nearly(d.Normal.Y, 0) {
		t.Fatalf("unexpected normal %v", d.Normal)
	}
	if !nearly(d.Separation.X, 1) || !nearly(d.Separation.Y, 0) {
		t.Fatalf("unexpected separation %v", d.Separation)
	}
	if !nearly(d.Distance, 1) {
		t.Fatalf("unexpected distance %v", d.Distance)
	}
	if d.ShapeA == nil || d.ShapeB == nil || d.ShapeA.Radius != 2 || d.ShapeB.Center.X != 3 {
		t.Fatalf("circle data must carry both shapes: %+v", d)
	}
	if len(a.calls) != 1 {
		t.Fatalf("expected one OnCollide, got %d", len(a.calls))
	}
	got := a.calls[0]
	if got.Candidate != b || got.At != time.Second || got.HostMask != 1 || got.TargetMask != 2 || got.Data != d {
		t.Fatalf("unexpected contact %+v", got)
	}
}

func TestBoxScenarioNoCollision(t *testing.T) {
	a := newBoxHost("a", 0, 0, 1, 1)
	b := newBoxHost("b", 5, 0, 1, 1)
	col := NewBox(nil, WithMode(DetailedTest))
	col.Attach(a)
	if v := col.Test(0, b, 0, 0); v != Continue {
		t.Fatalf("expected continue, got %v", v)
	}
	if col.Data() != nil {
		t.Fatalf("expected no data, got %v", col.Data())
	}
	if len(a.calls) != 0 {
		t.Fatalf("OnCollide must not run")
	}
}

func TestBoxDetailedApproximation(t *testing.T) {
	// The boxes are apart as AABBs, but their bounding circles (radius 2 and
	// 1, centers 2.5 apart) overlap by 0.5.
	a := newBoxHost("a", 0, 0, 2, 0.5)
	b := newBoxHost("b", 0, 2.5, 1, 1)
	col := NewBox(nil, WithMode(DetailedTest))
	col.Attach(a)
	col.Test(0, b, 0, 0)
	d := col.Data()
	if d == nil {
		t.Fatalf("expected approximated collision")
	}
	if d.ShapeA != nil || d.ShapeB != nil {
		t.Fatalf("box data must not carry shapes")
	}
	if !nearly(d.Normal.Y, 1) || !nearly(d.Distance, 0.5) || !nearly(d.Separation.Y, 0.5) {
		t.Fatalf("unexpected data %v", d)
	}
}

func TestCoincidentCenters(t *testing.T) {
	a := newCircleHost("a", 1, 1, 1)
	b := newCircleHost("b", 1, 1, 2)
	col := NewCircle(nil, WithMode(DetailedTest))
	col.Attach(a)
	col.Test(0, b, 0, 0)
	d := col.Data()
	if d == nil {
		t.Fatalf("expected collision")
	}
	if !nearly(d.Normal.Length(), 1) || !nearly(d.Distance, 3) {
		t.Fatalf("unexpected data for coincident centers %v", d)
	}
}

func TestIdempotentTests(t *testing.T) {
	for _, mode := range []Mode{SimpleTest, DetailedTest} {
		t.Run(mode.String(), func(t *testing.T) {
			a := newCircleHost("a", 0, 0, 2)
			b := newCircleHost("b", 1, 1, 1)
			col := NewCircle(nil, WithMode(mode))
			col.Attach(a)

			v1 := col.Test(0, b, 0, 0)
			d1 := col.Data()
			v2 := col.Test(0, b, 0, 0)
			d2 := col.Data()
			if v1 != v2 {
				t.Fatalf("verdict changed: %v then %v", v1, v2)
			}
			if mode == SimpleTest {
				if d1 != nil || d2 != nil {
					t.Fatalf("simple mode produced data")
				}
				return
			}
			if d1 == nil || d2 == nil {
				t.Fatalf("expected data on both runs")
			}
			if d1 == d2 {
				t.Fatalf("data must be rebuilt, not reused")
			}
			if d1.Distance != d2.Distance || d1.Normal != d2.Normal || d1.Separation != d2.Separation {
				t.Fatalf("data differs: %v vs %v", d1, d2)
			}
		})
	}
}

func TestDataClearedOnMiss(t *testing.T) {
	a := newCircleHost("a", 0, 0, 1)
	near := newCircleHost("near", 1, 0, 1)
	far := newCircleHost("far", 10, 0, 1)
	col := NewCircle(nil, WithMode(DetailedTest))
	col.Attach(a)

	col.Test(0, near, 0, 0)
	if col.Data() == nil {
		t.Fatalf("expected data after hit")
	}
	col.Test(0, far, 0, 0)
	if col.Data() != nil {
		t.Fatalf("data must be cleared when the next test misses")
	}
}

func TestMissingCapability(t *testing.T) {
	cases := []struct {
		name     string
		collider func(w WarnFunc) Collider
		host     Host
	}{
		{
			name:     "box_on_plain_host",
			collider: func(w WarnFunc) Collider { return NewBox(nil, WithMode(DetailedTest), WithWarn(w)) },
			host:     &testHost{name: "plain"},
		},
		{
			name:     "box_on_circle_host",
			collider: func(w WarnFunc) Collider { return NewBox(nil, WithMode(DetailedTest), WithWarn(w)) },
			host:     newCircleHost("circle", 0, 0, 5),
		},
		{
			name:     "box_on_opted_out_host",
			collider: func(w WarnFunc) Collider { return NewBox(nil, WithMode(DetailedTest), WithWarn(w)) },
			host: &shapeHost{
				testHost: testHost{name: "opted_out"},
				caps:     CapWorldCircle,
				box:      geom.RectFromCenter(geom.Point{}, 5, 5),
			},
		},
		{
			name:     "circle_on_box_host",
			collider: func(w WarnFunc) Collider { return NewCircle(nil, WithMode(DetailedTest), WithWarn(w)) },
			host:     newBoxHost("box", 0, 0, 5, 5),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := &warnRecorder{}
			col := c.collider(rec.warn)
			col.Attach(c.host)
			if len(rec.msgs) != 1 {
				t.Fatalf("expected one warning, got %v", rec.msgs)
			}
			if col.Capable() {
				t.Fatalf("collider must not be capable")
			}

			candidate := &shapeHost{
				testHost: testHost{name: "candidate"},
				caps:     CapWorldBox | CapWorldCircle,
				box:      geom.RectFromCenter(geom.Point{}, 5, 5),
				circle:   geom.Circle{Radius: 5},
			}
			for i := 0; i < 3; i++ {
				if v := col.Test(0, candidate, 0, 0); v != Continue {
					t.Fatalf("expected continue, got %v", v)
				}
				if col.Data() != nil {
					t.Fatalf("no data may be allocated")
				}
			}
		})
	}
}

func TestCandidateWithoutGeometryIsSkipped(t *testing.T) {
	a := newBoxHost("a", 0, 0, 5, 5)
	col := NewBox(nil, WithMode(DetailedTest))
	col.Attach(a)
	if v := col.Test(0, newCircleHost("c", 0, 0, 5), 0, 0); v != Continue {
		t.Fatalf("expected continue, got %v", v)
	}
	if len(a.calls) != 0 || col.Data() != nil {
		t.Fatalf("candidate without WorldBox must be skipped")
	}
}

func TestStopPropagates(t *testing.T) {
	for _, mode := range []Mode{SimpleTest, DetailedTest} {
		t.Run(mode.String(), func(t *testing.T) {
			a := newBoxHost("a", 0, 0, 1, 1)
			a.verdict = Stop
			col := NewBox(nil, WithMode(mode))
			col.Attach(a)
			if v := col.Test(0, newBoxHost("b", 0.5, 0, 1, 1), 0, 0); v != Stop {
				t.Fatalf("expected stop, got %v", v)
			}
			if v := col.Test(0, newBoxHost("c", 9, 0, 1, 1), 0, 0); v != Continue {
				t.Fatalf("no overlap must continue, got %v", v)
			}
		})
	}
}

func TestSweepHaltsOnStop(t *testing.T) {
	host := newCircleHost("host", 0, 0, 1)
	host.verdict = Stop
	first := newCircleHost("first", 1, 0, 1)
	second := newCircleHost("second", -1, 0, 1)
	model := &listModel{hosts: []Host{host, first, second}}

	col := NewCircle(model)
	col.Attach(host)
	v, tested := Sweep(0, col)
	if v != Stop {
		t.Fatalf("expected stop, got %v", v)
	}
	if tested != 1 || len(host.calls) != 1 || host.calls[0].Candidate != first {
		t.Fatalf("sweep must stop after the first collision, tested=%d calls=%d", tested, len(host.calls))
	}

	host.verdict = Continue
	host.calls = nil
	v, tested = Sweep(0, col)
	if v != Continue || tested != 2 || len(host.calls) != 2 {
		t.Fatalf("expected both candidates tested, verdict=%v tested=%d", v, tested)
	}
}

func TestReleaseAndPool(t *testing.T) {
	model := &listModel{}
	pool := NewPool(func() *Box { return NewBox(nil, WithMode(DetailedTest)) })

	b := pool.Get(model)
	if b.Model() != model {
		t.Fatalf("pooled collider must be bound to the model")
	}
	host := newBoxHost("a", 0, 0, 1, 1)
	b.Attach(host)
	b.Test(0, newBoxHost("b", 0.5, 0, 1, 1), 0, 0)
	if b.Data() == nil {
		t.Fatalf("expected data before release")
	}

	pool.Put(b)
	if pool.Free() != 1 {
		t.Fatalf("expected one free collider, got %d", pool.Free())
	}
	if b.Data() != nil || b.Host() != nil || b.Model() != nil || b.Capable() {
		t.Fatalf("release must clear state: %s", b)
	}
	if b.Mode() != DetailedTest {
		t.Fatalf("release keeps the configured mode")
	}

	again := pool.Get(nil)
	if again != b {
		t.Fatalf("expected the released collider to be reused")
	}
	if pool.Free() != 0 {
		t.Fatalf("pool should be empty")
	}
}

type outlineRecorder struct {
	host  Host
	rects []geom.Rect
}

func (r *outlineRecorder) DrawOutline(host Host, local geom.Rect) {
	r.host = host
	r.rects = append(r.rects, local)
}

func TestCircleDebugDraw(t *testing.T) {
	rec := &outlineRecorder{}
	a := newCircleHost("a", 10, 20, 2)
	col := NewCircle(nil, WithDebugDrawer(rec))
	col.Attach(a)

	SetDebugDraw(false)
	col.Test(0, newCircleHost("b", 50, 50, 1), 0, 0)
	if len(rec.rects) != 0 {
		t.Fatalf("drawer must not run while debug is off")
	}

	SetDebugDraw(true)
	defer SetDebugDraw(false)
	v := col.Test(0, newCircleHost("b", 50, 50, 1), 0, 0)
	if v != Continue {
		t.Fatalf("debug draw must not change the verdict")
	}
	if len(rec.rects) != 1 || rec.host != a {
		t.Fatalf("expected one outline for host, got %v", rec.rects)
	}
	want := geom.RectFromCenter(geom.Point{}, 2, 2)
	if rec.rects[0] != want {
		t.Fatalf("outline %v, want origin relative %v", rec.rects[0], want)
	}
}

func TestCircleDebugDrawWithoutCircleAccessor(t *testing.T) {
	rec := &outlineRecorder{}
	warn := &warnRecorder{}
	a := newBoxHost("a", 10, 20, 3, 1)
	col := NewCircle(nil, WithDebugDrawer(rec), WithWarn(warn.warn))
	col.Attach(a)

	SetDebugDraw(true)
	defer SetDebugDraw(false)
	if v := col.Test(0, newCircleHost("b", 10, 20, 1), 0, 0); v != Continue {
		t.Fatalf("host without WorldCircle must continue, got %v", v)
	}
	if len(rec.rects) != 1 || rec.host != a {
		t.Fatalf("expected one outline for host, got %v", rec.rects)
	}
	want := geom.RectFromCenter(geom.Point{}, 3, 1)
	if rec.rects[0] != want {
		t.Fatalf("outline %v, want %v", rec.rects[0], want)
	}
	if len(a.calls) != 0 {
		t.Fatalf("host must not be called back, got %v", a.calls)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{SimpleTest, DetailedTest} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("exact"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestStaleDataAssertion(t *testing.T) {
	rec := &warnRecorder{}
	c := NewCircle(nil, WithWarn(rec.warn))
	c.data = &Data{}

	defer func() {
		r := recover()
		if staleDataFatal && r == nil {
			t.Fatalf("expected panic in debug builds")
		}
		if !staleDataFatal && (r != nil || len(rec.msgs) != 1) {
			t.Fatalf("expected a warning, got panic=%v warnings=%v", r, rec.msgs)
		}
	}()
	c.store(&Data{Distance: 1})
}
