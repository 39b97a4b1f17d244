package sim

import (
	"fmt"
	"log"
	"time"

	"github.com/milk9111/colliders/collision"
	"github.com/milk9111/colliders/ecs"
	"github.com/milk9111/colliders/ecs/entity"
	"github.com/milk9111/colliders/ecs/system"
	"github.com/milk9111/colliders/geom"
	"github.com/milk9111/colliders/prefabs"
)

// DefaultStep is the simulated time per tick.
const DefaultStep = time.Second / 60

type Options struct {
	// Mode overrides the scene's default test mode when set.
	Mode string
	Step time.Duration
	// Drawer receives collider outlines while debug drawing is on.
	Drawer collision.DebugDrawer
	Warn   collision.WarnFunc
}

// Simulation owns a world built from a scene and the systems that tick it.
type Simulation struct {
	opts Options

	scene      *prefabs.SceneSpec
	world      *ecs.World
	collisions *system.CollisionSystem
	physics    *system.PhysicsSystem
	scripts    *system.ScriptRuntime
	factory    *entity.Factory
	scheduler  *ecs.Scheduler
	ticks      int
}

func New(scene *prefabs.SceneSpec, opts Options) (*Simulation, error) {
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	colliderOpts := []collision.Option{collision.WithDebugDrawer(opts.Drawer)}
	if opts.Warn != nil {
		colliderOpts = append(colliderOpts, collision.WithWarn(opts.Warn))
	}

	s := &Simulation{
		opts:       opts,
		collisions: system.NewCollisionSystem(opts.Step),
		scripts:    system.NewScriptRuntime(),
	}
	s.factory = entity.NewFactory(s.collisions, colliderOpts...)
	s.factory.Scripts = s.scripts.Handler

	if err := s.Load(scene); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the current scene. The new scene is built into a fresh world
// and swapped in only when every object spawned, so a broken scene leaves the
// running one untouched. Colliders of the old scene go back to the factory
// pools for the next load.
func (s *Simulation) Load(scene *prefabs.SceneSpec) error {
	return s.load(scene, s.opts.Mode)
}

func (s *Simulation) load(scene *prefabs.SceneSpec, mode string) error {
	if scene == nil {
		return fmt.Errorf("sim: load: scene is nil")
	}
	sc := *scene
	if mode != "" {
		sc.Mode = mode
	}

	world := ecs.NewWorld()
	if _, err := s.factory.LoadScene(world, &sc); err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	if s.world != nil {
		s.factory.Clear(s.world)
	}
	s.world = world
	s.scene = &sc
	s.physics = system.NewPhysicsSystem(sc.Gravity, geom.Rect{Max: geom.Point{X: sc.Bounds.Width, Y: sc.Bounds.Height}})
	s.scheduler = ecs.NewScheduler(s.collisions, s.physics)
	return nil
}

// SetMode rebuilds the scene with mode as the override. The override only
// changes when the rebuild succeeds.
func (s *Simulation) SetMode(mode string) error {
	if _, err := collision.ParseMode(mode); err != nil {
		return err
	}
	if err := s.load(s.scene, mode); err != nil {
		return err
	}
	s.opts.Mode = mode
	return nil
}

// ReloadScript drops the compiled copy of path and rebuilds the scene so every
// object picks up the new script.
func (s *Simulation) ReloadScript(path string) error {
	s.scripts.Forget(path)
	return s.Load(s.scene)
}

// Step advances the simulation by one tick.
func (s *Simulation) Step() {
	s.scheduler.Update(s.world)
	s.ticks++
}

func (s *Simulation) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		s.Step()
	}
	log.Printf("Simulation: ran %d ticks of %q, last %+v", ticks, s.scene.Name, s.collisions.Stats())
}

func (s *Simulation) Report() string {
	return system.Report(s.world, s.collisions.Stats())
}

func (s *Simulation) Ticks() int                     { return s.ticks }
func (s *Simulation) Scene() *prefabs.SceneSpec      { return s.scene }
func (s *Simulation) World() *ecs.World              { return s.world }
func (s *Simulation) Stats() system.CollisionStats   { return s.collisions.Stats() }
func (s *Simulation) Physics() *system.PhysicsSystem { return s.physics }
func (s *Simulation) Factory() *entity.Factory       { return s.factory }

// Mode is the default test mode of the loaded scene.
func (s *Simulation) Mode() collision.Mode {
	m, _ := collision.ParseMode(s.scene.Mode)
	return m
}
