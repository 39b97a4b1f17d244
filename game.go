package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/colliders/collision"
	"github.com/milk9111/colliders/common"
	"github.com/milk9111/colliders/ecs/render"
	"github.com/milk9111/colliders/prefabs"
	"github.com/milk9111/colliders/settings"
	"github.com/milk9111/colliders/sim"
	"golang.design/x/clipboard"
)

type Game struct {
	frames int

	settings *settings.Manager
	sim      *sim.Simulation
	renderer *render.RenderSystem
	outlines *render.OutlineDrawer
	watcher  *prefabs.Watcher
	hud      *ebitenui.UI
	hudState *hudState
	sounds   *contactSounds

	clipboardOK bool
	status      string
}

func NewGame(store *settings.Manager, watch bool) (*Game, error) {
	cfg := store.Get()
	scene, err := prefabs.LoadScene(cfg.Scene)
	if err != nil {
		return nil, err
	}

	g := &Game{
		settings: store,
		renderer: render.NewRenderSystem(),
		outlines: render.NewOutlineDrawer(),
		sounds:   newContactSounds(),
	}
	g.sim, err = sim.New(scene, sim.Options{Mode: cfg.Mode, Drawer: g.outlines})
	if err != nil {
		return nil, err
	}
	collision.SetDebugDraw(cfg.Debug)

	if err := clipboard.Init(); err != nil {
		log.Printf("Game: clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if watch {
		w, err := prefabs.NewWatcher(prefabs.DefaultWatchDirs()...)
		if err != nil {
			log.Printf("Game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.hud, g.hudState = NewHUD(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()
	g.handleInput()

	if !g.settings.Get().Paused {
		g.step()
	}

	g.hudState.refresh(g)
	g.hud.Update()
	return nil
}

func (g *Game) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.toggleDebug()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.toggleMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyReport()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reloadScene()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if g.settings.Get().Paused {
			g.step()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.saveSettings(func(s *settings.Settings) { s.Muted = !s.Muted })
	}
}

func (g *Game) step() {
	g.outlines.Reset()
	g.sim.Step()
	st := g.sim.Stats()
	g.sounds.observe(st.Contacts, st.Stops, g.settings.Get().Muted)
}

func (g *Game) toggleDebug() {
	g.saveSettings(func(s *settings.Settings) { s.Debug = !s.Debug })
	collision.SetDebugDraw(g.settings.Get().Debug)
}

func (g *Game) toggleMode() {
	next := collision.DetailedTest
	if g.sim.Mode() == collision.DetailedTest {
		next = collision.SimpleTest
	}
	if err := g.sim.SetMode(next.String()); err != nil {
		g.setStatus("mode: %v", err)
		return
	}
	g.saveSettings(func(s *settings.Settings) { s.Mode = next.String() })
	g.setStatus("mode %s", next)
}

func (g *Game) togglePause() {
	g.saveSettings(func(s *settings.Settings) { s.Paused = !s.Paused })
}

func (g *Game) copyReport() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.sim.Report()))
	g.setStatus("collision report copied")
}

func (g *Game) reloadScene() {
	scene, err := prefabs.LoadScene(g.settings.Get().Scene)
	if err != nil {
		g.setStatus("reload: %v", err)
		return
	}
	if err := g.sim.Load(scene); err != nil {
		g.setStatus("reload: %v", err)
		return
	}
	g.setStatus("reloaded %s", scene.Name)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			switch change.Kind {
			case prefabs.SceneChanged:
				g.reloadScene()
			case prefabs.ScriptChanged:
				if err := g.sim.ReloadScript(filepath.Base(change.Path)); err != nil {
					g.setStatus("script: %v", err)
				} else {
					g.setStatus("reloaded %s", filepath.Base(change.Path))
				}
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("Game: watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) saveSettings(fn func(*settings.Settings)) {
	if err := g.settings.Update(fn); err != nil {
		log.Printf("Game: %v", err)
	}
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	log.Printf("Game: %s", g.status)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.sim.World(), screen)
	if g.settings.Get().Debug {
		render.DrawPhysicsDebug(g.sim.Physics().Space(), screen)
		g.outlines.Flush(screen)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  D debug  M mode  P pause  N step  S sound  C copy  R reload", ebiten.ActualFPS()), 10, 10)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 10, common.BaseHeight-24)
	}
	g.hud.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
