package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/colliders/common"
	"github.com/milk9111/colliders/settings"
)

func main() {
	debug := flag.Bool("debug", false, "draw collider outlines and physics shapes")
	mode := flag.String("mode", "", "override the scene test mode (simple or detailed)")
	sceneName := flag.String("scene", "", "scene name in prefabs/scenes (basename, .yaml optional)")
	watch := flag.Bool("watch", true, "reload scenes and scripts when they change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	store := settings.Open(settings.AppName)
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if err := store.Update(func(s *settings.Settings) {
		if set["debug"] {
			s.Debug = *debug
		}
		if set["mode"] {
			s.Mode = *mode
		}
		if set["scene"] {
			s.Scene = *sceneName
		}
	}); err != nil {
		log.Printf("Settings: %v", err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("colliders")

	game, err := NewGame(store, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
