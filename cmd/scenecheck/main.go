// Command scenecheck loads a scene, runs it without a window and prints the
// collision stats, so scene and script edits can be checked from a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/colliders/prefabs"
	"github.com/milk9111/colliders/sim"
)

func main() {
	sceneName := flag.String("scene", "demo", "scene name in prefabs/scenes (basename, .yaml optional)")
	mode := flag.String("mode", "", "override the scene test mode (simple or detailed)")
	ticks := flag.Int("ticks", 300, "number of ticks to simulate")
	every := flag.Int("every", 60, "print stats every N ticks, 0 for the final tick only")
	report := flag.Bool("report", false, "print the contact report after the run")
	flag.Parse()

	scene, err := prefabs.LoadScene(*sceneName)
	if err != nil {
		log.Fatalf("scenecheck: %v", err)
	}
	s, err := sim.New(scene, sim.Options{Mode: *mode})
	if err != nil {
		log.Fatalf("scenecheck: %v", err)
	}

	fmt.Printf("scene %q mode %s objects %d\n", scene.Name, s.Mode(), len(scene.Objects))
	for i := 1; i <= *ticks; i++ {
		s.Step()
		if (*every > 0 && i%*every == 0) || i == *ticks {
			st := s.Stats()
			fmt.Printf("tick %5d t=%-10v hosts=%d tests=%d contacts=%d stops=%d\n", i, st.At, st.Hosts, st.Tests, st.Contacts, st.Stops)
		}
	}
	if *report {
		fmt.Fprint(os.Stdout, s.Report())
	}
}
