package main

import (
	"flag"
	"time"

	"github.com/Garsondee/Relic-Stalker/internal/game"
	"github.com/Garsondee/Relic-Stalker/internal/logger"
	"github.com/Garsondee/Relic-Stalker/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "YAML tuning file overlaid on the defaults")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	seed := flag.Int64("seed", 0, "world seed (0 = current time)")
	coop := flag.Bool("coop", false, "start in two-player mode")
	flag.Parse()

	log := logger.Log
	if err := logger.SetLevel(*logLevel); err != nil {
		log.Fatal(err)
	}

	cfg := game.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = game.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	mode := game.ModeSingle
	if *coop {
		mode = game.ModeCoop
	}

	g, err := ui.New(cfg, mode, *seed)
	if err != nil {
		log.Fatal(err)
	}
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Relic Stalker")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
