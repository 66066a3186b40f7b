package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sheikhrachel/go-gol-engine/utils"
)

func main() {
	var (
		configPath  = flag.String("config", "config.json", "path to a JSON config file")
		headless    = flag.Bool("headless", false, "print frames to stdout instead of the interactive UI")
		generations = flag.Int("generations", 0, "headless: stop after this many generations (0 runs until interrupted)")
		randomize   = flag.Bool("randomize", false, "start from a random board")
		seed        = flag.Uint64("seed", 0, "seed for random boards (0 picks one)")
	)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Using default configuration (%v)\n", err)
		config = utils.DefaultConfig()
	}
	if *randomize {
		config.RandomizeOnStart = true
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	if *headless {
		if err = runHeadless(config, *generations, os.Stdout); err != nil {
			log.Fatalf("headless run: %+v", err)
		}
		return
	}

	if err = runTUI(config); err != nil {
		log.Fatalf("terminal ui: %+v", err)
	}
}
