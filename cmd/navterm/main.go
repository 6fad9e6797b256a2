package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/1siamBot/rts-nav/editor"
	"github.com/1siamBot/rts-nav/engine/maplib"
	"github.com/1siamBot/rts-nav/engine/pathfind"
	"github.com/gdamore/tcell/v2"
)

func main() {
	mapPath := flag.String("map", "", "map file (.json, .txt or mask image)")
	cfgPath := flag.String("config", "", "pathfinder YAML config")
	class := flag.String("class", "ground", "movement class: infantry, vehicle, naval, air, ground")
	logPath := flag.String("log", "", "write build and query diagnostics to this file")
	flag.Parse()

	if *mapPath == "" {
		fmt.Fprintln(os.Stderr, "usage: navterm -map FILE [-config FILE] [-class NAME]")
		os.Exit(2)
	}

	// the terminal belongs to tcell, so diagnostics go to a file or nowhere
	logger := log.New(io.Discard, "", 0)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f, "navterm ", log.LstdFlags)
	}

	cfg := pathfind.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = pathfind.LoadConfig(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	cfg.Logger = logger

	pass, err := maplib.ParsePassFlag(*class)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ed, err := editor.Open(*mapPath, pass, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	w, err := maplib.NewWatcher(*mapPath)
	if err != nil {
		logger.Printf("watching disabled: %v", err)
	} else {
		defer w.Close()
	}

	newBrowser(ed, logger).run(screen, w)
}
