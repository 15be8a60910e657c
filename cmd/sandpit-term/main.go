// Command sandpit-term runs the sandbox inside a terminal, two pixels per
// character cell.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/levels"
	"github.com/milk9111/sandpit/sandbox"
)

const (
	logDir      = "logs"
	logFileName = "sandpit-term.log"
)

// setupLogging sends the standard logger to logs/sandpit-term.log when
// debug is set and discards it otherwise.
func setupLogging(debug bool) *os.File {
	log.SetOutput(io.Discard)
	if !debug {
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in config; reloaded on change")
	debug := flag.Bool("debug", false, "write logs to "+filepath.Join(logDir, logFileName))
	seed := flag.Uint64("seed", 0, "first level seed, 0 picks one")
	backend := flag.String("backend", "", "physics backend: chipmunk or box2d (default from config)")
	levelScript := flag.String("level-script", "", "tengo level script: a file path or a built-in name ("+strings.Join(levels.Names(), ", ")+")")
	scale := flag.Float64("scale", defaultScale, "zoom multiplier for the low terminal resolution")
	flag.Parse()

	if logFile := setupLogging(*debug); logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Default()
	var watcher *config.Watcher
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if watcher, err = config.Watch(*configPath); err != nil {
			log.Printf("config: hot reload disabled: %v", err)
		}
	}
	if *levelScript != "" {
		cfg.Level.Script = *levelScript
	}

	term, err := NewTerminal(cfg, sandbox.Options{Backend: *backend, Seed: *seed}, watcher, *scale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer term.Close()

	term.Run()
}
