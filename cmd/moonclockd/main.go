package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tcvlabs/moonclock/internal/engine"
	"github.com/tcvlabs/moonclock/internal/log"
	"github.com/tcvlabs/moonclock/pkg/config"
	"github.com/tcvlabs/moonclock/pkg/lunar"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "moonclock.yaml", "Path to YAML configuration file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("moonclockd %s\n", version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	filename, _ := filepath.Abs(*cfgFile)
	cfg, err := config.NewYAMLProvider(filename).LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration. Did you pass the -config flag? %v", err)
	}

	// The engine cannot run without its periodic-term table: a corrupt
	// resource halts startup with a diagnostic rather than running on
	// partial data.
	table, err := loadTable(cfg)
	if err != nil {
		log.Fatalf("Failed to load lunar term table: %v", err)
	}

	eng := engine.New(cfg, table, &consoleDials{}, &consoleDisplay{})

	log.Infow("moonclock starting",
		"latitude", cfg.Location.Latitude,
		"longitude", cfg.Location.Longitude,
		"max_darkness_hours", cfg.MaxDarknessHours)

	refresh := func() {
		if _, err := eng.Refresh(time.Now()); err != nil {
			// An implausible RTC reading skips this cycle; the dials
			// keep the previous values until the clock recovers.
			log.Warnf("refresh skipped: %v", err)
		}
	}
	refresh()

	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(1).Minute().Do(refresh); err != nil {
		log.Fatalf("Failed to schedule refresh: %v", err)
	}
	s.StartBlocking()
}

func loadTable(cfg *config.Data) (*lunar.TermTable, error) {
	if cfg.TablePath != "" {
		return lunar.LoadTableFile(cfg.TablePath)
	}
	return lunar.LoadDefault()
}
