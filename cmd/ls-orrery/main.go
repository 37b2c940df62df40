// Command ls-orrery is an animated solar system for the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/kinematics"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
)

// CLI flags
var (
	configPath  string
	logLevel    string
	summaryMode bool
	atMillis    float64
	writeConfig bool
	showVersion bool
	noAudio     bool
)

func main() {
	flag.StringVar(&configPath, "config", "", "Config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&summaryMode, "summary", false, "Print body positions instead of TUI")
	flag.Float64Var(&atMillis, "at", 0, "Scene time in milliseconds for -summary")
	flag.BoolVar(&writeConfig, "write-config", false, "Write the effective config to the config path and exit")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.BoolVar(&noAudio, "no-audio", false, "Disable background music")
	flag.Parse()

	if showVersion {
		fmt.Printf("ls-orrery v%s\n", version.Version)
		return
	}

	// .env may set the config path; a missing file is fine.
	_ = godotenv.Load()

	path := config.ResolvePath(configPath)
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if logLevel == "" {
		logLevel = cfg.Log.Level
	}
	level := logging.ParseLevel(logLevel)

	if writeConfig {
		if err := config.Save(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
		return
	}

	// Headless mode: no TUI
	if summaryMode || !term.IsTerminal(int(os.Stdout.Fd())) {
		logger := logging.New(level)
		if err := runHeadless(cfg, atMillis); err != nil {
			logger.Error("summary failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(cfg, path, level); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI starts music and the interactive scene. It returns instead of
// exiting so the audio device and log file are always released.
func runTUI(cfg *config.Config, path string, level logging.Level) error {
	// The TUI owns the terminal, so logs go to a file.
	logger, logFile, err := logging.Open(cfg.Log.Path, level)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger.Info("config %s", path)

	var music ui.Music
	if cfg.Audio.Enabled && !noAudio {
		player := audio.New(logger.Named("audio"))
		player.SetVolume(cfg.Audio.Volume)
		if err := player.Play(cfg.Audio.Path); err != nil {
			logger.Warn("audio disabled: %v", err)
		} else {
			music = player
		}
		defer player.Close()
	}

	model, err := ui.New(ui.Options{
		Config: cfg,
		Logger: logger.Named("ui"),
		Music:  music,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil {
		logger.Error("tui: %v", err)
		return fmt.Errorf("running TUI: %w", err)
	}
	logger.Info("exit")
	return nil
}

// runHeadless prints the scene at the given time without starting the TUI.
func runHeadless(cfg *config.Config, at float64) error {
	registry, err := body.SolarSystem(cfg.Kinematics.RotationIncrement)
	if err != nil {
		return fmt.Errorf("build solar system: %w", err)
	}
	params := kinematics.NewParams(cfg.Kinematics.OrbitSpeedScale, cfg.Kinematics.NominalFrame.D())

	s := scene.New(registry, nil, nil, params)
	s.Advance(at)
	scene.WriteSummaryTable(os.Stdout, s)
	return nil
}
