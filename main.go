// Package main provides the entry point for the ScrimKit demo application.
package main

import (
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scrimkit/internal/app"
	"scrimkit/pkg/overlay"
	"scrimkit/ui/demowindow"
)

const (
	appTitle   = "ScrimKit Demo"
	appVersion = "0.1.0"
)

func main() {
	setupLogger()
	log.Info().Str("version", appVersion).Msgf("starting %s", appTitle)

	fyneApp := fyneapp.NewWithID("io.scrimkit.demo")
	fyneApp.Settings().SetTheme(&app.ScrimDemoTheme{})

	state := app.NewState()

	// Optional style file argument, merged over the built-in styles.
	if len(os.Args) > 1 {
		stylePath := os.Args[1]
		if err := state.LoadStyles(stylePath); err != nil {
			log.Warn().Err(err).Str("path", stylePath).Msg("failed to load styles")
		}
	}

	win := demowindow.New(fyneApp, state)
	win.ShowAndRun()
}

// setupLogger routes library diagnostics and demo logging to the console.
func setupLogger() {
	level := zerolog.InfoLevel
	if os.Getenv("SCRIMKIT_DEBUG") != "" {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()

	overlay.Logger = log.Logger
}
