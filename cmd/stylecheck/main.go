// Command stylecheck validates ScrimKit style YAML files.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"scrimkit/pkg/style"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cmd := &cli.Command{
		Name:      "stylecheck",
		Usage:     "Validate ScrimKit style YAML files",
		UsageText: "stylecheck [options] <file>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only report errors",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("stylecheck failed")
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("no style files given")
	}

	quiet := cmd.Bool("quiet")
	failed := 0

	for _, path := range paths {
		styles, err := style.LoadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("unreadable style file")
			failed++
			continue
		}

		names := make([]string, 0, len(styles))
		for name := range styles {
			names = append(names, name)
		}
		sort.Strings(names)

		ok := true
		for _, name := range names {
			if err := styles[name].Validate(); err != nil {
				log.Error().Err(err).Str("file", path).Str("style", name).Msg("invalid style")
				ok = false
				failed++
			}
		}

		if ok && !quiet {
			fmt.Printf("%s: %d style(s) ok\n", path, len(styles))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d invalid style(s)", failed)
	}
	return nil
}
