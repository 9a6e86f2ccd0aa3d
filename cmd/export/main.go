package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alex-pricope/eurovision-scoreboard/api"
	"github.com/alex-pricope/eurovision-scoreboard/export"
	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/alex-pricope/eurovision-scoreboard/storage"
)

// Batch export of the numbered scoreboard files in scoreboards.directory into
// export.screenshotsDirectory. Configuration comes from config.yaml and the environment.
func main() {
	logging.BoostrapLogger()
	api.LoadViper()
	config := api.ReadConfig()
	logging.Configure(logging.Config{Level: config.Level, Format: config.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		logging.Log.Errorf("EXPORT: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, config *api.Config) error {
	system := scoreboard.VotingSystemByID(config.DefaultVotingSystem)
	rounds := storage.NewFSRoundStorage(config.Directory, storage.DefaultRoundPrefix)

	opts := config.DirectoryPlan()
	if opts.ScreenshotCount == 0 {
		opts.ScreenshotCount = rounds.Count()
		if opts.RangeEnd == 0 {
			opts.RangeEnd = opts.ScreenshotCount
		}
		logging.Log.Infof("EXPORT: found %d scoreboard files in %s", opts.ScreenshotCount, config.Directory)
	}

	revealOrder, err := revealOrder(ctx, system, rounds, opts.ScreenshotCount, config.CountryList)
	if err != nil {
		return err
	}

	units, err := export.PlanDirectory(system, opts, revealOrder)
	if err != nil {
		return err
	}

	sink, err := export.NewDirectorySink(config.ScreenshotsDirectory)
	if err != nil {
		return err
	}

	server := api.NewServer(config)
	runner := &export.Runner{OnProgress: func(p export.Progress) {
		if p.Status == export.StatusGenerating {
			logging.Log.Infof("EXPORT: [%d/%d] %s", p.Current, p.Total, p.Filename)
		}
	}}
	result, err := runner.Run(ctx, units, server.Renderer(), sink)
	if err != nil {
		return err
	}
	logging.Log.Infof("EXPORT: wrote %d screenshots to %s in %s", len(result.Files), config.ScreenshotsDirectory, result.Duration)
	return nil
}

// revealOrder aggregates the televote rounds on disk. The configured country list is
// used when no round could be read.
func revealOrder(ctx context.Context, system scoreboard.VotingSystemConfig, rounds *storage.FSRoundStorage, total int, countries []string) ([]string, error) {
	for _, phase := range system.Phases {
		if !phase.AggregatePoints {
			continue
		}
		sums, err := scoreboard.AggregateFromSource(ctx, rounds, total, phase.PointsToShow)
		if err != nil {
			return nil, err
		}
		if len(sums) == 0 && len(countries) > 0 {
			logging.Log.Warnf("TELEVOTE: no rounds readable, revealing the configured country list")
			return countries, nil
		}
		return scoreboard.RevealOrder(sums), nil
	}
	return nil, nil
}
