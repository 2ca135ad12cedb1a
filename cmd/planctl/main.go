package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/catalog"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/engine"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/logger"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Catalog string `help:"Catalog JSON file path." default:"./data/nyc_catalog.json"`

	Plan PlanCmd `cmd:"" help:"Plan a single-day itinerary." default:"1"`
}

// PlanCmd plans a day offline from the JSON catalog
type PlanCmd struct {
	City   string   `help:"City to plan." default:"New York City"`
	Date   string   `help:"Trip date (YYYY-MM-DD); defaults to today."`
	Vibes  []string `help:"Vibe tags, e.g. classic,local,foodie." sep:","`
	Pace   string   `help:"Pace: chill, balanced, or max." default:"balanced" enum:"chill,balanced,max"`
	Focus  string   `help:"Focus neighborhood, e.g. 'west village'."`
	MustDo []string `help:"Must-do entries as 'title@time', e.g. 'Celeste@7pm dinner'." sep:";"`
	Seed   int64    `help:"Fix the shuffle seed for reproducible runs." default:"-1"`
}

// Run executes the plan command
func (cmd *PlanCmd) Run() error {
	places, err := catalog.LoadFile(CLI.Catalog)
	if err != nil {
		return err
	}

	date := cmd.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	trip := models.TripInput{
		City:      cmd.City,
		Date:      date,
		Vibes:     cmd.Vibes,
		Pace:      models.Pace(cmd.Pace),
		FocusArea: cmd.Focus,
		MustDos:   parseMustDos(cmd.MustDo),
	}

	opts := []engine.Option{engine.WithProviders(providers.Disabled())}
	if cmd.Seed >= 0 {
		opts = append(opts, engine.WithSeed(cmd.Seed))
	}
	eng := engine.New(places, opts...)

	logger.Info("Planning day", "city", trip.City, "date", trip.Date, "pace", trip.Pace)
	itinerary, err := eng.Plan(context.Background(), trip)
	if err != nil {
		return err
	}

	fmt.Printf("Your day in %s (%s):\n\n", trip.City, trip.Date)
	for _, stop := range itinerary.Stops {
		if stop.Title == models.TransitTitle {
			fmt.Printf("    · %s  %s\n", stop.Time, stop.Description)
			continue
		}
		fmt.Printf("%s  %s", stop.Time, stop.Title)
		if stop.Location != "" {
			fmt.Printf(" — %s", stop.Location)
		}
		fmt.Println()
		if stop.Description != "" {
			fmt.Printf("    %s\n", stop.Description)
		}
	}
	return nil
}

// parseMustDos splits 'title@time hint' entries
func parseMustDos(entries []string) []models.MustDo {
	var out []models.MustDo
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		title, hint, _ := strings.Cut(e, "@")
		out = append(out, models.MustDo{
			Title: strings.TrimSpace(title),
			Time:  strings.TrimSpace(hint),
		})
	}
	return out
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("planctl"),
		kong.Description("Offline day-itinerary planner"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": "v0.1.0"},
	)

	home, _ := os.UserHomeDir()
	if err := logger.Init(logger.Config{
		Debug:  CLI.Debug,
		LogDir: filepath.Join(home, ".planctl", "logs"),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logger init failed: %v\n", err)
	}

	if err := ctx.Run(); err != nil {
		logger.Error("Command failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
