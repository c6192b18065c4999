// Command records maintains personal running records: rebuild the full
// table, check a single activity against it, or print the current bests.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/stridehq/stride/pkg/bootstrap"
	"github.com/stridehq/stride/pkg/domain/records"
	"github.com/stridehq/stride/pkg/infrastructure/sentry"
	"github.com/stridehq/stride/pkg/types"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: records <command> [args]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  rebuild              Recompute every record from activity history")
	fmt.Fprintln(os.Stderr, "  sync <activity-id>   Check one activity against current records")
	fmt.Fprintln(os.Stderr, "  show                 Print current records (initializing if empty)")
	fmt.Fprintln(os.Stderr, "  kpi                  Print training totals")
	os.Exit(2)
}

func main() {
	_ = godotenv.Load()

	cfg := bootstrap.LoadConfig()
	logger := bootstrap.NewLogger(cfg.LogLevel)

	if err := sentry.Init(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	}, logger); err != nil {
		logger.Error("Sentry init failed", "error", err)
	}
	defer sentry.Flush(2 * time.Second)

	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	ctx := context.Background()

	svc, err := bootstrap.NewService(ctx, cfg, logger)
	if err != nil {
		logger.Error("Service init failed", "error", err)
		sentry.CaptureException(err, nil, logger)
		os.Exit(1)
	}
	defer svc.Close()

	switch args[0] {
	case "rebuild":
		err = runRebuild(ctx, svc)
	case "sync":
		if len(args) < 2 {
			usage()
		}
		err = runSync(ctx, svc, args[1])
	case "show":
		err = runShow(ctx, svc)
	case "kpi":
		err = runKPI(ctx, svc, args[1:])
	default:
		usage()
	}

	if err != nil {
		logger.Error("Command failed", "command", args[0], "error", err)
		sentry.CaptureException(err, map[string]interface{}{"command": args[0]}, logger)
		os.Exit(1)
	}
}

func runRebuild(ctx context.Context, svc *bootstrap.Service) error {
	recs, err := svc.Sync.InitializeRecords(ctx)
	if err != nil {
		return err
	}
	printRecords(recs)
	return nil
}

func runSync(ctx context.Context, svc *bootstrap.Service, activityID string) error {
	broken, err := svc.Sync.OnNewActivity(ctx, activityID)
	if err != nil {
		return err
	}
	if len(broken) == 0 {
		fmt.Println("No records broken.")
		return nil
	}
	fmt.Printf("Records broken: %v\n", broken)
	return nil
}

func runShow(ctx context.Context, svc *bootstrap.Service) error {
	recs, err := svc.Sync.EnsureInitializedAndGetRecords(ctx)
	if err != nil {
		return err
	}
	printRecords(recs)
	return nil
}

func runKPI(ctx context.Context, svc *bootstrap.Service, args []string) error {
	fs := flag.NewFlagSet("kpi", flag.ExitOnError)
	sinceStr := fs.String("since", "", "Start date (YYYY-MM-DD)")
	untilStr := fs.String("until", "", "End date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var since, until *time.Time
	if *sinceStr != "" {
		t, err := time.Parse("2006-01-02", *sinceStr)
		if err != nil {
			return fmt.Errorf("parse -since: %w", err)
		}
		since = &t
	}
	if *untilStr != "" {
		t, err := time.Parse("2006-01-02", *untilStr)
		if err != nil {
			return fmt.Errorf("parse -until: %w", err)
		}
		until = &t
	}

	summary, err := svc.KPIs.Compute(ctx, since, until)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Run\t%.2f km\t(%.0f m D+)\n", summary.TotalKmRun, summary.TotalElevationRunM)
	fmt.Fprintf(w, "Trail\t%.2f km\t(%.0f m D+)\n", summary.TotalKmTrail, summary.TotalElevationTrailM)
	fmt.Fprintf(w, "Run+Trail\t%.2f km\t\n", summary.TotalKmRunTrail)
	fmt.Fprintf(w, "Bike\t%.2f km\t(%.0f m D+)\n", summary.TotalKmBike, summary.TotalElevationBikeM)
	fmt.Fprintf(w, "Swim\t%.2f km\t\n", summary.TotalKmSwim)
	fmt.Fprintf(w, "Total\t%.1f h\t\n", summary.TotalHours)
	return w.Flush()
}

func printRecords(recs map[string]*types.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Distance\tTime\tPace\tActivity\tDate")
	fmt.Fprintln(w, "--------\t----\t----\t--------\t----")
	for _, target := range records.Targets {
		rec := recs[target.Key]
		if rec == nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\n", target.Key)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s/km\t%s\t%s\n",
			target.Key,
			types.FormatDuration(rec.TimeSeconds),
			types.FormatPace(rec.PaceSecondsPerKm),
			rec.ActivityName,
			rec.ActivityDate.Format("2006-01-02"))
	}
	w.Flush()
}
