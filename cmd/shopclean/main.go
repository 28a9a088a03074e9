package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"shopclean/internal/config"
	"shopclean/internal/listener"
	"shopclean/internal/mapping"
	"shopclean/internal/pipeline"
	"shopclean/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	tables, err := mapping.Load(cfg.MappingsPath)
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "clean":
		svc := pipeline.NewService(db, cfg, tables)
		stats, err := svc.Run()
		must(err)
		fmt.Println(pipeline.Summary(stats))
	case "analyze":
		svc := pipeline.NewService(db, cfg, tables)
		report, err := svc.Analyze()
		must(err)
		fmt.Print(pipeline.RenderReport(report))
	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		s := listener.NewService(db, cfg, tables)
		must(s.Run(ctx))
	case "runs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 10, "max runs to list")
		_ = fs.Parse(os.Args[2:])
		runs, err := db.ListRuns(*limit)
		must(err)
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return
		}
		for _, run := range runs {
			fmt.Printf("%s  run=%d trace=%s processed=%d orders=%d dup=%d test=%d zero=%d empty=%d excluded=%d\n",
				run.CreatedAt, run.ID, run.TraceID,
				run.Stats.Processed, run.Stats.Orders,
				run.Stats.Duplicates, run.Stats.TestOrders, run.Stats.ZeroOrders,
				run.Stats.EmptyRows, run.Stats.Excluded)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: shopclean <command>")
	fmt.Println("commands:")
	fmt.Println("  clean            clean the raw sheet into the cleaned sheet")
	fmt.Println("  analyze          report product-code usage and map suggestions")
	fmt.Println("  watch            re-run clean on an interval")
	fmt.Println("  runs [--limit]   list recent run statistics")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
