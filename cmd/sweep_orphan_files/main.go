package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/productflow-backend/internal/app"
	"github.com/yungbote/productflow-backend/internal/jobs/sweep"
)

func main() {
	var dryRun bool
	var olderThan time.Duration
	flag.BoolVar(&dryRun, "dry-run", false, "print orphans without removing them")
	flag.DurationVar(&olderThan, "older-than", 24*time.Hour, "only consider files older than this")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	sw := sweep.New(application.Log, application.Files, application.Repos.Product)
	rep, err := sw.Run(context.Background(), sweep.Options{OlderThan: olderThan, DryRun: dryRun})
	if err != nil {
		fmt.Printf("sweep failed: %v\n", err)
		os.Exit(1)
	}
	for _, rel := range rep.Removed {
		if dryRun {
			fmt.Printf("[dry-run] remove %s\n", rel)
		} else {
			fmt.Printf("removed %s\n", rel)
		}
	}
	fmt.Printf("done; scanned=%d removed=%d\n", rep.Scanned, len(rep.Removed))
}
