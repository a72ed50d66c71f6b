// Command eda fetches the Titanic passenger list, cleans it and writes the
// chart images, dashboard and insights report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/banshee-data/survival.report/internal/config"
	"github.com/banshee-data/survival.report/internal/pipeline"
	"github.com/banshee-data/survival.report/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file (defaults are used when empty)")
	outDir := flag.String("out", "", "Output directory (overrides output_dir from the config)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := config.EmptyEDAConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadEDAConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *outDir != "" {
		cfg.OutputDir = outDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("%s", version.String())
	res, err := pipeline.Run(ctx, cfg, pipeline.Deps{})
	if err != nil {
		log.Fatalf("EDA failed: %v", err)
	}
	for _, p := range res.Outputs {
		fmt.Printf("Saved %s\n", p)
	}
}
