// cmd/logbook/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/prasetyadi/po-logbook/internal/config"
	"github.com/prasetyadi/po-logbook/internal/export"
	"github.com/prasetyadi/po-logbook/internal/loader"
	"github.com/prasetyadi/po-logbook/internal/pipeline"
	"github.com/prasetyadi/po-logbook/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "logbook",
		Usage: "Build the procurement PO logbook from the entry table and reference sheets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "entry-file",
				Usage:   "Path to the PO entry XLSX file",
				EnvVars: []string{"PO_ENTRY_FILE"},
			},
			&cli.StringFlag{
				Name:    "output",
				Usage:   "Output filename (default: procurement_data_<timestamp>.xlsx)",
				EnvVars: []string{"EXPORT_FILENAME"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("logbook run failed")
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.App.LogLevel)

	entryFile := cfg.Source.EntryFile
	if c.String("entry-file") != "" {
		entryFile = c.String("entry-file")
	}

	logger.Log.Info().Str("file", entryFile).Msg("loading po entry table")
	lines, err := loader.LoadLines(entryFile)
	if err != nil {
		return fmt.Errorf("failed to load po entry table: %w", err)
	}

	logger.Log.Info().Msg("loading reference tables")
	refs, err := loader.LoadReferences(c.Context, cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to load reference tables: %w", err)
	}

	pipeline.NewProcessor(refs).Process(lines)
	table := pipeline.Finalize(lines)

	path, err := export.WriteXLSX(table, cfg.App.ExportDir, c.String("output"))
	if err != nil {
		return fmt.Errorf("failed to export logbook: %w", err)
	}
	logger.Log.Info().Str("path", path).Int("rows", len(table.Rows)).Msg("logbook exported")
	return nil
}
