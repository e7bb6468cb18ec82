package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sitetruth/sitetruth/internal/batch"
	dbcmd "github.com/sitetruth/sitetruth/internal/db"
	"github.com/sitetruth/sitetruth/internal/exportcmd"
	"github.com/sitetruth/sitetruth/internal/extract"
	"github.com/urfave/cli/v2"
)

func main() {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "sitetruth",
		Usage: "extract confidence-scored content records from business-website pages",
		Commands: []*cli.Command{
			{
				Name:  "extract",
				Usage: "Extract a single page from a local HTML file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "path to the materialized HTML file, or - for stdin", Required: true},
					&cli.StringFlag{Name: "url", Usage: "resolved URL the file was fetched from", Required: true},
					&cli.StringFlag{Name: "output-dir", Usage: "write the record as <slug>.json here instead of stdout"},
					&cli.IntFlag{Name: "max-images", Usage: "cap per image element class"},
					&cli.IntFlag{Name: "max-nav-depth", Usage: "maximum nav nesting depth"},
					&cli.BoolFlag{Name: "external-links", Usage: "include off-site links in the record"},
					&cli.BoolFlag{Name: "detect-language", Usage: "detect the page language"},
					&cli.BoolFlag{Name: "enrich", Usage: "enrich metadata via readability", Value: true},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
				Action: extract.ExtractAction,
			},
			{
				Name:  "batch",
				Usage: "Extract every page in a YAML config with a worker pool",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "batch config file", Value: "config.yaml"},
					&cli.BoolFlag{Name: "enrich", Usage: "enrich metadata via readability", Value: true},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
				Action: batch.BatchAction,
			},
			{
				Name:  "export",
				Usage: "Render a stored page record as Markdown",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "record", Usage: "page record JSON file", Required: true},
					&cli.StringFlag{Name: "html", Usage: "original HTML file for the body section"},
					&cli.StringFlag{Name: "output", Usage: "output file or directory (stdout when omitted)"},
				},
				Action: exportcmd.ExportAction,
			},
			{
				Name:  "runs",
				Usage: "List batch runs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Usage: "database path (default: next to the binary)"},
					&cli.IntFlag{Name: "limit", Usage: "max runs to show", Value: 20},
				},
				Action: dbcmd.RunsAction,
			},
			{
				Name:  "pages",
				Usage: "List the pages stored for a run",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Usage: "database path (default: next to the binary)"},
					&cli.StringFlag{Name: "run", Usage: "run ID (default: latest run)"},
				},
				Action: dbcmd.PagesAction,
			},
			{
				Name:      "page",
				Usage:     "Print the stored record for one page URL",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Usage: "database path (default: next to the binary)"},
					&cli.StringFlag{Name: "run", Usage: "run ID (default: latest run)"},
				},
				Action: dbcmd.ShowPageAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
