// Package db implements the run and page inspection commands.
package db

import (
	"encoding/json"
	"fmt"
	"strings"

	dbpkg "github.com/sitetruth/sitetruth/pkg/db"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-38s %-20s %-30s %-6s %-8s %-8s\n",
		"Run ID", "Started", "Base URL", "Pages", "Success", "Failed")
	fmt.Println(strings.Repeat("-", 115))

	for _, r := range runs {
		fmt.Printf("%-38s %-20s %-30s %-6d %-8d %-8d\n",
			r.RunID,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.BaseURL,
			r.PageCount,
			r.SuccessCount,
			r.FailedCount,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'sitetruth pages --run <id>' to see a run's pages\n")

	return nil
}

func PagesAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := resolveRunID(c, database)
	if err != nil {
		return err
	}

	pages, err := database.ListPages(runID)
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}

	if len(pages) == 0 {
		fmt.Printf("No pages found for run %s\n", runID)
		return nil
	}

	fmt.Printf("Run %s\n", runID)
	fmt.Println(strings.Repeat("=", 100))
	fmt.Printf("%-40s %-20s %-10s %-7s %-7s\n",
		"URL", "Slug", "Confidence", "Words", "Images")
	fmt.Println(strings.Repeat("-", 100))

	for _, p := range pages {
		fmt.Printf("%-40s %-20s %-10.2f %-7d %-7d\n",
			p.URL, p.Slug, p.Confidence, p.WordCount, p.ImageCount)
	}

	fmt.Printf("\nTotal: %d pages\n", len(pages))

	return nil
}

func ShowPageAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no page URL provided")
	}
	pageURL := c.Args().First()

	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := resolveRunID(c, database)
	if err != nil {
		return err
	}

	page, err := database.GetPage(runID, pageURL)
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	outputData, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	fmt.Println(string(outputData))

	return nil
}

// resolveRunID returns the --run flag value, or the most recent run
// when the flag is absent.
func resolveRunID(c *cli.Context, database *dbpkg.DB) (string, error) {
	if runID := c.String("run"); runID != "" {
		return runID, nil
	}

	runs, err := database.ListRuns(1)
	if err != nil {
		return "", fmt.Errorf("failed to get latest run: %w", err)
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs found. Run 'sitetruth batch --config <file>' first")
	}
	return runs[0].RunID, nil
}
