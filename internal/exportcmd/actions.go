// Package exportcmd implements the markdown export command.
package exportcmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sitetruth/sitetruth/pkg/export"
	"github.com/sitetruth/sitetruth/pkg/storage"
	"github.com/urfave/cli/v2"
)

func ExportAction(c *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	recordPath := c.String("record")
	htmlPath := c.String("html")
	if recordPath == "" {
		return fmt.Errorf("no page record provided via --record flag")
	}

	s := &storage.Storage{}
	page, err := s.LoadPage(recordPath)
	if err != nil {
		return fmt.Errorf("failed to load page record: %w", err)
	}

	var html []byte
	if htmlPath != "" {
		html, err = s.ReadFile(htmlPath)
		if err != nil {
			return fmt.Errorf("failed to read HTML file: %w", err)
		}
	}

	exporter := export.NewExporter()
	markdown, err := exporter.PageMarkdown(page, string(html))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	outPath := c.String("output")
	if outPath == "" {
		fmt.Print(markdown)
		return nil
	}
	if info, err := os.Stat(outPath); err == nil && info.IsDir() {
		outPath = filepath.Join(outPath, page.Slug+".md")
	}

	if err := s.SaveFile(outPath, []byte(markdown)); err != nil {
		return fmt.Errorf("failed to save markdown: %w", err)
	}
	logger.Info("exported markdown", "path", outPath, "slug", page.Slug)
	fmt.Println(outPath)

	return nil
}
