// Package extract implements the single-page extract command.
package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitetruth/sitetruth/internal/detector"
	"github.com/sitetruth/sitetruth/models"
	"github.com/sitetruth/sitetruth/pkg/assembler"
	"github.com/sitetruth/sitetruth/pkg/storage"
	"github.com/urfave/cli/v2"
)

// OptionsFromFlags builds per-call extraction options from CLI flags,
// starting from the documented defaults.
func OptionsFromFlags(c *cli.Context) models.ExtractOptions {
	opts := models.DefaultOptions()
	if c.IsSet("max-images") {
		opts.MaxImages = c.Int("max-images")
	}
	if c.IsSet("max-nav-depth") {
		opts.MaxNavDepth = c.Int("max-nav-depth")
	}
	opts.IncludeExternalLinks = c.Bool("external-links")
	if c.IsSet("detect-language") {
		opts.DetectLanguage = c.Bool("detect-language")
	}
	return opts.Normalize()
}

func ExtractAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	filePath := c.String("file")
	pageURL := c.String("url")
	if filePath == "" {
		return fmt.Errorf("no input file provided via --file flag")
	}
	if pageURL == "" {
		return fmt.Errorf("no page URL provided via --url flag")
	}

	s := &storage.Storage{}
	var html []byte
	var err error
	if filePath == "-" {
		html, err = io.ReadAll(os.Stdin)
	} else {
		html, err = s.ReadFile(filePath)
	}
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	opts := OptionsFromFlags(c)
	logger.Info("extracting page", "url", pageURL, "file", filePath)

	page := assembler.Assemble(doc, pageURL, opts)

	if c.Bool("enrich") {
		if err := detector.Enrich(pageURL, string(html), &page.Meta); err != nil {
			logger.Warn("readability enrichment failed", "url", pageURL, "error", err)
		}
	}

	if outDir := c.String("output-dir"); outDir != "" {
		path, err := s.SavePage(outDir, &page)
		if err != nil {
			return fmt.Errorf("failed to save page record: %w", err)
		}
		logger.Info("saved page record", "path", path, "confidence", page.Confidence)
		fmt.Println(path)
		return nil
	}

	outputData, err := json.MarshalIndent(&page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(outputData))
	return nil
}
