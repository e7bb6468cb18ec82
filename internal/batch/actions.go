// Package batch implements the multi-page batch command: a worker pool
// that extracts every configured page, writes JSON artifacts, and
// records the run in the database.
package batch

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/sitetruth/sitetruth/internal/detector"
	"github.com/sitetruth/sitetruth/models"
	"github.com/sitetruth/sitetruth/pkg/analytics"
	"github.com/sitetruth/sitetruth/pkg/assembler"
	"github.com/sitetruth/sitetruth/pkg/db"
	"github.com/sitetruth/sitetruth/pkg/manifest"
	"github.com/sitetruth/sitetruth/pkg/mapreduce"
	"github.com/sitetruth/sitetruth/pkg/storage"
	"github.com/urfave/cli/v2"
)

// Job defines a task for a worker to perform.
type Job struct {
	Source models.PageSource
}

// Result holds the outcome of a processed job.
type Result struct {
	URL        string
	FilePath   string
	Page       *models.ExtractedPage
	Error      error
	WordCounts map[string]int
}

func BatchAction(c *cli.Context) error {
	zerolog.TimeFieldFormat = time.RFC3339
	logger := zlog.Output(zerolog.ConsoleWriter{Out: c.App.ErrWriter, TimeFormat: time.RFC3339})
	if c.Bool("quiet") {
		logger = logger.Level(zerolog.ErrorLevel)
	}

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := db.Open(config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID := uuid.NewString()
	if err := database.InsertRun(runID, baseURLOf(config), len(config.Pages)); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	logger.Info().Str("run_id", runID).Int("pages", len(config.Pages)).Msg("starting batch run")

	s := &storage.Storage{}
	enrich := c.Bool("enrich")

	var wg sync.WaitGroup
	jobs := make(chan Job, len(config.Pages))
	results := make(chan Result, len(config.Pages))

	for w := 1; w <= config.WorkerCount; w++ {
		wg.Add(1)
		go worker(w, logger, s, config, enrich, &wg, jobs, results)
	}

	for _, source := range config.Pages {
		jobs <- Job{Source: source}
	}
	close(jobs)

	wg.Wait()
	close(results)

	succeeded, failed := 0, 0
	var allResults []manifest.PageResult
	var intermediate []map[string]int
	for result := range results {
		allResults = append(allResults, manifest.PageResult{
			URL:        result.URL,
			FilePath:   result.FilePath,
			Page:       result.Page,
			Error:      result.Error,
			WordCounts: result.WordCounts,
		})
		if result.WordCounts != nil {
			intermediate = append(intermediate, result.WordCounts)
		}

		if result.Error != nil {
			failed++
			logger.Error().Str("url", result.URL).Err(result.Error).Msg("page failed")
			continue
		}
		if _, err := database.InsertPage(runID, result.Page); err != nil {
			failed++
			logger.Error().Str("url", result.URL).Err(err).Msg("failed to store page")
			continue
		}
		succeeded++
		logger.Info().
			Str("url", result.URL).
			Str("path", result.FilePath).
			Float64("confidence", result.Page.Confidence).
			Msg("page extracted")
	}

	if err := database.UpdateRunStats(runID, succeeded, failed); err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}

	aggregate := mapreduce.Reduce(intermediate)
	manifestPath, err := manifest.GenerateSummary(config.OutputDir, runID, allResults, aggregate, s)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate run manifest")
	} else {
		logger.Info().Str("path", manifestPath).Msg("run manifest written")
	}

	if !c.Bool("quiet") && len(aggregate) > 0 {
		fmt.Fprintln(c.App.Writer, "Top keywords across the run:")
		mapreduce.PrintTopKeywords(aggregate, 25)
	}

	logger.Info().
		Str("run_id", runID).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("batch run finished")
	fmt.Fprintln(c.App.Writer, runID)

	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("all %d pages failed", failed)
	}
	return nil
}

// worker processes jobs from the jobs channel and sends results to the
// results channel.
func worker(id int, logger zerolog.Logger, s *storage.Storage, config *models.BatchConfig, enrich bool, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Debug().Int("worker", id).Str("url", job.Source.URL).Msg("job started")
		result := Result{URL: job.Source.URL}

		html, err := s.ReadFile(job.Source.File)
		if err != nil {
			result.Error = fmt.Errorf("read error: %w", err)
			results <- result
			continue
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
		if err != nil {
			result.Error = fmt.Errorf("parse error: %w", err)
			results <- result
			continue
		}

		page := assembler.Assemble(doc, job.Source.URL, config.Options)
		result.WordCounts = mapreduce.Map(&page, &analytics.Analytics{})

		if enrich {
			if err := detector.Enrich(job.Source.URL, string(html), &page.Meta); err != nil {
				logger.Warn().Int("worker", id).Str("url", job.Source.URL).Err(err).
					Msg("readability enrichment failed")
			}
		}

		path, err := s.SavePage(config.OutputDir, &page)
		if err != nil {
			result.Error = fmt.Errorf("save error: %w", err)
			result.Page = &page
			results <- result
			continue
		}

		result.Page = &page
		result.FilePath = path
		results <- result
	}
}

// baseURLOf picks the run's representative site URL: the first page's
// URL trimmed to scheme and host.
func baseURLOf(config *models.BatchConfig) string {
	if len(config.Pages) == 0 {
		return ""
	}
	first := config.Pages[0].URL
	if idx := strings.Index(first, "://"); idx >= 0 {
		if slash := strings.Index(first[idx+3:], "/"); slash >= 0 {
			return first[:idx+3+slash]
		}
	}
	return first
}
