// Package manifest writes the run summary file for batch extractions.
package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sitetruth/sitetruth/models"
	"github.com/sitetruth/sitetruth/pkg/mapreduce"
	"github.com/sitetruth/sitetruth/pkg/storage"
)

// PageResult carries one page's outcome from the batch pipeline.
// Defined here rather than importing the pipeline to avoid a cycle.
type PageResult struct {
	URL        string
	FilePath   string
	Page       *models.ExtractedPage
	Error      error
	WordCounts map[string]int
}

// GenerateSummary writes the run manifest into the output directory and
// returns its path.
func GenerateSummary(outputDir, runID string, results []PageResult, aggregateKeywords map[string]int, s *storage.Storage) (string, error) {
	m := RunManifest{
		RunID:             runID,
		GeneratedAt:       time.Now().Format(time.RFC3339),
		TotalPages:        len(results),
		AggregateKeywords: mapreduce.TopKeywords(aggregateKeywords, 25),
	}

	for _, result := range results {
		summary := PageSummary{
			URL: result.URL,
		}

		if result.Error != nil {
			m.Failed++
			summary.Status = "error"
			summary.ErrorMessage = result.Error.Error()
		} else {
			m.Successful++
			summary.Status = "success"
			summary.FilePath = result.FilePath

			if result.Page != nil {
				summary.Slug = result.Page.Slug
				summary.Confidence = result.Page.Confidence
				summary.WordCount = result.Page.Diagnostics.WordCount
				summary.ImageCount = len(result.Page.Images.Value)
			}
			if result.WordCounts != nil {
				summary.TopKeywords = mapreduce.TopKeywords(result.WordCounts, 10)
			}
		}

		m.Pages = append(m.Pages, summary)
	}

	manifestPath := filepath.Join(outputDir, fmt.Sprintf("run-%s.json", runID))
	manifestData, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	if err := s.SaveFile(manifestPath, manifestData); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}

	return manifestPath, nil
}
