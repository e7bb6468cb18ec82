// Package models defines data structures for extraction options,
// batch configuration, and the extracted page record.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExtractOptions controls a single extraction call. Each option only
// affects its own extractor; zero values fall back to defaults.
type ExtractOptions struct {
	MaxImages       int      `yaml:"max_images"`
	MinWidth        int      `yaml:"min_width"`
	MinHeight       int      `yaml:"min_height"`
	AllowedFormats  []string `yaml:"allowed_formats"`
	MaxNavDepth     int      `yaml:"max_nav_depth"`
	MinParagraphLen int      `yaml:"min_paragraph_len"`

	IncludeExternalLinks bool `yaml:"include_external_links"`
	ExtractSchemaOrg     bool `yaml:"extract_schema_org"`
	ExtractOpenGraph     bool `yaml:"extract_open_graph"`
	CalculateReadability bool `yaml:"calculate_readability"`
	DetectLanguage       bool `yaml:"detect_language"`
}

// DefaultOptions returns the documented per-extractor defaults.
func DefaultOptions() ExtractOptions {
	return ExtractOptions{
		MaxImages:            50,
		MinWidth:             50,
		MinHeight:            50,
		AllowedFormats:       []string{"jpg", "jpeg", "png", "gif", "webp", "svg"},
		MaxNavDepth:          3,
		MinParagraphLen:      20,
		IncludeExternalLinks: false,
		ExtractSchemaOrg:     true,
		ExtractOpenGraph:     true,
		CalculateReadability: true,
		DetectLanguage:       false,
	}
}

// Normalize fills zero-valued limits with their defaults so callers can
// set only the options they care about.
func (o ExtractOptions) Normalize() ExtractOptions {
	def := DefaultOptions()
	if o.MaxImages <= 0 {
		o.MaxImages = def.MaxImages
	}
	if o.MinWidth <= 0 {
		o.MinWidth = def.MinWidth
	}
	if o.MinHeight <= 0 {
		o.MinHeight = def.MinHeight
	}
	if len(o.AllowedFormats) == 0 {
		o.AllowedFormats = def.AllowedFormats
	}
	if o.MaxNavDepth <= 0 {
		o.MaxNavDepth = def.MaxNavDepth
	}
	if o.MinParagraphLen <= 0 {
		o.MinParagraphLen = def.MinParagraphLen
	}
	return o
}

// PageSource is one batch input: a locally materialized HTML file plus
// the resolved URL it was fetched from. Fetching itself is the
// crawler's job, not ours.
type PageSource struct {
	File string `yaml:"file"`
	URL  string `yaml:"url"`
}

// BatchConfig is the YAML config for a batch extraction run.
type BatchConfig struct {
	Pages       []PageSource   `yaml:"pages"`
	OutputDir   string         `yaml:"output_dir"`
	DBPath      string         `yaml:"db_path"`
	WorkerCount int            `yaml:"worker_count"`
	Options     ExtractOptions `yaml:"options"`
}

// LoadConfig reads and validates a batch config file.
func LoadConfig(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config BatchConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(config.Pages) == 0 {
		return nil, fmt.Errorf("config has no pages")
	}
	if config.OutputDir == "" {
		config.OutputDir = "results"
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}
	config.Options = config.Options.Normalize()

	return &config, nil
}
