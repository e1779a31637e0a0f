package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/momomsr/PDFOCR/layout"
)

// settings mirrors the tunable pipeline configuration. YAML files use
// the same keys, so a settings file can pin a tuned configuration and
// individual flags can still override it.
type settings struct {
	ColumnDetection bool       `yaml:"column_detection"`
	MaxColumns      int        `yaml:"max_columns"`
	HeadingH1       float64    `yaml:"heading_threshold_h1"`
	HeadingH2       float64    `yaml:"heading_threshold_h2"`
	ExtraRules      extraRules `yaml:"heading_extra_rules"`
	MergeGap        float64    `yaml:"paragraph_merge_gap"`
	IndentTolerance float64    `yaml:"indent_tolerance"`
	HyphenMerge     bool       `yaml:"hyphen_merge"`
	KeepLineBreaks  bool       `yaml:"keep_line_breaks"`
	OutputFormat    string     `yaml:"output_format"`
	TextAlignment   string     `yaml:"text_alignment"`
	RegexCleanup    []string   `yaml:"custom_regex_cleanup"`
}

type extraRules struct {
	Centered bool `yaml:"centered"`
	AllCaps  bool `yaml:"all_caps"`
	BigGap   bool `yaml:"big_gap"`
}

func defaultSettings() settings {
	cfg := layout.DefaultConfig()
	return settings{
		ColumnDetection: true,
		MaxColumns:      2,
		HeadingH1:       cfg.Heading.H1Ratio,
		HeadingH2:       cfg.Heading.H2Ratio,
		ExtraRules: extraRules{
			Centered: cfg.Heading.Extra.Centered,
			AllCaps:  cfg.Heading.Extra.AllCaps,
			BigGap:   cfg.Heading.Extra.BigGap,
		},
		MergeGap:        cfg.Block.MergeGapRatio,
		IndentTolerance: cfg.Block.IndentTolerance,
		HyphenMerge:     cfg.Block.HyphenMerge,
		KeepLineBreaks:  cfg.Block.KeepLineBreaks,
		OutputFormat:    "markdown",
		TextAlignment:   "justify",
	}
}

// loadSettings reads a YAML settings file over the defaults.
func loadSettings(path string) (settings, error) {
	s := defaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings file: %w", err)
	}
	return s, nil
}

// layoutConfig converts the settings into a layout configuration.
func (s settings) layoutConfig() layout.Config {
	return layout.Config{
		Heading: layout.HeadingConfig{
			H1Ratio: s.HeadingH1,
			H2Ratio: s.HeadingH2,
			Extra: layout.ExtraRules{
				Centered: s.ExtraRules.Centered,
				AllCaps:  s.ExtraRules.AllCaps,
				BigGap:   s.ExtraRules.BigGap,
			},
		},
		Block: layout.BlockConfig{
			MergeGapRatio:   s.MergeGap,
			IndentTolerance: s.IndentTolerance,
			HyphenMerge:     s.HyphenMerge,
			KeepLineBreaks:  s.KeepLineBreaks,
		},
	}
}
