/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the atlas.yaml file of the command line tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/botobag/atlas/atlas"
	"github.com/botobag/atlas/graphql"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "atlas.yaml"

// Output formats.
const (
	OutputSDL  = "sdl"
	OutputJSON = "json"
)

// Config describes the documents to resolve and how to report the results.
type Config struct {
	// Sources are glob patterns of the documents to resolve and check.
	Sources []string `yaml:"sources"`

	// Atlas are glob patterns of the documents that only supply definitions.
	Atlas []string `yaml:"atlas"`

	LogLevel string `yaml:"log_level"`
	Output   string `yaml:"output"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Sources:  []string{"*.graphql"},
		LogLevel: "info",
		Output:   OutputSDL,
	}
}

// Load reads the configuration at path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	const op = graphql.Op("config.Load")
	config := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	} else if err != nil {
		return nil, graphql.NewError(fmt.Sprintf("failed to read config %s", path), op, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, graphql.NewError(fmt.Sprintf("failed to parse config %s", path), op, err)
	}

	if err := config.Validate(); err != nil {
		return nil, graphql.NewError(fmt.Sprintf("invalid config %s", path), op, err)
	}
	return config, nil
}

// Validate checks the values that cannot be checked by decoding.
func (config *Config) Validate() error {
	const op = graphql.Op("config.Validate")
	switch config.Output {
	case OutputSDL, OutputJSON:
	default:
		return graphql.NewError(
			fmt.Sprintf("unknown output format %q (want %q or %q)", config.Output, OutputSDL, OutputJSON), op)
	}

	if hclog.LevelFromString(config.LogLevel) == hclog.NoLevel {
		return graphql.NewError(fmt.Sprintf("unknown log level %q", config.LogLevel), op)
	}

	for _, pattern := range append(config.Sources, config.Atlas...) {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return graphql.NewError(fmt.Sprintf("bad pattern %q", pattern), op, err)
		}
	}
	return nil
}

// Level returns the log level.
func (config *Config) Level() hclog.Level {
	return hclog.LevelFromString(config.LogLevel)
}

// Files expands the patterns relative to dir. Every file appears once; a file matched by both
// lists is a source. Files of each list are sorted by path.
func (config *Config) Files(dir string) ([]atlas.File, error) {
	sources, err := glob(dir, config.Sources)
	if err != nil {
		return nil, err
	}
	definitions, err := glob(dir, config.Atlas)
	if err != nil {
		return nil, err
	}

	var (
		files = make([]atlas.File, 0, len(sources)+len(definitions))
		seen  = map[string]bool{}
	)
	for _, path := range sources {
		seen[path] = true
		files = append(files, atlas.File{Path: path})
	}
	for _, path := range definitions {
		if !seen[path] {
			seen[path] = true
			files = append(files, atlas.File{Path: path, Atlas: true})
		}
	}
	return files, nil
}

func glob(dir string, patterns []string) ([]string, error) {
	var (
		paths []string
		seen  = map[string]bool{}
	)
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(dir, pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, graphql.NewError(fmt.Sprintf("bad pattern %q", pattern), graphql.Op("config.Files"), err)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
