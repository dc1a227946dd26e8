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

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/botobag/atlas/atlas"
	"github.com/botobag/atlas/internal/config"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	output     string

	// Set up by the root command before any subcommand runs.
	cfg    *config.Config
	logger hclog.Logger

	rootCmd = &cobra.Command{
		Use:   "atlas",
		Short: "Resolve linked GraphQL schema documents",
		Long: `atlas reads the GraphQL schema documents listed in atlas.yaml, resolves the names they
import with @link, and fills in the definitions they use from the other documents.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath,
		"path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (trace, debug, info, warn, error); overrides log_level")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "",
		"output format (sdl or json); overrides output")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = hclog.New(&hclog.LoggerOptions{
		Name:   "atlas",
		Level:  cfg.Level(),
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

// openWorkspace loads the configured documents plus the given paths, which are always resolved as
// sources.
func openWorkspace(ctx context.Context, paths ...string) (*atlas.Workspace, error) {
	files, err := cfg.Files(filepath.Dir(configPath))
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		found := false
		for i := range files {
			if files[i].Path == path {
				files[i].Atlas = false
				found = true
			}
		}
		if !found {
			files = append(files, atlas.File{Path: path})
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no documents match the patterns in %s", configPath)
	}

	sources, err := atlas.LoadFiles(ctx, files)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded documents", "count", sources.Len())

	return atlas.New(sources, atlas.WithLogger(logger)), nil
}

// documentArg returns the cleaned path of the document named on the command line.
func documentArg(args []string) string {
	return filepath.Clean(args[0])
}
