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
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/botobag/atlas/atlas"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	debounce time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Check the source documents again whenever one of them changes",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
)

func init() {
	watchCmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond,
		"time to wait for more changes before checking again")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	w, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so the directories are watched.
	dirs := map[string]bool{}
	for _, name := range w.Sources().Names() {
		dir := filepath.Dir(name)
		if !dirs[dir] {
			dirs[dir] = true
			if err := watcher.Add(dir); err != nil {
				return err
			}
		}
	}

	wl := &watchLoop{
		workspace: w,
		logger:    logger.Named("watch"),
		pending:   map[string]bool{},
	}
	wl.logger.Info("watching", "directories", len(dirs))
	wl.check(cmd)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if wl.notice(event) {
				timer = time.After(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			wl.logger.Error("watch error", "error", err)

		case <-timer:
			timer = nil
			if wl.apply() {
				wl.check(cmd)
			}
		}
	}
}

// watchLoop feeds file changes into a Workspace. All methods run on the goroutine that owns the
// Workspace.
type watchLoop struct {
	workspace *atlas.Workspace
	logger    hclog.Logger

	// pending are the names of the documents that changed since the last apply.
	pending map[string]bool
}

// notice records event if it concerns a document of the workspace.
func (wl *watchLoop) notice(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if _, exists := wl.workspace.Sources().Text(name); !exists {
		return false
	}
	if !event.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
		return false
	}

	wl.logger.Trace("change", "file", name, "op", event.Op.String())
	wl.pending[name] = true
	return true
}

// apply reads the pending documents into the workspace. It returns false if nothing changed.
func (wl *watchLoop) apply() bool {
	if len(wl.pending) == 0 {
		return false
	}

	for name := range wl.pending {
		delete(wl.pending, name)

		body, err := os.ReadFile(name)
		if errors.Is(err, os.ErrNotExist) {
			// Keep the last text so that the document comes back when it is written again.
			wl.logger.Warn("document disappeared", "file", name)
			continue
		} else if err != nil {
			wl.logger.Error("failed to read document", "file", name, "error", err)
			continue
		}
		wl.workspace.Update(name, string(body))
	}
	return true
}

// check checks the workspace and logs how much of it was recomputed.
func (wl *watchLoop) check(cmd *cobra.Command) {
	before := wl.workspace.Stats()
	if err := check(cmd, wl.workspace); err != nil {
		wl.logger.Debug("check failed", "error", err)
	}

	after := wl.workspace.Stats()
	wl.logger.Debug("checked",
		"evaluations", after.Evaluations-before.Evaluations,
		"commits", after.Commits-before.Commits,
		"rollbacks", after.Rollbacks-before.Rollbacks)
}
