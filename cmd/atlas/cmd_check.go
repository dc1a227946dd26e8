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
	"github.com/botobag/atlas/atlas"
	"github.com/botobag/atlas/graphql"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every reference in the source documents resolves",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	return check(cmd, w)
}

// check runs Workspace.Check and reports the errors it found.
func check(cmd *cobra.Command, w *atlas.Workspace) error {
	err := w.Check()
	if err == nil {
		logger.Info("check passed", "documents", w.Sources().Len())
		return nil
	}

	errs := []error{err}
	if e, ok := err.(*graphql.Error); ok && e.Code == graphql.ErrCodeCheckFailed {
		errs = e.Causes()
	}
	if err := reportErrors(cmd.ErrOrStderr(), errs); err != nil {
		return err
	}
	return failIf(errs)
}
