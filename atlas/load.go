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

package atlas

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"
)

// File is a document to load from disk.
type File struct {
	Path string

	// Atlas marks a document that only supplies definitions.
	Atlas bool
}

// LoadFiles reads files concurrently and returns them as Sources named by their paths, in the order
// of files.
func LoadFiles(ctx context.Context, files []File) (Sources, error) {
	texts := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			body, err := os.ReadFile(file.Path)
			if err != nil {
				return err
			}
			texts[i] = string(body)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Sources{}, err
	}

	var sources Sources
	for i, file := range files {
		if file.Atlas {
			sources = sources.WithAtlas(file.Path, texts[i])
		} else {
			sources = sources.With(file.Path, texts[i])
		}
	}
	return sources, nil
}
