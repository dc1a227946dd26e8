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

// Package iterator defines the protocol followed by the iterators in atlas, after the Iterator
// Guidelines for Google Cloud Client Libraries for Go [0].
//
// An iterator is a struct with a single method Next. Next returns the next element, or the error
// Done once there are no more elements. Iterators over pairs return every part of the pair from
// Next, for example
//
//	// Next returns the next link and the scope that binds it.
//	func (iter *LinkIterator) Next() (*Link, *Scope, error)
//
// A loop over an iterator looks like
//
//	iter := sc.Visible()
//	for {
//		l, owner, err := iter.Next()
//		if err == iterator.Done {
//			break
//		} else if err != nil {
//			return err
//		}
//		process(l, owner)
//	}
//
// Collect drains iterators with a single element into a slice.
//
// [0]: https://github.com/googleapis/google-cloud-go/wiki/Iterator-Guidelines
package iterator
