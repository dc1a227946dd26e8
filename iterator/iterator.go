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

package iterator

// done is defined to serve as type for Done. It allows us to define an immutable global variable.
type done int

// Error implements Go's error inteface for "done".
func (done) Error() string {
	return "no more items in iterator"
}

var _ error = done(0)

// Done is returned by an iterator's Next method when the iteration is complete; when there are no
// more items to return.
const Done done = 0

// Collect calls next until it returns Done and returns the elements in order. Any other error stops
// the iteration and is returned along with the elements collected so far.
func Collect[T any](next func() (T, error)) ([]T, error) {
	var elements []T
	for {
		element, err := next()
		if err == Done {
			return elements, nil
		} else if err != nil {
			return elements, err
		}
		elements = append(elements, element)
	}
}
