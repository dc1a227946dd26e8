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

// Package core implements memoized evaluation over an immutable root value.
//
// A Core holds a root value and a table of cells, one per Func evaluated against it. Evaluating a
// Func always runs its body; recomputation is avoided explicitly with Context.Gate: when the values
// passed to a gate are identical to the ones passed to the same gate in the last committed run,
// the run is rolled back and the previous result stays in effect. There is no automatic
// dependency tracking.
//
// Errors never escape an evaluation as panics. A body returns them (or reports them with
// Context.Report) and they are collected into the result of its cell. Get turns a result into
// (data, error), GetResult and Check gather the errors of every nested evaluation.
//
// A Core is not safe for concurrent use.
package core
