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

package core

// undefined is the type of Undefined.
type undefined int

// Error implements Go's error interface.
func (undefined) Error() string {
	return "no data"
}

var _ error = undefined(0)

// Undefined is returned as error by a Func body to finish without data and without error.
const Undefined undefined = 0

// Task is a computation that can be evaluated against a Core[T]. It is implemented by *Func.
type Task[T any] interface {
	// Name identifies the computation in events, logs and error messages.
	Name() string

	run(ctx *Context[T]) (interface{}, error)
}

// Func is a pure computation over the root value of a Core. The *Func pointer is the identity of
// the computation: every Core keeps one cell per *Func, so create Funcs once and reuse them.
type Func[T, R any] struct {
	name string
	body func(ctx *Context[T]) (R, error)
}

var _ Task[int] = (*Func[int, string])(nil)

// NewFunc creates a Func. The body returns (value, nil) to produce data, (_, Undefined) to produce
// nothing and (_, err) to fail with err.
func NewFunc[T, R any](name string, body func(ctx *Context[T]) (R, error)) *Func[T, R] {
	return &Func[T, R]{
		name: name,
		body: body,
	}
}

// Name implements Task.
func (fn *Func[T, R]) Name() string {
	return fn.name
}

// run implements Task.
func (fn *Func[T, R]) run(ctx *Context[T]) (interface{}, error) {
	data, err := fn.body(ctx)
	return data, err
}

// Context is passed to the body of a Func. It is only valid during the evaluation it was created
// for.
type Context[T any] struct {
	core *Core[T]
	cell *cell
}

// Data returns the root value.
func (ctx *Context[T]) Data() T {
	return ctx.core.data
}

// Core returns the Core under evaluation. Use it to evaluate other Funcs from the body.
func (ctx *Context[T]) Core() *Core[T] {
	return ctx.core
}

// Gate compares values with the values given to the gate of the same ordinal in the last committed
// run of the cell. Values match when they have the same count and every pair is identical: equal
// for comparable values, the same backing array and length for slices, the same map for maps.
// Other values never match.
//
// On a match the run is rolled back and Gate returns false. The body must return right away; its
// return values are discarded and the cell keeps its previous result. Gate returns true when the
// run should continue.
func (ctx *Context[T]) Gate(values ...interface{}) bool {
	return ctx.cell.gate(values)
}

// Report adds errors to the result of the running evaluation. Reports made after a rollback are
// dropped.
func (ctx *Context[T]) Report(errs ...error) {
	ctx.cell.report(errs)
}

// RolledBack returns true if a gate rolled back the running evaluation.
func (ctx *Context[T]) RolledBack() bool {
	return ctx.cell.rolledBack
}
