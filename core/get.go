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

import (
	"fmt"

	"github.com/botobag/atlas/graphql"
)

// Result is the outcome of GetResult.
type Result[R any] struct {
	Data    R
	HasData bool

	// Errors reported by the evaluation and all evaluations nested in it.
	Errors []error
}

// Get evaluates fn and returns its data. Without data, it fails with the only error reported by fn
// or with a NoLayerData error that aggregates all of them.
func Get[T, R any](c *Core[T], fn *Func[T, R]) (R, error) {
	const op graphql.Op = "core.Get"

	cl := c.evaluate(fn)
	if cl.result.hasData {
		data, _ := cl.result.data.(R)
		return data, nil
	}

	var zero R
	if len(cl.result.errors) == 1 {
		return zero, cl.result.errors[0]
	}
	return zero, graphql.NewAggregateError(fmt.Sprintf("%s produced no data", fn.name),
		graphql.ErrCodeNoLayerData, cl.result.errors, graphql.ErrKindEvaluation, op)
}

// Try evaluates fn and returns its data. The second return value is false if fn produced no data.
func Try[T, R any](c *Core[T], fn *Func[T, R]) (R, bool) {
	cl := c.evaluate(fn)
	if !cl.result.hasData {
		var zero R
		return zero, false
	}
	data, _ := cl.result.data.(R)
	return data, true
}

// errorCollector gathers the errors of the latest result of every cell evaluated while it listens,
// in the order the evaluations ended.
type errorCollector struct {
	order  []*cell
	errors map[*cell][]error
}

func newErrorCollector() *errorCollector {
	return &errorCollector{
		errors: map[*cell][]error{},
	}
}

func (collector *errorCollector) listen(event Event) {
	if event.Phase != End {
		return
	}

	cl := event.cell
	if _, seen := collector.errors[cl]; seen {
		for i, c := range collector.order {
			if c == cl {
				collector.order = append(collector.order[:i], collector.order[i+1:]...)
				break
			}
		}
	}
	collector.order = append(collector.order, cl)
	collector.errors[cl] = event.Errors
}

func (collector *errorCollector) collect() []error {
	var errs []error
	for _, cl := range collector.order {
		errs = append(errs, collector.errors[cl]...)
	}
	return errs
}

// GetResult evaluates fn and returns its data along with the errors of fn and of every evaluation
// nested in it. It never fails.
func GetResult[T, R any](c *Core[T], fn *Func[T, R]) Result[R] {
	var (
		cl        *cell
		collector = newErrorCollector()
	)

	c.Trace(func() {
		cl = c.evaluate(fn)
	}, collector.listen)

	var result Result[R]
	if cl.result.hasData {
		result.Data, _ = cl.result.data.(R)
		result.HasData = true
	}
	result.Errors = collector.collect()
	return result
}

// Check evaluates the tasks and fails with a CheckFailed error aggregating the errors of the tasks
// and all evaluations nested in them. It returns nil if no errors were reported.
func Check[T any](c *Core[T], tasks ...Task[T]) error {
	const op graphql.Op = "core.Check"

	collector := newErrorCollector()
	c.Trace(func() {
		for _, task := range tasks {
			c.evaluate(task)
		}
	}, collector.listen)

	errs := collector.collect()
	if len(errs) == 0 {
		return nil
	}
	return graphql.NewAggregateError(fmt.Sprintf("check failed with %d error(s)", len(errs)),
		graphql.ErrCodeCheckFailed, errs, graphql.ErrKindEvaluation, op)
}
