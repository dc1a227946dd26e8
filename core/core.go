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
	"github.com/botobag/atlas/graphql"

	"github.com/hashicorp/go-hclog"
)

// Stats counts the work done by a Core.
type Stats struct {
	// Evaluations is the number of times a body was run.
	Evaluations int

	// Rollbacks is the number of runs abandoned by a gate.
	Rollbacks int

	// Commits is the number of runs whose result was committed.
	Commits int
}

// Phase tells whether an Event is sent before or after an evaluation.
type Phase uint8

// Enumeration of Phase
const (
	Begin Phase = iota
	End
)

// String implements fmt.Stringer.
func (phase Phase) String() string {
	if phase == Begin {
		return "begin"
	}
	return "end"
}

// Event is sent to trace listeners for every evaluation.
type Event struct {
	Phase Phase

	// Name of the evaluated Task.
	Name string

	// The committed result of the cell. For an End event of a rolled back run it is the result of
	// an earlier run.
	HasData bool
	Errors  []error

	// RolledBack is true for the End event of a run abandoned by a gate.
	RolledBack bool

	cell *cell
}

type options struct {
	logger hclog.Logger
}

// Option configures a Core.
type Option func(opts *options)

// WithLogger sets the logger that receives the evaluation events at TRACE level.
func WithLogger(logger hclog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// Core is the root of a memoized computation.
type Core[T any] struct {
	data    T
	options options
	cells   map[Task[T]]*cell
	stack   []*cell
	tracers []func(event Event)
	stats   Stats
}

// New creates a Core over data.
func New[T any](data T, opts ...Option) *Core[T] {
	c := &Core[T]{
		data:  data,
		cells: map[Task[T]]*cell{},
	}

	for _, opt := range opts {
		opt(&c.options)
	}
	if c.options.logger == nil {
		c.options.logger = hclog.NewNullLogger()
	}

	return c
}

// Data returns the root value.
func (c *Core[T]) Data() T {
	return c.data
}

// Stats returns the counters of the Core.
func (c *Core[T]) Stats() Stats {
	return c.stats
}

// Status returns the status of the cell of task.
func (c *Core[T]) Status(task Task[T]) Status {
	if cl, exists := c.cells[task]; exists {
		return cl.status
	}
	return StatusEmpty
}

// Update returns a new Core over f(data). The new Core starts with a copy of the cells of c, so the
// gates of its evaluations compare against the runs committed in c. c is left unchanged. Update
// must not be called during an evaluation.
func (c *Core[T]) Update(f func(data T) T) *Core[T] {
	if len(c.stack) > 0 {
		panic("core: Update called during an evaluation")
	}

	cells := make(map[Task[T]]*cell, len(c.cells))
	for task, cl := range c.cells {
		cells[task] = cl.clone()
	}

	return &Core[T]{
		data:    f(c.data),
		options: c.options,
		cells:   cells,
	}
}

// Forget drops the cells of tasks so that their results and gates are released. A forgotten task
// that is evaluated again starts from an empty cell. Forget must not be called during an evaluation.
func (c *Core[T]) Forget(tasks ...Task[T]) {
	if len(c.stack) > 0 {
		panic("core: Forget called during an evaluation")
	}
	for _, task := range tasks {
		delete(c.cells, task)
	}
}

// Trace runs block and calls listener for every evaluation begun or ended while block runs,
// including nested ones.
func (c *Core[T]) Trace(block func(), listener func(event Event)) {
	c.tracers = append(c.tracers, listener)
	defer func() {
		c.tracers = c.tracers[:len(c.tracers)-1]
	}()
	block()
}

// Report adds errors to the result of the innermost running evaluation. It panics with an
// EvalStackEmpty error when no evaluation is running.
func (c *Core[T]) Report(errs ...error) {
	const op graphql.Op = "core.Report"

	if len(c.stack) == 0 {
		panic(graphql.NewError("Report called outside an evaluation",
			graphql.ErrCodeEvalStackEmpty, graphql.ErrKindEvaluation, op))
	}
	c.stack[len(c.stack)-1].report(errs)
}

func (c *Core[T]) emit(event Event) {
	for _, tracer := range c.tracers {
		tracer(event)
	}
}

func (c *Core[T]) event(phase Phase, cl *cell, rolledBack bool) Event {
	return Event{
		Phase:      phase,
		Name:       cl.name,
		HasData:    cl.result.hasData,
		Errors:     cl.result.errors,
		RolledBack: rolledBack,
		cell:       cl,
	}
}

// evaluate runs task and returns its cell. A task that is already running is not run again; its
// committed result is returned as is.
func (c *Core[T]) evaluate(task Task[T]) *cell {
	cl, exists := c.cells[task]
	if !exists {
		cl = &cell{
			name:   task.Name(),
			status: StatusEmpty,
		}
		c.cells[task] = cl
	}

	if cl.status == StatusRun {
		c.options.logger.Trace("re-entrant evaluation", "func", cl.name)
		return cl
	}

	logger := c.options.logger
	logger.Trace("begin", "func", cl.name, "depth", len(c.stack))
	c.emit(c.event(Begin, cl, false))

	c.stats.Evaluations++
	prevStatus := cl.status
	cl.begin()

	committed := func() (committed bool) {
		c.stack = append(c.stack, cl)
		defer func() {
			c.stack = c.stack[:len(c.stack)-1]
			if r := recover(); r != nil {
				cl.rolledBack = true
				cl.finish(prevStatus)
				panic(r)
			}
		}()

		data, err := task.run(&Context[T]{
			core: c,
			cell: cl,
		})

		if !cl.rolledBack {
			switch err {
			case nil:
				cl.pending.data = data
				cl.pending.hasData = true
			case Undefined:
			default:
				cl.pending.errors = append(cl.pending.errors, err)
			}
		}

		return cl.finish(prevStatus)
	}()

	if committed {
		c.stats.Commits++
		logger.Trace("end", "func", cl.name, "has_data", cl.result.hasData, "errors", len(cl.result.errors))
	} else {
		c.stats.Rollbacks++
		logger.Trace("rollback", "func", cl.name, "status", cl.status)
	}
	c.emit(c.event(End, cl, !committed))

	return cl
}
