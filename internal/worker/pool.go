// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package worker runs a function over a stream of inputs on a fixed number
// of goroutines and hands the outputs back in submission order.
package worker

import (
	"context"
	"sync"
)

// Func processes one input.
type Func[T, R any] func(ctx context.Context, in T) R

type job[T any] struct {
	seq int
	in  T
}

// result pairs an output with the sequence number of its input.
type result[R any] struct {
	seq int
	out R
}

// Pool manages workers that apply a Func to submitted inputs concurrently.
// Inputs are submitted from one goroutine while another drains Results.
type Pool[T, R any] struct {
	workers    int
	fn         Func[T, R]
	jobQueue   chan job[T]
	results    chan result[R]
	ordered    chan R
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
	next       int
}

// NewPool creates a pool with the given number of workers (at least one).
func NewPool[T, R any](ctx context.Context, workers int, fn Func[T, R]) *Pool[T, R] {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &Pool[T, R]{
		workers:    workers,
		fn:         fn,
		jobQueue:   make(chan job[T], workers*2),
		results:    make(chan result[R], workers*2),
		ordered:    make(chan R, workers),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers and the collector that restores input order.
func (p *Pool[T, R]) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
	go p.collect()
}

func (p *Pool[T, R]) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case j, ok := <-p.jobQueue:
			if !ok {
				return
			}
			out := p.fn(p.ctx, j.in)
			select {
			case p.results <- result[R]{seq: j.seq, out: out}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// collect buffers out-of-order results until their predecessors arrive.
func (p *Pool[T, R]) collect() {
	defer close(p.ordered)

	pending := make(map[int]R)
	next := 0
	for r := range p.results {
		pending[r.seq] = r.out
		for {
			out, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			select {
			case p.ordered <- out:
			case <-p.ctx.Done():
				return
			}
			next++
		}
	}
}

// Submit queues an input. It blocks while the queue is full and returns
// false once the pool has been shut down.
func (p *Pool[T, R]) Submit(in T) bool {
	if p.ctx.Err() != nil {
		return false
	}
	j := job[T]{seq: p.next, in: in}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- j:
		p.next++
		return true
	}
}

// Close signals that no more inputs will be submitted. Results is closed
// after the last output has been delivered.
func (p *Pool[T, R]) Close() {
	p.closeOnce.Do(func() {
		close(p.jobQueue)
	})
}

// Results returns outputs in submission order.
func (p *Pool[T, R]) Results() <-chan R {
	return p.ordered
}

// Shutdown stops the pool without waiting for queued inputs.
func (p *Pool[T, R]) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
}
