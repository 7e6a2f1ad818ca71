//go:build unit || e2e

package promotest

import (
	"context"
	"sync"

	"prize-wheel/internal/domain/promocode"
	"prize-wheel/internal/usecase/shared"

	"github.com/samber/lo"
)

// RecordingPublisher keeps every published event in order.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []shared.Event
	err    error
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(_ context.Context, event shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

// FailWith makes every later Publish record the event and return err.
func (p *RecordingPublisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *RecordingPublisher) Events() []shared.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.Event(nil), p.events...)
}

func (p *RecordingPublisher) OfType(t shared.EventType) []shared.Event {
	return lo.Filter(p.Events(), func(e shared.Event, _ int) bool { return e.Type == t })
}

// SequenceGenerator hands out codes in order and repeats the last one.
type SequenceGenerator struct {
	mu    sync.Mutex
	codes []promocode.Code
	next  int
	calls int
}

func NewSequenceGenerator(codes ...string) *SequenceGenerator {
	return &SequenceGenerator{
		codes: lo.Map(codes, func(c string, _ int) promocode.Code { return promocode.Code(c) }),
	}
}

func (g *SequenceGenerator) Generate() (promocode.Code, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	code := g.codes[min(g.next, len(g.codes)-1)]
	g.next++
	return code, nil
}

func (g *SequenceGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// SequenceDrawer returns draws in order and repeats the last one.
type SequenceDrawer struct {
	mu    sync.Mutex
	draws []float64
	next  int
}

func NewSequenceDrawer(draws ...float64) *SequenceDrawer {
	return &SequenceDrawer{draws: draws}
}

func (d *SequenceDrawer) Draw() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.draws[min(d.next, len(d.draws)-1)]
	d.next++
	return v
}
