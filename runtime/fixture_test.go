package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/warriorguo/flowedit/store"
	"github.com/warriorguo/flowedit/types"
)

var epoch = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: epoch}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// countingStore counts the writes that reach the wrapped store.
type countingStore struct {
	store.Store

	mu   sync.Mutex
	sets int
}

func (s *countingStore) Set(ctx context.Context, prefix, key string, value []byte) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	return s.Store.Set(ctx, prefix, key, value)
}

func (s *countingStore) Sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sets
}

func testOptions(clock *fakeClock) *types.EditorOptions {
	opts := types.NewEditorOptions()
	types.WithClock(clock.Now)(opts)
	types.DisableAutoStart()(opts)
	types.DisableTaskRunAsync()(opts)
	return opts
}

func contactForm(customName string) types.Node {
	return types.Node{
		ID:       "f",
		Type:     types.NodeTypeForm,
		Position: types.Position{X: 100, Y: 50},
		Data: &types.FormData{
			CustomName: customName,
			Fields: []types.Field{
				{ID: "1", Name: "email", Label: "Email", Type: types.FieldTypeString, Required: true},
			},
		},
	}
}

// validGraph is start -> form -> end.
func validGraph(customName string) ([]types.Node, []types.Edge) {
	nodes := []types.Node{
		{ID: "s", Type: types.NodeTypeStart, Data: &types.StartData{Label: "Start"}},
		contactForm(customName),
		{ID: "e", Type: types.NodeTypeEnd, Position: types.Position{X: 200, Y: 100}, Data: &types.EndData{Label: "End"}},
	}
	edges := []types.Edge{
		{ID: "s->f", Source: "s", Target: "f"},
		{ID: "f->e", Source: "f", Target: "e"},
	}
	return nodes, edges
}

func invalidGraph() ([]types.Node, []types.Edge) {
	nodes, edges := validGraph("Contact")
	return nodes[:2], edges[:1]
}
