package runtime

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/warriorguo/flowedit/store"
	"github.com/warriorguo/flowedit/types"
	"github.com/warriorguo/flowedit/utils"
)

const (
	autoSaveTask = "autosave"
)

/**
 * AutoSave persists valid workflows after a quiet period.
 *
 *   invalid graph               -> error, nothing written
 *   valid, same as stored       -> saved, nothing written
 *   valid, changed              -> saving, write after SaveDebounce
 *   write ok / write failed     -> saved / error
 *   ClearSaved                  -> idle
 *
 * Every Update or Cancel invalidates the pending write, also one that
 * already fired but has not run yet.
 */
type AutoSave struct {
	mu sync.Mutex

	ctx   context.Context
	store store.Store
	sched *scheduler
	now   func() time.Time
	key   string
	delay time.Duration

	status     types.SaveStatus
	lastSaved  *time.Time
	generation uint64
}

func newAutoSave(ctx context.Context, s store.Store, sched *scheduler, opts *types.EditorOptions) *AutoSave {
	return &AutoSave{
		ctx:    ctx,
		store:  s,
		sched:  sched,
		now:    opts.Clock,
		key:    opts.StorageKey,
		delay:  opts.SaveDebounce,
		status: types.SaveIdle,
	}
}

func (a *AutoSave) Status() types.SaveState {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := types.SaveState{Status: a.status}
	if a.lastSaved != nil {
		t := *a.lastSaved
		state.LastSaved = &t
	}
	return state
}

// Update feeds the controller a snapshot together with its validity.
func (a *AutoSave) Update(ctx context.Context, nodes []types.Node, edges []types.Edge, isValid bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked()

	if !isValid {
		a.status = types.SaveError
		return
	}

	if saved := LoadSavedWorkflow(ctx, a.store, a.key); saved != nil && sameContent(nodes, edges, saved.Nodes, saved.Edges) {
		a.status = types.SaveSaved
		if t, err := types.ParseTimestamp(saved.Timestamp); err == nil {
			a.lastSaved = &t
		} else {
			log.Warnf("saved workflow %s has a bad timestamp %q: %v", a.key, saved.Timestamp, err)
		}
		return
	}

	a.status = types.SaveSaving
	generation := a.generation
	nodes = append([]types.Node(nil), nodes...)
	edges = append([]types.Edge(nil), edges...)
	a.sched.schedule(autoSaveTask, a.delay, func() {
		a.flush(generation, nodes, edges)
	})
}

// Cancel drops the pending write, the status is left as it is.
func (a *AutoSave) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked()
}

func (a *AutoSave) ClearSaved(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked()
	a.lastSaved = nil
	a.status = types.SaveIdle
	return errors.Trace(removeWorkflow(ctx, a.store, a.key))
}

func (a *AutoSave) cancelLocked() {
	a.generation++
	a.sched.cancel(autoSaveTask)
}

func (a *AutoSave) flush(generation uint64, nodes []types.Node, edges []types.Edge) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if generation != a.generation {
		return
	}

	now := a.now()
	record := &types.SavedWorkflowData{
		Nodes:     nodes,
		Edges:     edges,
		Timestamp: types.FormatTimestamp(now),
	}
	if err := saveWorkflow(a.ctx, a.store, a.key, record); err != nil {
		log.Errorf("autosave %s failed: %v", a.key, errors.ErrorStack(err))
		a.status = types.SaveError
		return
	}

	log.Debugf("autosave %s written at %s", a.key, record.Timestamp)
	a.status = types.SaveSaved
	a.lastSaved = &now
}

type comparableNode struct {
	ID       string         `json:"id"`
	Type     types.NodeType `json:"type"`
	Position types.Position `json:"position"`
	Data     types.NodeData `json:"data"`
}

type comparableEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle"`
	TargetHandle string `json:"targetHandle"`
	Label        string `json:"label"`
}

/**
 * sameContent compares what would be persisted: callbacks are never part of
 * it, and struct fields always serialise in the same order.
 */
func sameContent(nodes []types.Node, edges []types.Edge, savedNodes []types.Node, savedEdges []types.Edge) bool {
	current, err := comparablePayload(nodes, edges)
	if err != nil {
		return false
	}
	saved, err := comparablePayload(savedNodes, savedEdges)
	if err != nil {
		return false
	}
	return bytes.Equal(current, saved)
}

func comparablePayload(nodes []types.Node, edges []types.Edge) ([]byte, error) {
	cn := make([]comparableNode, 0, len(nodes))
	for _, n := range nodes {
		cn = append(cn, comparableNode{ID: n.ID, Type: n.Type, Position: n.Position, Data: n.GetData()})
	}
	ce := make([]comparableEdge, 0, len(edges))
	for _, e := range edges {
		ce = append(ce, comparableEdge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Label:        e.Label,
		})
	}
	return utils.Serialize(struct {
		Nodes []comparableNode `json:"nodes"`
		Edges []comparableEdge `json:"edges"`
	}{cn, ce})
}
