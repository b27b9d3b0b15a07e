package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/warriorguo/flowedit/store"
	"github.com/warriorguo/flowedit/types"
	"github.com/warriorguo/flowedit/validator"
)

const (
	validateTask = "validate"
)

var (
	_ types.Editor = &editor{}
)

func NewEditor(store store.Store, opts *types.EditorOptions) types.Editor {
	return newEditor(store, opts)
}

type editor struct {
	ctx    context.Context
	cancel context.CancelFunc

	exitCh  chan struct{}
	running bool

	opts     *types.EditorOptions
	store    store.Store
	sched    *scheduler
	autoSave *AutoSave

	mu        sync.Mutex
	nodes     []types.Node
	edges     []types.Edge
	result    types.ValidationResult
	validated bool
}

func newEditor(store store.Store, opts *types.EditorOptions) *editor {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	e := &editor{}
	e.ctx, e.cancel = context.WithCancel(opts.Ctx)
	e.opts = opts
	e.store = store
	e.running = true
	e.sched = newScheduler(opts.Clock, opts.TaskRunAsync)
	e.autoSave = newAutoSave(e.ctx, store, e.sched, opts)
	e.result = types.NewValidationResult(nil)

	if opts.AutoStart {
		e.asyncRun()
	}
	return e
}

func (e *editor) asyncRun() {
	readyCh := make(chan struct{}, 1)
	e.exitCh = make(chan struct{})

	go func() {
		ticker := time.NewTicker(e.opts.TickInterval)
		defer ticker.Stop()
		close(readyCh)

		for {
			select {
			case <-e.ctx.Done():
				close(e.exitCh)
				return
			case <-ticker.C:
				e.sched.runOnce()
			}
		}
	}()
	<-readyCh
}

func (e *editor) SetGraph(ctx context.Context, nodes []types.Node, edges []types.Edge) error {
	if !e.running {
		return errors.MethodNotAllowedf("editor closed")
	}

	e.mu.Lock()
	e.nodes = append([]types.Node(nil), nodes...)
	e.edges = append([]types.Edge(nil), edges...)
	e.mu.Unlock()

	// the graph changed, whatever was about to be written is stale now
	e.autoSave.Cancel()
	e.sched.schedule(validateTask, e.opts.ValidationDebounce, e.revalidate)
	return nil
}

func (e *editor) revalidate() {
	e.mu.Lock()
	nodes, edges := e.nodes, e.edges
	e.result = validator.ValidateWorkflow(nodes, edges)
	e.validated = true
	isValid := e.result.IsValid
	e.mu.Unlock()

	e.autoSave.Update(e.ctx, nodes, edges, isValid)
}

func (e *editor) ValidateNow(ctx context.Context) types.ValidationResult {
	e.sched.cancel(validateTask)
	e.revalidate()
	return e.ValidationResult()
}

func (e *editor) ValidationResult() types.ValidationResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.result
}

func (e *editor) NodeErrors(nodeID string) []types.ValidationError {
	return e.ValidationResult().ErrorsForNode(nodeID)
}

func (e *editor) ReachableFields(targetNodeID string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return validator.GetReachableFields(targetNodeID, e.nodes, e.edges)
}

func (e *editor) SaveState() types.SaveState {
	return e.autoSave.Status()
}

func (e *editor) ClearSaved(ctx context.Context) error {
	return errors.Trace(e.autoSave.ClearSaved(ctx))
}

func (e *editor) LoadSaved(ctx context.Context) *types.SavedWorkflowData {
	return LoadSavedWorkflow(ctx, e.store, e.opts.StorageKey)
}

func (e *editor) Restore(ctx context.Context) (*types.SavedWorkflowData, error) {
	saved := e.LoadSaved(ctx)
	if saved == nil {
		return nil, errors.NotFoundf("saved workflow %s", e.opts.StorageKey)
	}
	if err := e.SetGraph(ctx, saved.Nodes, saved.Edges); err != nil {
		return nil, errors.Trace(err)
	}
	return saved, nil
}

func (e *editor) WithSaveState(ctx context.Context) context.Context {
	return WithAutoSave(ctx, e.autoSave)
}

func (e *editor) RenderDOT() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result *types.ValidationResult
	if e.validated {
		result = &e.result
	}
	return newGraphRenderer().generateDOT(e.nodes, e.edges, result)
}

func (e *editor) RunOnce() error {
	if !e.running {
		return errors.MethodNotAllowedf("editor closed")
	}
	e.sched.runOnce()
	return nil
}

/**
 * Close stops the background loop and waits for a running write.
 * Pending debounced work is dropped.
 */
func (e *editor) Close(ctx context.Context) error {
	if !e.running {
		return nil
	}

	e.cancel()
	e.running = false

	if e.exitCh != nil {
		<-e.exitCh
	}

	return e.sched.stopWait(ctx)
}
