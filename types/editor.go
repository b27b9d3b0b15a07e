package types

import "context"

type Editor interface {
	/**
	 * SetGraph hands the editor a new snapshot of the canvas after a mutation.
	 * Any pending autosave write is cancelled and validation is rescheduled
	 * after the validation debounce.
	 */
	SetGraph(ctx context.Context, nodes []Node, edges []Edge) error
	// ValidateNow skips the validation debounce and validates the current snapshot.
	ValidateNow(ctx context.Context) ValidationResult
	ValidationResult() ValidationResult
	NodeErrors(nodeID string) []ValidationError
	/**
	 * ReachableFields returns the form field names available upstream of
	 * the target node, in first-seen order.
	 */
	ReachableFields(targetNodeID string) []string

	SaveState() SaveState
	// ClearSaved removes the persisted record and resets the save state to idle.
	ClearSaved(ctx context.Context) error
	/**
	 * LoadSaved returns the persisted record, nil when nothing usable is stored.
	 * It never fails, broken records are logged and ignored.
	 */
	LoadSaved(ctx context.Context) *SavedWorkflowData
	Restore(ctx context.Context) (*SavedWorkflowData, error)
	// WithSaveState binds the autosave controller to ctx for presentation code.
	WithSaveState(ctx context.Context) context.Context

	RenderDOT() (string, error)
	/**
	 * caller self invoking RunOnce, EditorOption.AutoStart should be false.
	 * It fires every debounced task that is due.
	 */
	RunOnce() error
	Close(ctx context.Context) error
}
