package runtime

import (
	"context"

	"github.com/warriorguo/flowedit/types"
)

type autoSaveKey struct{}

// WithAutoSave binds a controller to ctx for code that only displays the save state.
func WithAutoSave(ctx context.Context, a *AutoSave) context.Context {
	return context.WithValue(ctx, autoSaveKey{}, a)
}

/**
 * SaveStateFromContext panics when ctx carries no controller. Reading the
 * save state without one is an integration bug, not a runtime condition.
 */
func SaveStateFromContext(ctx context.Context) types.SaveState {
	a, ok := ctx.Value(autoSaveKey{}).(*AutoSave)
	if !ok || a == nil {
		panic("SaveStateFromContext: no autosave bound to context, use WithAutoSave")
	}
	return a.Status()
}

// ClearSavedFromContext discards the saved record of the controller bound to ctx.
func ClearSavedFromContext(ctx context.Context) error {
	a, ok := ctx.Value(autoSaveKey{}).(*AutoSave)
	if !ok || a == nil {
		panic("ClearSavedFromContext: no autosave bound to context, use WithAutoSave")
	}
	return a.ClearSaved(ctx)
}
