package runtime

import (
	"context"
	"encoding/json"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/warriorguo/flowedit/store"
	"github.com/warriorguo/flowedit/types"
	"github.com/warriorguo/flowedit/utils"
)

const (
	AutoSavePath = "/autosave/"
)

/**
 * LoadSavedWorkflow reads the autosave record stored under key.
 * It returns nil when nothing is stored, when storage can not be read, when
 * the payload is not JSON, or when nodes, edges or timestamp is missing.
 * Failures are logged, never returned: a broken record must not stop the
 * editor from starting. Node and edge contents are not checked here, a
 * restored graph goes through the regular validation instead.
 */
func LoadSavedWorkflow(ctx context.Context, s store.Store, key string) *types.SavedWorkflowData {
	b, err := s.Get(ctx, AutoSavePath, key)
	if err != nil {
		log.Errorf("load saved workflow %s from store failed: %v", key, err)
		return nil
	}
	if b == nil {
		return nil
	}

	var probe struct {
		Nodes     json.RawMessage `json:"nodes"`
		Edges     json.RawMessage `json:"edges"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := utils.Unserialize(b, &probe); err != nil {
		log.Errorf("unserialize saved workflow %s:%s failed: %v", key, string(b), err)
		return nil
	}
	if missing(probe.Nodes) || missing(probe.Edges) || missing(probe.Timestamp) {
		log.Warnf("saved workflow %s is missing nodes, edges or timestamp, ignored", key)
		return nil
	}

	record := &types.SavedWorkflowData{}
	if err := utils.Unserialize(b, record); err != nil {
		log.Errorf("unserialize saved workflow %s failed: %v", key, err)
		return nil
	}
	return record
}

func missing(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", `""`:
		return true
	}
	return false
}

func saveWorkflow(ctx context.Context, s store.Store, key string, record *types.SavedWorkflowData) error {
	b, err := utils.Serialize(record)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(s.Set(ctx, AutoSavePath, key, b))
}

func removeWorkflow(ctx context.Context, s store.Store, key string) error {
	return errors.Trace(s.Remove(ctx, AutoSavePath, key))
}
