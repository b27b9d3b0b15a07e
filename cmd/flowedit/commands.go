package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/warriorguo/flowedit"
	"github.com/warriorguo/flowedit/runtime"
	"github.com/warriorguo/flowedit/store/mem"
	"github.com/warriorguo/flowedit/types"
	"github.com/warriorguo/flowedit/utils"
	"github.com/warriorguo/flowedit/validator"
)

// workflowFile has the layout of the autosave record, the timestamp is optional.
type workflowFile struct {
	Nodes []types.Node `json:"nodes"`
	Edges []types.Edge `json:"edges"`
}

func readWorkflowFile(path string) (*workflowFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "read workflow %s", path)
	}
	w := &workflowFile{}
	if err := utils.Unserialize(b, w); err != nil {
		return nil, errors.Annotatef(err, "parse workflow %s", path)
	}
	log.Debugf("read %d nodes and %d edges from %s", len(w.Nodes), len(w.Edges), path)
	return w, nil
}

func printResult(out io.Writer, result types.ValidationResult) error {
	if result.IsValid {
		fmt.Fprintln(out, "workflow is valid")
		return nil
	}
	for _, e := range result.Errors {
		fmt.Fprintf(out, "- %s\n", e.String())
	}
	return errors.NotValidf("workflow, %d errors", len(result.Errors))
}

func runValidate(out io.Writer, path string) error {
	w, err := readWorkflowFile(path)
	if err != nil {
		return errors.Trace(err)
	}
	return printResult(out, validator.ValidateWorkflow(w.Nodes, w.Edges))
}

func runFields(out io.Writer, path, nodeID string) error {
	w, err := readWorkflowFile(path)
	if err != nil {
		return errors.Trace(err)
	}
	found := false
	for _, n := range w.Nodes {
		if n.ID == nodeID {
			found = true
			break
		}
	}
	if !found {
		return errors.NotFoundf("node %s", nodeID)
	}

	for _, name := range validator.GetReachableFields(nodeID, w.Nodes, w.Edges) {
		fmt.Fprintln(out, name)
	}
	return nil
}

func runRender(ctx context.Context, out io.Writer, path string) error {
	w, err := readWorkflowFile(path)
	if err != nil {
		return errors.Trace(err)
	}

	opts := types.NewEditorOptions()
	types.DisableAutoStart()(opts)
	types.DisableTaskRunAsync()(opts)
	editor := runtime.NewEditor(mem.NewMemStore(), opts)
	defer editor.Close(ctx)

	if err := editor.SetGraph(ctx, w.Nodes, w.Edges); err != nil {
		return errors.Trace(err)
	}
	editor.ValidateNow(ctx)

	dot, err := editor.RenderDOT()
	if err != nil {
		return errors.Trace(err)
	}
	fmt.Fprint(out, dot)
	return nil
}

func runInspect(ctx context.Context, out io.Writer, opts []types.EditorOption) error {
	editor, err := flowedit.NewEditor(opts...)
	if err != nil {
		return errors.Trace(err)
	}
	defer editor.Close(ctx)

	saved, err := editor.Restore(ctx)
	if errors.IsNotFound(err) {
		fmt.Fprintln(out, "no saved workflow")
		return nil
	}
	if err != nil {
		return errors.Trace(err)
	}

	fmt.Fprintf(out, "saved at %s: %d nodes, %d edges\n", saved.Timestamp, len(saved.Nodes), len(saved.Edges))
	names := make([]string, 0, len(saved.Nodes))
	for _, n := range saved.Nodes {
		names = append(names, types.NodeDisplayName(n))
	}
	fmt.Fprintf(out, "nodes: %s\n", strings.Join(names, ", "))
	return printResult(out, editor.ValidateNow(ctx))
}

func runClear(ctx context.Context, out io.Writer, opts []types.EditorOption) error {
	editor, err := flowedit.NewEditor(opts...)
	if err != nil {
		return errors.Trace(err)
	}
	defer editor.Close(ctx)

	if err := editor.ClearSaved(ctx); err != nil {
		return errors.Trace(err)
	}
	fmt.Fprintln(out, "saved workflow discarded")
	return nil
}
