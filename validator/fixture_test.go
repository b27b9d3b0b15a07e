package validator

import (
	"github.com/warriorguo/flowedit/types"
)

func startNode(id string) types.Node {
	return types.Node{ID: id, Type: types.NodeTypeStart, Data: &types.StartData{Label: "Start"}}
}

func endNode(id string) types.Node {
	return types.Node{ID: id, Type: types.NodeTypeEnd, Data: &types.EndData{Label: "End"}}
}

func field(id, name, label string) types.Field {
	return types.Field{ID: id, Name: name, Label: label, Type: types.FieldTypeString}
}

func formNode(id, customName string, fields ...types.Field) types.Node {
	return types.Node{ID: id, Type: types.NodeTypeForm, Data: &types.FormData{CustomName: customName, Fields: fields}}
}

func condNode(id, customName string) types.Node {
	return types.Node{ID: id, Type: types.NodeTypeConditional, Data: &types.ConditionalData{
		CustomName:      customName,
		FieldToEvaluate: "email",
		Operator:        types.OperatorEquals,
		Value:           "yes",
		Routes:          types.DefaultRoutes(),
	}}
}

func apiNode(id, url string) types.Node {
	return types.Node{ID: id, Type: types.NodeTypeAPI, Data: &types.APIData{URL: url, Method: types.MethodPost}}
}

func edge(source, target string) types.Edge {
	return types.Edge{ID: source + "->" + target, Source: source, Target: target}
}

func branch(source, target, handle string) types.Edge {
	return types.Edge{ID: source + "-" + handle + "->" + target, Source: source, Target: target, SourceHandle: handle}
}

func errorIDs(errs []types.ValidationError) []string {
	ids := make([]string, 0, len(errs))
	for _, e := range errs {
		ids = append(ids, e.ID)
	}
	return ids
}

func findError(errs []types.ValidationError, id string) (types.ValidationError, bool) {
	for _, e := range errs {
		if e.ID == id {
			return e, true
		}
	}
	return types.ValidationError{}, false
}
