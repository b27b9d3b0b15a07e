package types

import (
	"encoding/json"
	"fmt"

	"github.com/juju/errors"
)

type NodeType string

const (
	NodeTypeStart       NodeType = "start"
	NodeTypeForm        NodeType = "form"
	NodeTypeConditional NodeType = "conditional"
	NodeTypeAPI         NodeType = "api"
	NodeTypeEnd         NodeType = "end"
)

type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeCheckbox FieldType = "checkbox"
)

type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "not_equals"
	OperatorIsEmpty     Operator = "is_empty"
	OperatorGreaterThan Operator = "greater_than"
	OperatorLessThan    Operator = "less_than"
	OperatorContains    Operator = "contains"
)

var operators = map[Operator]bool{
	OperatorEquals:      true,
	OperatorNotEquals:   true,
	OperatorIsEmpty:     true,
	OperatorGreaterThan: true,
	OperatorLessThan:    true,
	OperatorContains:    true,
}

func (o Operator) Valid() bool {
	return operators[o]
}

type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DELETE"
)

// Route handles leaving a conditional node.
const (
	RouteTrue  = "true"
	RouteFalse = "false"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

/**
 * NodeData is the closed set of per-type node configurations.
 * The unexported method seals it to this package, so a type switch over
 * the variants below is exhaustive.
 */
type NodeData interface {
	names() (customName, label string)
}

var (
	_ NodeData = &StartData{}
	_ NodeData = &FormData{}
	_ NodeData = &ConditionalData{}
	_ NodeData = &APIData{}
	_ NodeData = &EndData{}
	_ NodeData = &RawData{}
)

type StartData struct {
	Label string `json:"label"`
}

type EndData struct {
	Label string `json:"label"`
}

type Field struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	// only meaningful for dropdown fields
	Options []string `json:"options,omitempty"`
}

type FormData struct {
	Label      string  `json:"label,omitempty"`
	CustomName string  `json:"customName"`
	Fields     []Field `json:"fields"`
}

type Route struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

func DefaultRoutes() []Route {
	return []Route{{ID: RouteTrue, Label: "True"}, {ID: RouteFalse, Label: "False"}}
}

type ConditionalData struct {
	Label           string   `json:"label,omitempty"`
	CustomName      string   `json:"customName"`
	FieldToEvaluate string   `json:"fieldToEvaluate"`
	Operator        Operator `json:"operator"`
	Value           string   `json:"value"`
	Routes          []Route  `json:"routes"`
}

type APIData struct {
	Label      string     `json:"label,omitempty"`
	CustomName string     `json:"customName,omitempty"`
	URL        string     `json:"url"`
	Method     HTTPMethod `json:"method"`
}

// RawData keeps the data of a node whose type tag is not recognised.
type RawData struct {
	Values Data
}

func (d *StartData) names() (string, string)       { return "", d.Label }
func (d *EndData) names() (string, string)         { return "", d.Label }
func (d *FormData) names() (string, string)        { return d.CustomName, d.Label }
func (d *ConditionalData) names() (string, string) { return d.CustomName, d.Label }
func (d *APIData) names() (string, string)         { return d.CustomName, d.Label }

func (d *RawData) names() (string, string) {
	customName, _ := d.Values.GetString("customName")
	label, _ := d.Values.GetString("label")
	return customName, label
}

func (d *RawData) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Values)
}

func (d *RawData) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &d.Values)
}

// NodeCallbacks are attached by the editing surface and are never persisted.
type NodeCallbacks struct {
	OnChange func(nodeID string, data NodeData)
	OnDelete func(nodeID string)
}

type Node struct {
	ID        string        `json:"id"`
	Type      NodeType      `json:"type"`
	Position  Position      `json:"position"`
	Data      NodeData      `json:"data"`
	Callbacks NodeCallbacks `json:"-"`
}

// NewNodeData returns the empty configuration for the given node type.
func NewNodeData(typ NodeType) NodeData {
	if typ == NodeTypeConditional {
		return &ConditionalData{Routes: DefaultRoutes()}
	}
	return zeroNodeData(typ)
}

// zeroNodeData is decoded into, so nothing stored may be prefilled.
func zeroNodeData(typ NodeType) NodeData {
	switch typ {
	case NodeTypeStart:
		return &StartData{}
	case NodeTypeForm:
		return &FormData{}
	case NodeTypeConditional:
		return &ConditionalData{}
	case NodeTypeAPI:
		return &APIData{}
	case NodeTypeEnd:
		return &EndData{}
	}
	return &RawData{Values: Data{}}
}

// GetData never returns nil, a node without data gets the empty
// configuration of its type.
func (n *Node) GetData() NodeData {
	if n.Data == nil {
		return NewNodeData(n.Type)
	}
	return n.Data
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID       string          `json:"id"`
		Type     NodeType        `json:"type"`
		Position Position        `json:"position"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Trace(err)
	}

	var data NodeData
	if len(raw.Data) > 0 && string(raw.Data) != "null" {
		data = zeroNodeData(raw.Type)
		if err := json.Unmarshal(raw.Data, data); err != nil {
			return errors.Annotatef(err, "node %s data", raw.ID)
		}
	} else {
		data = NewNodeData(raw.Type)
	}

	n.ID = raw.ID
	n.Type = raw.Type
	n.Position = raw.Position
	n.Data = data
	return nil
}

// NodeDisplayName prefers the custom name, then the label, then "<type> node".
func NodeDisplayName(n Node) string {
	customName, label := n.GetData().names()
	if customName != "" {
		return customName
	}
	if label != "" {
		return label
	}
	return fmt.Sprintf("%s node", n.Type)
}

type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Label        string `json:"label,omitempty"`
}
