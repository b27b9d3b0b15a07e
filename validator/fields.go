package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/warriorguo/flowedit/types"
)

const (
	minCustomNameLength = 3
	minFieldNameLength  = 2
	minFieldLabelLength = 2
)

var (
	fieldNamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	urlPattern       = regexp.MustCompile(`^https?://.+`)
)

// ValidateNode runs the field rules of the node's configuration.
// Start, End and unrecognised nodes have no field rules.
func ValidateNode(node types.Node) []types.ValidationError {
	switch data := node.GetData().(type) {
	case *types.FormData:
		return ValidateFormNode(node.ID, data)
	case *types.ConditionalData:
		return ValidateConditionalNode(node.ID, data)
	case *types.APIData:
		return ValidateAPINode(node.ID, data)
	case *types.StartData, *types.EndData, *types.RawData:
		return nil
	}
	return nil
}

func ValidateFormNode(nodeID string, data *types.FormData) []types.ValidationError {
	errs := make([]types.ValidationError, 0)
	errs = appendIf(errs, checkCustomName(nodeID, "Form", data.CustomName))

	if len(data.Fields) == 0 {
		errs = append(errs, nodeError(nodeID, "fields", "Form must have at least one field"))
	}
	for _, field := range data.Fields {
		errs = appendIf(errs, checkFieldName(nodeID, field))
		errs = appendIf(errs, checkFieldLabel(nodeID, field))
	}
	return errs
}

func ValidateConditionalNode(nodeID string, data *types.ConditionalData) []types.ValidationError {
	errs := make([]types.ValidationError, 0)
	errs = appendIf(errs, checkCustomName(nodeID, "Condition", data.CustomName))

	if strings.TrimSpace(data.FieldToEvaluate) == "" {
		errs = append(errs, nodeError(nodeID, "fieldToEvaluate", "Field to evaluate is required"))
	}
	if !data.Operator.Valid() {
		errs = append(errs, nodeError(nodeID, "operator", "Operator is required"))
	}
	if data.Operator != types.OperatorIsEmpty && strings.TrimSpace(data.Value) == "" {
		errs = append(errs, nodeError(nodeID, "value", "Comparison value is required"))
	}
	return errs
}

func ValidateAPINode(nodeID string, data *types.APIData) []types.ValidationError {
	errs := make([]types.ValidationError, 0)

	url := strings.TrimSpace(data.URL)
	switch {
	case url == "":
		errs = append(errs, nodeError(nodeID, "url", "URL is required"))
	case !urlPattern.MatchString(url):
		errs = append(errs, nodeError(nodeID, "url", "URL must start with http:// or https://"))
	}

	if data.Method == "" {
		errs = append(errs, nodeError(nodeID, "method", "HTTP method is required"))
	}
	return errs
}

func checkCustomName(nodeID, kind, customName string) *types.ValidationError {
	name := strings.TrimSpace(customName)
	switch {
	case name == "":
		e := nodeError(nodeID, "customName", kind+" name is required")
		return &e
	case utf8.RuneCountInString(name) < minCustomNameLength:
		e := nodeError(nodeID, "customName", kind+" name must be at least 3 characters")
		return &e
	}
	return nil
}

// checkFieldName stops at the first failing rule: required, alphanumeric, length.
func checkFieldName(nodeID string, field types.Field) *types.ValidationError {
	var message string
	switch {
	case strings.TrimSpace(field.Name) == "":
		message = "Field name is required"
	case !fieldNamePattern.MatchString(field.Name):
		message = "Field name must contain only letters and numbers"
	case utf8.RuneCountInString(strings.TrimSpace(field.Name)) < minFieldNameLength:
		message = "Field name must be at least 2 characters"
	default:
		return nil
	}
	e := nodeError(nodeID, subField(field.ID, "name"), message)
	return &e
}

func checkFieldLabel(nodeID string, field types.Field) *types.ValidationError {
	var message string
	switch label := strings.TrimSpace(field.Label); {
	case label == "":
		message = "Field label is required"
	case utf8.RuneCountInString(label) < minFieldLabelLength:
		message = "Field label must be at least 2 characters"
	default:
		return nil
	}
	e := nodeError(nodeID, subField(field.ID, "label"), message)
	return &e
}

func subField(fieldID, prop string) string {
	return "field-" + fieldID + "-" + prop
}

func nodeError(nodeID, field, message string) types.ValidationError {
	return types.ValidationError{
		ID:      nodeID + "-" + field,
		Message: message,
		NodeID:  nodeID,
		Field:   field,
	}
}

func appendIf(errs []types.ValidationError, e *types.ValidationError) []types.ValidationError {
	if e == nil {
		return errs
	}
	return append(errs, *e)
}
