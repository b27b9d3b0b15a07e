package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warriorguo/flowedit/types"
)

func TestValidateFormNode_MinLengths(t *testing.T) {
	errs := ValidateNode(formNode("n1", "AB", field("f1", "a", "X")))

	assert.Equal(t, []string{"n1-customName", "n1-field-f1-name", "n1-field-f1-label"}, errorIDs(errs))
	assert.Equal(t, "Form name must be at least 3 characters", errs[0].Message)
	assert.Equal(t, "field-f1-name", errs[1].Field)
	assert.Equal(t, "Field name must be at least 2 characters", errs[1].Message)
	assert.Equal(t, "Field label must be at least 2 characters", errs[2].Message)
	for _, e := range errs {
		assert.Equal(t, "n1", e.NodeID)
	}
}

func TestValidateFormNode_FieldNameRules(t *testing.T) {
	errs := ValidateNode(formNode("n1", "Contact", field("f1", "has space", "Label")))
	assert.Equal(t, []string{"n1-field-f1-name"}, errorIDs(errs))
	assert.Equal(t, "Field name must contain only letters and numbers", errs[0].Message)

	// alphanumeric is checked before length, one error per field property
	errs = ValidateNode(formNode("n1", "Contact", field("f1", "_", "Label")))
	assert.Len(t, errs, 1)
	assert.Equal(t, "Field name must contain only letters and numbers", errs[0].Message)

	errs = ValidateNode(formNode("n1", "Contact", field("f1", "  ", "")))
	assert.Equal(t, []string{"n1-field-f1-name", "n1-field-f1-label"}, errorIDs(errs))
	assert.Equal(t, "Field name is required", errs[0].Message)
	assert.Equal(t, "Field label is required", errs[1].Message)

	errs = ValidateNode(formNode("n1", "Contact", field("f1", "email2", "E-mail"), field("f2", "ok", "Ok")))
	assert.Empty(t, errs)
}

func TestValidateFormNode_RequiredParts(t *testing.T) {
	errs := ValidateNode(formNode("n1", "   "))
	assert.Equal(t, []string{"n1-customName", "n1-fields"}, errorIDs(errs))
	assert.Equal(t, "Form name is required", errs[0].Message)
	assert.Equal(t, "fields", errs[1].Field)

	// a form without data is validated as an empty form
	errs = ValidateNode(types.Node{ID: "n2", Type: types.NodeTypeForm})
	assert.Equal(t, []string{"n2-customName", "n2-fields"}, errorIDs(errs))
}

func TestValidateConditionalNode(t *testing.T) {
	n := condNode("c1", "Check")
	assert.Empty(t, ValidateNode(n))

	data := n.Data.(*types.ConditionalData)
	data.Operator = types.OperatorIsEmpty
	data.Value = ""
	assert.Empty(t, ValidateNode(n))

	for _, op := range []types.Operator{types.OperatorEquals, types.OperatorNotEquals,
		types.OperatorGreaterThan, types.OperatorLessThan, types.OperatorContains} {
		data.Operator = op
		errs := ValidateNode(n)
		assert.Equal(t, []string{"c1-value"}, errorIDs(errs), string(op))
	}

	data.Operator = ""
	data.Value = "1"
	data.FieldToEvaluate = " "
	data.CustomName = "Ch"
	errs := ValidateNode(n)
	assert.Equal(t, []string{"c1-customName", "c1-fieldToEvaluate", "c1-operator"}, errorIDs(errs))
	assert.Equal(t, "Condition name must be at least 3 characters", errs[0].Message)

	data.Operator = "between"
	errs = ValidateNode(n)
	assert.Contains(t, errorIDs(errs), "c1-operator")
}

func TestValidateAPINode(t *testing.T) {
	errs := ValidateNode(apiNode("a1", "invalid-url"))
	assert.Equal(t, []string{"a1-url"}, errorIDs(errs))
	assert.Equal(t, "URL must start with http:// or https://", errs[0].Message)

	errs = ValidateNode(apiNode("a1", ""))
	assert.Equal(t, []string{"a1-url"}, errorIDs(errs))
	assert.Equal(t, "URL is required", errs[0].Message)

	errs = ValidateNode(apiNode("a1", "   "))
	assert.Len(t, errs, 1)
	assert.Equal(t, "URL is required", errs[0].Message)

	assert.Empty(t, ValidateNode(apiNode("a1", " https://api.example.com/hook ")))
	assert.Empty(t, ValidateNode(apiNode("a1", "http://localhost:8080")))
	assert.Len(t, ValidateNode(apiNode("a1", "https://")), 1)

	n := apiNode("a1", "https://api.example.com")
	n.Data.(*types.APIData).Method = ""
	errs = ValidateNode(n)
	assert.Equal(t, []string{"a1-method"}, errorIDs(errs))
}

func TestValidateNode_NoRules(t *testing.T) {
	assert.Empty(t, ValidateNode(startNode("s")))
	assert.Empty(t, ValidateNode(endNode("e")))
	assert.Empty(t, ValidateNode(types.Node{ID: "x", Type: "webhook", Data: &types.RawData{Values: types.Data{"url": ""}}}))
}
