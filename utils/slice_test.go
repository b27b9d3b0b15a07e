package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueSlice(t *testing.T) {
	assert.Equal(t, []int{1}, UniqueSlice([]int{1}))
	assert.Equal(t, []int{1}, UniqueSlice([]int{1, 1, 1}))
	assert.Equal(t, []int{1, 2}, UniqueSlice([]int{1, 1, 2}))
	assert.Equal(t, []int{1, 2, 3}, UniqueSlice([]int{1, 2, 2, 3, 3}))
	assert.Equal(t, []int{3, 1, 2, 4}, UniqueSlice([]int{3, 1, 2, 2, 3, 3, 1, 4}))
	assert.Equal(t, []string{"b", "a"}, UniqueSlice([]string{"b", "a", "b"}))
	assert.Empty(t, UniqueSlice([]string{}))
}

func TestSerialize(t *testing.T) {
	b, err := Serialize(map[string]any{"b": 1, "a": []string{"x"}})
	assert.Nil(t, err)
	assert.Equal(t, `{"a":["x"],"b":1}`, string(b))

	var v map[string]any
	assert.Nil(t, Unserialize(b, &v))
	assert.Equal(t, float64(1), v["b"])
	assert.NotNil(t, Unserialize([]byte("{"), &v))
}
