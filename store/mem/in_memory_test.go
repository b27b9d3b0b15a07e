package mem

import (
	"context"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	value, err := s.Get(ctx, "/autosave/", "key1")
	assert.Nil(t, err)
	assert.Nil(t, value)

	assert.Nil(t, s.Set(ctx, "/autosave/", "key1", []byte("value1")))
	value, err = s.Get(ctx, "/autosave/", "key1")
	assert.Nil(t, err)
	assert.Equal(t, []byte("value1"), value)

	value, err = s.Get(ctx, "/other/", "key1")
	assert.Nil(t, err)
	assert.Nil(t, value)

	assert.Nil(t, s.Remove(ctx, "/autosave/", "key1"))
	assert.Nil(t, s.Remove(ctx, "/autosave/", "key1"))
	value, err = s.Get(ctx, "/autosave/", "key1")
	assert.Nil(t, err)
	assert.Nil(t, value)
}

func TestMemStoreWithErrHandler(t *testing.T) {
	ctx := context.Background()
	var failing bool
	s := NewMemStoreWithErrHandler(func() error {
		if failing {
			return errors.New("quota exceeded")
		}
		return nil
	})

	assert.Nil(t, s.Set(ctx, "/autosave/", "key1", []byte("value1")))

	failing = true
	assert.NotNil(t, s.Set(ctx, "/autosave/", "key1", []byte("value2")))
	_, err := s.Get(ctx, "/autosave/", "key1")
	assert.NotNil(t, err)

	// a failed write leaves the previous value in place
	failing = false
	value, err := s.Get(ctx, "/autosave/", "key1")
	assert.Nil(t, err)
	assert.Equal(t, []byte("value1"), value)
	assert.Contains(t, s.(*memStore).String(), "/autosave/|key1: value1")
}
