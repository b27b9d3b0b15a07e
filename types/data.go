package types

import (
	"github.com/spf13/cast"
)

// Data is a loosely typed bag of values, used for node configurations whose
// shape is not known to the editor.
type Data map[string]any

func (d *Data) Get(key string) (any, bool) {
	v, exists := (*d)[key]
	return v, exists
}

func (d *Data) GetString(key string) (string, bool) {
	v, exists := d.Get(key)
	return cast.ToString(v), exists
}

func (d *Data) GetStringSlice(key string) ([]string, bool) {
	v, exists := d.Get(key)
	return cast.ToStringSlice(v), exists
}

func (d *Data) Set(key string, value any) {
	if *d == nil {
		*d = Data{}
	}
	(*d)[key] = value
}
