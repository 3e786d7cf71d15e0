package slushpool

import (
	"bytes"
	"encoding/json"

	"github.com/iancoleman/orderedmap"
)

// KeyedCollection is a JSON object whose keys carry data (block heights,
// worker ids). Keys are kept in the order they appear in the source document;
// a key repeated in the document is listed once, at its first position, with
// the last value seen for it.
type KeyedCollection[T any] struct {
	keys   []string
	values map[string]T
}

// NewKeyedCollection builds a collection from keys in the given order.
func NewKeyedCollection[T any](keys []string, values map[string]T) KeyedCollection[T] {
	c := KeyedCollection[T]{values: make(map[string]T, len(keys))}
	for _, k := range keys {
		v, ok := values[k]
		if !ok {
			continue
		}
		if _, dup := c.values[k]; !dup {
			c.keys = append(c.keys, k)
		}
		c.values[k] = v
	}
	return c
}

// Keys returns the keys in document order.
func (c KeyedCollection[T]) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of distinct keys.
func (c KeyedCollection[T]) Len() int { return len(c.keys) }

// Get returns the value stored under key.
func (c KeyedCollection[T]) Get(key string) (T, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Each visits entries in document order and stops at the first error.
func (c KeyedCollection[T]) Each(fn func(key string, value T) error) error {
	for _, k := range c.keys {
		if err := fn(k, c.values[k]); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. null and an empty array both
// decode to an empty collection.
func (c *KeyedCollection[T]) UnmarshalJSON(data []byte) error {
	if isEmptyCollection(data) {
		*c = KeyedCollection[T]{}
		return nil
	}

	values := make(map[string]T)
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	order := orderedmap.New()
	if err := order.UnmarshalJSON(data); err != nil {
		return err
	}

	*c = NewKeyedCollection(order.Keys(), values)
	return nil
}

func isEmptyCollection(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return false
	}
	return len(bytes.TrimSpace(trimmed[1:len(trimmed)-1])) == 0
}

// MarshalJSON implements json.Marshaler and keeps document order.
func (c KeyedCollection[T]) MarshalJSON() ([]byte, error) {
	o := orderedmap.New()
	o.SetEscapeHTML(false)
	for _, k := range c.keys {
		o.Set(k, c.values[k])
	}
	return json.Marshal(o)
}
