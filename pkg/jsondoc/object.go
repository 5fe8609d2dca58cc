package jsondoc

import (
	"math"
)

// Object is a JSON object that keeps its members in insertion order.
// The zero value is an empty object ready to use.
type Object struct {
	path   string
	keys   []string
	values map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{}
}

// Set stores v under key. Replacing an existing key keeps its position.
func (o *Object) Set(key string, v any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the member names in order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.keys)
}

// Path returns the key path of the object within its document.
func (o *Object) Path() string {
	return o.path
}

// At returns a view of o located at path. The members are shared.
func (o *Object) At(path string) *Object {
	c := *o
	c.path = path
	return &c
}

// KeyPath returns the path of the member key.
func (o *Object) KeyPath(key string) string {
	return JoinPath(o.path, key)
}

func (o *Object) require(key string) (any, error) {
	v, ok := o.values[key]
	if !ok {
		return nil, Malformed(o.KeyPath(key), "required key is missing")
	}
	return v, nil
}

// Float returns the number stored under key.
func (o *Object) Float(key string) (float64, error) {
	v, err := o.require(key)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, Malformed(o.KeyPath(key), "expected number, got %s", KindOf(v))
	}
	return f, nil
}

// Int32 returns the integral number stored under key.
func (o *Object) Int32(key string) (int32, error) {
	f, err := o.Float(key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, Malformed(o.KeyPath(key), "expected 32-bit integer, got %v", f)
	}
	return int32(f), nil
}

// String returns the string stored under key.
func (o *Object) String(key string) (string, error) {
	v, err := o.require(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", Malformed(o.KeyPath(key), "expected string, got %s", KindOf(v))
	}
	return s, nil
}

// StringOr returns the string stored under key, or def when key is absent.
// A present value of another kind is still an error.
func (o *Object) StringOr(key, def string) (string, error) {
	if !o.Has(key) {
		return def, nil
	}
	return o.String(key)
}

// Object returns the object stored under key.
func (o *Object) Object(key string) (*Object, error) {
	v, err := o.require(key)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, Malformed(o.KeyPath(key), "expected object, got %s", KindOf(v))
	}
	return obj.At(o.KeyPath(key)), nil
}

// Array returns the array stored under key.
func (o *Object) Array(key string) ([]any, error) {
	v, err := o.require(key)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, Malformed(o.KeyPath(key), "expected array, got %s", KindOf(v))
	}
	return arr, nil
}

// Objects returns the array of objects stored under key.
func (o *Object) Objects(key string) ([]*Object, error) {
	arr, err := o.Array(key)
	if err != nil {
		return nil, err
	}
	path := o.KeyPath(key)
	out := make([]*Object, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(*Object)
		if !ok {
			return nil, Malformed(IndexPath(path, i), "expected object, got %s", KindOf(el))
		}
		out = append(out, obj.At(IndexPath(path, i)))
	}
	return out, nil
}

// OptionalObjects is Objects for keys that may be absent; an absent key
// yields an empty slice.
func (o *Object) OptionalObjects(key string) ([]*Object, error) {
	if !o.Has(key) {
		return nil, nil
	}
	return o.Objects(key)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
