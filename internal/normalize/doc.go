// Package normalize converts raw, loosely-shaped league JSON into the
// canonical domain.SeasonRecord. Ten-plus seasons of format drift mean any
// list-shaped field may arrive as a JSON array or an object of entries, and
// most scalar fields have accumulated alias names. All of that tolerance
// lives here, behind a small ordered-document decode, so the rest of the
// codebase only ever sees the canonical shape.
package normalize

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Object is a JSON object with its key order preserved. Object-of-entries
// list encodings rely on that order.
type Object struct {
	keys   []string
	fields map[string]any
}

// Keys returns the object's keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Field returns the raw value for a key.
func (o *Object) Field(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether a key exists, even with a null value.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.fields[key]
	return ok
}

// Parse decodes raw JSON into an ordered value tree: *Object, []any, string,
// float64, bool, or nil.
func Parse(data []byte) (any, error) {
	iter := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowIterator(data)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnIterator(iter)

	v := parseValue(iter)
	if iter.Error != nil {
		return nil, fmt.Errorf("parse document: %w", iter.Error)
	}
	return v, nil
}

// ParseObject decodes raw JSON that must be a top-level object.
func ParseObject(data []byte) (*Object, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("parse document: expected JSON object, got %T", v)
	}
	return obj, nil
}

func parseValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		obj := &Object{fields: make(map[string]any)}
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			if _, seen := obj.fields[key]; !seen {
				obj.keys = append(obj.keys, key)
			}
			obj.fields[key] = parseValue(it)
			return true
		})
		return obj
	case jsoniter.ArrayValue:
		var arr []any
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			arr = append(arr, parseValue(it))
			return true
		})
		return arr
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadFloat64()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	default:
		iter.Skip()
		return nil
	}
}

// Plain converts an ordered value tree back into plain Go maps and slices
// for storage in loosely-typed places like SeasonRecord.Supplemental.
func Plain(v any) any {
	switch t := v.(type) {
	case *Object:
		m := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			m[k] = Plain(t.fields[k])
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	default:
		return v
	}
}
