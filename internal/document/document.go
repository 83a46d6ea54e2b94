// Package document provides the immutable JSON-like tree value used for
// issue payloads and field-metadata documents. A Document is never mutated
// in place: updates go through WithValueAt, which returns a new tree sharing
// every untouched branch with the original.
package document

import "sort"

// Kind discriminates the node variants of a Document.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Document is a tagged-union tree node. The zero value is null.
type Document struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Document
	m    map[string]Document
}

func Null() Document {
	return Document{kind: KindNull}
}

func String(s string) Document {
	return Document{kind: KindString, str: s}
}

func Number(n float64) Document {
	return Document{kind: KindNumber, num: n}
}

func Bool(b bool) Document {
	return Document{kind: KindBool, b: b}
}

// List builds a list node from the given items. The slice is copied.
func List(items ...Document) Document {
	l := make([]Document, len(items))
	copy(l, items)
	return Document{kind: KindList, list: l}
}

// Map builds a map node from the given entries. The map is copied.
func Map(entries map[string]Document) Document {
	m := make(map[string]Document, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Document{kind: KindMap, m: m}
}

func (d Document) Kind() Kind {
	return d.kind
}

func (d Document) IsNull() bool {
	return d.kind == KindNull
}

func (d Document) AsString() (string, bool) {
	return d.str, d.kind == KindString
}

func (d Document) AsNumber() (float64, bool) {
	return d.num, d.kind == KindNumber
}

func (d Document) AsBool() (bool, bool) {
	return d.b, d.kind == KindBool
}

// Len reports the number of children of a list or map node, 0 otherwise.
func (d Document) Len() int {
	switch d.kind {
	case KindList:
		return len(d.list)
	case KindMap:
		return len(d.m)
	default:
		return 0
	}
}

// Items returns a copy of the list children. Nil for non-list nodes.
func (d Document) Items() []Document {
	if d.kind != KindList {
		return nil
	}
	items := make([]Document, len(d.list))
	copy(items, d.list)
	return items
}

// Keys returns the map keys in sorted order. Sorting gives every caller the
// same deterministic traversal; maps carry no meaningful insertion order.
func (d Document) Keys() []string {
	if d.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(d.m))
	for k := range d.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d Document) Value(key string) (Document, bool) {
	if d.kind != KindMap {
		return Document{}, false
	}
	v, ok := d.m[key]
	return v, ok
}

func (d Document) Index(i int) (Document, bool) {
	if d.kind != KindList || i < 0 || i >= len(d.list) {
		return Document{}, false
	}
	return d.list[i], true
}

// Equal reports deep structural equality.
func (d Document) Equal(other Document) bool {
	if d.kind != other.kind {
		return false
	}
	switch d.kind {
	case KindNull:
		return true
	case KindString:
		return d.str == other.str
	case KindNumber:
		return d.num == other.num
	case KindBool:
		return d.b == other.b
	case KindList:
		if len(d.list) != len(other.list) {
			return false
		}
		for i := range d.list {
			if !d.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(d.m) != len(other.m) {
			return false
		}
		for k, v := range d.m {
			ov, ok := other.m[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}
