package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thomas-vilte/matejira/internal/regex"
)

// InvalidPathError reports a path containing characters outside the
// permitted set. Such paths are rejected before any mutation is attempted,
// since a malformed path could be misinterpreted as a structural edit.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid document path %q: only [a-zA-Z0-9._-] characters are allowed", e.Path)
}

// ValidatePath checks a canonical path against the permitted character set.
func ValidatePath(path string) error {
	if !regex.DocumentPath.MatchString(path) {
		return &InvalidPathError{Path: path}
	}
	return nil
}

// WalkStrings visits every string leaf in deterministic depth-first order:
// map keys sorted, list items in declaration order. The empty path denotes
// a root-level scalar.
func (d Document) WalkStrings(fn func(path, value string)) {
	d.walkStrings("", fn)
}

func (d Document) walkStrings(prefix string, fn func(path, value string)) {
	switch d.kind {
	case KindString:
		fn(prefix, d.str)
	case KindList:
		for i, item := range d.list {
			item.walkStrings(joinPath(prefix, strconv.Itoa(i)), fn)
		}
	case KindMap:
		for _, k := range d.Keys() {
			d.m[k].walkStrings(joinPath(prefix, k), fn)
		}
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// ValueAt returns the node at a canonical path, if present. The empty path
// addresses the root.
func (d Document) ValueAt(path string) (Document, bool) {
	if path == "" {
		return d, true
	}
	current := d
	for _, seg := range strings.Split(path, ".") {
		switch current.kind {
		case KindMap:
			child, ok := current.m[seg]
			if !ok {
				return Document{}, false
			}
			current = child
		case KindList:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(current.list) {
				return Document{}, false
			}
			current = current.list[idx]
		default:
			return Document{}, false
		}
	}
	return current, true
}

// WithValueAt returns a new Document with the node at path replaced by
// value. The path must already exist; intermediate nodes are copied, all
// untouched siblings are shared, and the receiver is left unchanged. The
// empty path replaces the root.
func (d Document) WithValueAt(path string, value Document) (Document, error) {
	if path == "" {
		return value, nil
	}
	if err := ValidatePath(path); err != nil {
		return Document{}, err
	}
	return d.withValueAt(strings.Split(path, "."), path, value)
}

func (d Document) withValueAt(segments []string, full string, value Document) (Document, error) {
	if len(segments) == 0 {
		return value, nil
	}
	seg := segments[0]
	switch d.kind {
	case KindMap:
		child, ok := d.m[seg]
		if !ok {
			return Document{}, fmt.Errorf("document: no value at %q: missing key %q", full, seg)
		}
		replaced, err := child.withValueAt(segments[1:], full, value)
		if err != nil {
			return Document{}, err
		}
		m := make(map[string]Document, len(d.m))
		for k, v := range d.m {
			m[k] = v
		}
		m[seg] = replaced
		return Document{kind: KindMap, m: m}, nil
	case KindList:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(d.list) {
			return Document{}, fmt.Errorf("document: no value at %q: bad list index %q", full, seg)
		}
		replaced, err := d.list[idx].withValueAt(segments[1:], full, value)
		if err != nil {
			return Document{}, err
		}
		list := make([]Document, len(d.list))
		copy(list, d.list)
		list[idx] = replaced
		return Document{kind: KindList, list: list}, nil
	default:
		return Document{}, fmt.Errorf("document: no value at %q: segment %q descends into a %s", full, seg, d.kind)
	}
}
