// Package diff computes field-level and array-level changesets between two
// snapshots of persisted rows. All functions are pure and never mutate inputs.
package diff

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is a column-keyed view of one row.
type Snapshot = map[string]any

type Options struct {
	// DateFields are normalized to a canonical UTC string before comparison.
	// Accepts time.Time, *time.Time and RFC 3339 strings.
	DateFields []string
	// ObjectFields are compared structurally through their JSON form.
	ObjectFields []string
	// Ignore lists keys that are never compared.
	Ignore []string
}

// Objects returns the keys whose values differ between existing and candidate,
// mapped to the candidate's value. Keys present on only one side count as
// different; a key missing from candidate maps to nil. The result is empty,
// never nil, when nothing differs.
func Objects(existing, candidate Snapshot, opts Options) Snapshot {
	ignore := toSet(opts.Ignore)
	dates := toSet(opts.DateFields)
	objects := toSet(opts.ObjectFields)

	out := Snapshot{}
	for _, key := range unionKeys(existing, candidate) {
		if _, skip := ignore[key]; skip {
			continue
		}
		oldVal, oldOK := existing[key]
		newVal, newOK := candidate[key]
		if oldOK != newOK {
			out[key] = newVal
			continue
		}
		var same bool
		switch {
		case has(dates, key):
			same = normalizeDate(oldVal) == normalizeDate(newVal)
		case has(objects, key):
			same = jsonEqual(oldVal, newVal)
		default:
			same = valuesEqual(oldVal, newVal)
		}
		if !same {
			out[key] = newVal
		}
	}
	return out
}

// Changed reports whether Objects would return a non-empty result.
func Changed(existing, candidate Snapshot, opts Options) bool {
	return len(Objects(existing, candidate, opts)) > 0
}

type ArrayOptions struct {
	Options
	// IDField names the identity key; defaults to "id".
	IDField string
}

type Modification struct {
	ID      any
	Changes Snapshot
}

type ArrayDiff struct {
	Added    []Snapshot
	Deleted  []Snapshot
	Modified []Modification
}

func (d ArrayDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Deleted) == 0 && len(d.Modified) == 0
}

// ArrayEntities matches entries by identity, independent of order. Entries of
// newArr without a match (or without an identity) are added, unmatched entries
// of oldArr are deleted, and matched pairs with a non-empty Objects diff are
// modified. Output order follows input order.
func ArrayEntities(oldArr, newArr []Snapshot, opts ArrayOptions) ArrayDiff {
	idField := opts.IDField
	if idField == "" {
		idField = "id"
	}

	oldByID := make(map[string]Snapshot, len(oldArr))
	for _, row := range oldArr {
		if key, ok := identity(row, idField); ok {
			oldByID[key] = row
		}
	}
	seen := make(map[string]struct{}, len(newArr))

	out := ArrayDiff{}
	for _, row := range newArr {
		key, ok := identity(row, idField)
		if !ok {
			out.Added = append(out.Added, row)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		prev, matched := oldByID[key]
		if !matched {
			out.Added = append(out.Added, row)
			continue
		}
		if changes := Objects(prev, row, opts.Options); len(changes) > 0 {
			out.Modified = append(out.Modified, Modification{ID: row[idField], Changes: changes})
		}
	}
	for _, row := range oldArr {
		key, ok := identity(row, idField)
		if !ok {
			continue
		}
		if _, kept := seen[key]; !kept {
			out.Deleted = append(out.Deleted, row)
			seen[key] = struct{}{}
		}
	}
	return out
}

func identity(row Snapshot, idField string) (string, bool) {
	v, ok := row[idField]
	if !ok {
		return "", false
	}
	v = deref(v)
	if v == nil {
		return "", false
	}
	key := fmt.Sprint(v)
	return key, key != ""
}

func valuesEqual(a, b any) bool {
	a, b = deref(a), deref(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case decimal.Decimal:
		bv, ok := b.(decimal.Decimal)
		return ok && av.Equal(bv)
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}
	return reflect.DeepEqual(a, b)
}

func normalizeDate(v any) string {
	switch t := deref(v).(type) {
	case nil:
		return ""
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(time.RFC3339Nano)
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC().Format(time.RFC3339Nano)
		}
		return t
	default:
		return fmt.Sprint(t)
	}
}

func jsonEqual(a, b any) bool {
	rawA, errA := json.Marshal(deref(a))
	rawB, errB := json.Marshal(deref(b))
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	var o1, o2 any
	if err := json.Unmarshal(rawA, &o1); err != nil {
		return false
	}
	if err := json.Unmarshal(rawB, &o2); err != nil {
		return false
	}
	return reflect.DeepEqual(o1, o2)
}

func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

func unionKeys(a, b Snapshot) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func toSet(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
