// Package lookup holds the record selection rule shared by every collection
// consumer: exact match on an identifier, otherwise the first record.
package lookup

import "strings"

// FindByIDOrFallback returns the first record whose key equals id.
//
// When no record matches, the first record of items is returned and exact is
// false; callers treat that as a degraded but valid outcome. ok is false only
// when items is empty. A blank id never matches and always falls back.
func FindByIDOrFallback[T any](items []T, id string, key func(T) string) (rec T, exact bool, ok bool) {
	if len(items) == 0 {
		return rec, false, false
	}

	id = strings.TrimSpace(id)
	if id != "" && key != nil {
		for _, it := range items {
			if key(it) == id {
				return it, true, true
			}
		}
	}

	return items[0], false, true
}
