package relq

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator returns the collator used for text ordering.
// Collation is locale-aware; plain byte comparison misorders anything
// outside ASCII.
func NewCollator() *collate.Collator {
	return collate.New(language.English)
}

// SortByCollated returns a new slice sorted by the extracted string
// key using the given collator. The sort is stable.
func SortByCollated[T any](xs []T, key func(T) string, c *collate.Collator) []T {
	out := slices.Clone(xs)
	slices.SortStableFunc(out, func(a, b T) int {
		return c.CompareString(key(a), key(b))
	})
	return out
}
