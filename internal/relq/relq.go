package relq

import (
	"cmp"
	"slices"
)

// Filter returns the subsequence of xs for which pred holds,
// preserving input order. An empty or nil input yields a nil slice.
func Filter[T any](xs []T, pred func(T) bool) []T {
	var out []T
	for _, x := range xs {
		if pred(x) {
			out = append(out, x)
		}
	}
	return out
}

// SortBy returns a new slice sorted by the extracted key.
// The sort is stable: rows with equal keys keep their input order.
// When desc is true the order is reversed (non-increasing keys).
func SortBy[T any, K cmp.Ordered](xs []T, key func(T) K, desc bool) []T {
	out := slices.Clone(xs)
	slices.SortStableFunc(out, func(a, b T) int {
		c := cmp.Compare(key(a), key(b))
		if desc {
			return -c
		}
		return c
	})
	return out
}

// KeySet materializes the set of keys extracted from xs.
// Used to build the key set for a membership subquery (In).
func KeySet[T any, K comparable](xs []T, key func(T) K) map[K]struct{} {
	set := make(map[K]struct{}, len(xs))
	for _, x := range xs {
		set[key(x)] = struct{}{}
	}
	return set
}

// In returns the rows of xs whose key is a member of keys,
// preserving input order.
func In[T any, K comparable](xs []T, key func(T) K, keys map[K]struct{}) []T {
	return Filter(xs, func(x T) bool {
		_, ok := keys[key(x)]
		return ok
	})
}

// Map projects each row of xs through f.
func Map[T, U any](xs []T, f func(T) U) []U {
	if len(xs) == 0 {
		return nil
	}
	out := make([]U, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

// Join performs an inner equi-join of ls and rs on key equality.
// Every matching (l, r) pair produces one combined row; left rows with
// no match on the right (and vice versa) are dropped. Output order is
// left row order, then right row order within a left row.
func Join[L, R any, K comparable, O any](ls []L, rs []R, lkey func(L) K, rkey func(R) K, combine func(L, R) O) []O {
	if len(ls) == 0 || len(rs) == 0 {
		return nil
	}
	// Index the right side once, preserving right-side order per key.
	idx := make(map[K][]R, len(rs))
	for _, r := range rs {
		k := rkey(r)
		idx[k] = append(idx[k], r)
	}
	var out []O
	for _, l := range ls {
		for _, r := range idx[lkey(l)] {
			out = append(out, combine(l, r))
		}
	}
	return out
}

// RangeJoin joins ls and rs on an arbitrary range predicate.
// Each (l, r) pair with within(l, r) true produces one combined row;
// a left row matching zero or multiple right rows yields zero or
// multiple output rows respectively. No de-duplication is performed.
// Output order is left row order, then right row order.
func RangeJoin[L, R, O any](ls []L, rs []R, within func(L, R) bool, combine func(L, R) O) []O {
	var out []O
	for _, l := range ls {
		for _, r := range rs {
			if within(l, r) {
				out = append(out, combine(l, r))
			}
		}
	}
	return out
}

// Group is one partition produced by GroupBy.
type Group[K comparable, T any] struct {
	Key  K
	Rows []T
}

// GroupBy partitions xs by key equality. Groups appear in order of the
// first occurrence of each key, and rows within a group keep their
// input order.
func GroupBy[T any, K comparable](xs []T, key func(T) K) []Group[K, T] {
	var groups []Group[K, T]
	index := make(map[K]int)
	for _, x := range xs {
		k := key(x)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, x)
	}
	return groups
}

// Count returns the number of rows in xs.
func Count[T any](xs []T) int {
	return len(xs)
}

// Sum totals the selected field across xs.
func Sum[T any](xs []T, field func(T) float64) float64 {
	var total float64
	for _, x := range xs {
		total += field(x)
	}
	return total
}

// Avg returns the arithmetic mean of the selected field using
// floating-point division. An empty input yields 0.
func Avg[T any](xs []T, field func(T) float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return Sum(xs, field) / float64(len(xs))
}

// Min returns the smallest selected key and whether xs was non-empty.
func Min[T any, K cmp.Ordered](xs []T, key func(T) K) (K, bool) {
	var best K
	if len(xs) == 0 {
		return best, false
	}
	best = key(xs[0])
	for _, x := range xs[1:] {
		if k := key(x); k < best {
			best = k
		}
	}
	return best, true
}

// Max returns the largest selected key and whether xs was non-empty.
func Max[T any, K cmp.Ordered](xs []T, key func(T) K) (K, bool) {
	var best K
	if len(xs) == 0 {
		return best, false
	}
	best = key(xs[0])
	for _, x := range xs[1:] {
		if k := key(x); k > best {
			best = k
		}
	}
	return best, true
}

// FilterByGroupStat is a correlated filter: for each row it compares
// the row against a scalar computed over all rows sharing the row's
// group key. The scalar is computed once per distinct key (the key is
// invariant within a group, so caching is behaviorally equivalent to
// re-evaluating the subquery per row). Input order is preserved.
func FilterByGroupStat[T any, K comparable](xs []T, key func(T) K, stat func([]T) float64, keep func(T, float64) bool) []T {
	stats := make(map[K]float64)
	for _, g := range GroupBy(xs, key) {
		stats[g.Key] = stat(g.Rows)
	}
	return Filter(xs, func(x T) bool {
		return keep(x, stats[key(x)])
	})
}
