// Package relq provides stateless relational operators over in-memory
// ordered sequences.
//
// Every operator is a pure function: the same inputs produce the same
// output sequence, input slices are never mutated, and empty inputs
// degrade to empty outputs rather than errors. Output order is
// deterministic and documented per operator, which makes results
// suitable for golden snapshot comparison.
//
// The operators mirror the relational vocabulary of a query language:
//
//   - Filter: order-preserving selection
//   - SortBy / SortByCollated: stable ordering
//   - KeySet / In: membership subquery
//   - Map: projection to lightweight records
//   - Join: inner equi-join
//   - RangeJoin: join on an inclusive [low, high] band
//   - GroupBy + Count/Sum/Avg/Min/Max: grouped aggregation
//   - FilterByGroupStat: correlated per-row filter against a group scalar
//
// Absent optional fields are modeled with Option, never with sentinel
// values, so "absent" can never collide with a legitimate zero.
package relq
