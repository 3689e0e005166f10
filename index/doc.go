// Package index implements the ordered multi-value index backing a
// collection: records bucketed by composite key tuple, tuples kept in a
// total order, and a reference-identity map tracking the key each record
// was last indexed under.
package index
