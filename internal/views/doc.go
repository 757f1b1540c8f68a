// Package views derives panel-ready slices from a unified snapshot.
//
// Every function here is a pure query: it takes a snapshot (or a slice of
// entities) and returns filtered or matched results without touching any
// shared state. Filters preserve backend ordering, so two panels filtering
// the same snapshot agree on row order. All queries are nil-safe; a nil
// snapshot yields empty results, never a panic.
//
// The one non-trivial query is RecommendationsForConvoy. Recommendations
// carry an optional convoy_id foreign key; when present it is authoritative
// and no text matching happens. Legacy recommendations without the key fall
// back to name matching against the recommendation text: exact convoy_name
// match first, then case-insensitive substring or small-edit-distance
// matching (levenshtein, distance ≤ 3). A fallback match that fits more
// than one convoy equally well is ambiguous and attaches to neither.
package views
