// Package lm supplies the unigrams the grid is built from.
//
// Three sources compose by delegation: a static dictionary loaded
// from the "key value score value score ..." file format, an optional
// user-phrase model (in memory, or backed by the SQLite store), and
// optional character converters applied on the way out (display) and
// on the way in (user phrases). Model merges them behind the two-call
// read surface the lattice consumes.
//
// Lookup keys are canonical: every Bopomofo segment of a user-level
// reading is replaced by its two-character absolute-order string.
// Reserved segments starting with "_" pass through verbatim, and the
// literal "_-" never acts as a segment separator.
package lm
