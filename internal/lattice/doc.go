// Package lattice builds the candidate grid over a reading sequence
// and finds the most likely segmentation through it.
//
// The grid is a DAG: every contiguous run of readings that the
// language model knows becomes a node carrying that run's unigrams.
// The walker runs a Viterbi pass over the node scores and returns the
// anchored node sequence that partitions the whole reading range.
// Node scores can be pinned by an explicit candidate selection or
// bumped by an override score so that user choices survive re-walks.
package lattice
