// Package mandarin implements Bopomofo (Zhuyin) syllable assembly.
//
// A syllable is packed into a uint16 with four fields: an initial
// consonant, a middle vowel, a final vowel, and a tone marker. The
// packed form gives every syllable a stable "absolute order", and the
// two-character string derived from that order is the canonical lookup
// key used by the language model.
//
// The package also provides the keyboard layouts that translate key
// sequences into syllables (Standard, ETen, Hsu, ETen26, IBM, and a
// Hanyu Pinyin romanization), plus ReadingBuffer, the incremental
// per-syllable assembler driven by the key handler.
package mandarin
