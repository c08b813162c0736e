package lm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"bopomofo/internal/lattice"
)

// Dictionary is the static unigram source. Keys are canonical
// (absolute-order) reading keys; each key maps to its phrases in file
// order. The loader does not sort them; grid nodes order their
// unigrams by score.
type Dictionary struct {
	unigrams map[string][]lattice.Unigram
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{unigrams: make(map[string][]lattice.Unigram)}
}

// Add appends an entry under a canonical key.
func (d *Dictionary) Add(key, value string, score float64) {
	d.unigrams[key] = append(d.unigrams[key], lattice.Unigram{Key: key, Value: value, Score: score})
}

// UnigramsForKey returns the entries for a canonical key.
func (d *Dictionary) UnigramsForKey(key string) []lattice.Unigram {
	return d.unigrams[key]
}

// HasUnigramsForKey reports whether the key has any entry.
func (d *Dictionary) HasUnigramsForKey(key string) bool {
	return len(d.unigrams[key]) > 0
}

// LoadDictionaryFile reads a dictionary from the on-disk format: one
// mapping per line, "key value score value score ...", with "#"
// starting a comment. Malformed pairs are skipped with a warning.
func LoadDictionaryFile(path string, logger zerolog.Logger) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()
	return ParseDictionary(f, logger)
}

// ParseDictionary reads the dictionary format from a stream.
func ParseDictionary(r io.Reader, logger zerolog.Logger) (*Dictionary, error) {
	d := NewDictionary()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 || len(fields)%2 == 0 {
			logger.Warn().Int("line", lineNo).Msg("skipping malformed dictionary line")
			continue
		}

		key := fields[0]
		for i := 1; i+1 < len(fields); i += 2 {
			score, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				logger.Warn().Int("line", lineNo).Str("score", fields[i+1]).
					Msg("skipping entry with unparseable score")
				continue
			}
			d.Add(key, fields[i], score)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return d, nil
}
