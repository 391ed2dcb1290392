package vocab

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML vocabulary file at path and returns a validated
// Vocabulary. It is a convenience wrapper around LoadFromReader.
func Load(path string) (Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("vocab: open %q: %w", path, err)
	}
	defer f.Close()

	v, err := LoadFromReader(f)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("vocab: parse %q: %w", path, err)
	}
	return v, nil
}

// LoadFromReader decodes a YAML vocabulary from r and validates the result.
// Useful in tests where vocabularies are constructed from string literals.
func LoadFromReader(r io.Reader) (Vocabulary, error) {
	var v Vocabulary
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil {
		return Vocabulary{}, fmt.Errorf("vocab: decode yaml: %w", err)
	}
	if err := Validate(v); err != nil {
		return Vocabulary{}, err
	}
	return v, nil
}
