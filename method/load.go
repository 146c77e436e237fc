// SPDX-License-Identifier: MIT

package method

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a method from a YAML file.
func Load(path string) (*Method, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("method: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("method: %s: %w", path, err)
	}

	return m, nil
}

// Decode reads one YAML method document. Unknown keys are rejected.
func Decode(r io.Reader) (*Method, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Method
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("method: decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Encode writes m as YAML with two-space indentation.
func Encode(w io.Writer, m *Method) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("method: encode: %w", err)
	}

	return enc.Close()
}
