// SPDX-License-Identifier: MIT

package method

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role is the physical kind of a detector.
type Role int

const (
	// RoleUnknown is the zero value and never valid in a method.
	RoleUnknown Role = iota
	// Faraday is a Faraday cup collector.
	Faraday
	// IonCounter is an ion-counting (photomultiplier / Daly) detector.
	IonCounter
)

const (
	roleFaraday    = "faraday"
	roleIonCounter = "ion_counter"
)

func (r Role) String() string {
	switch r {
	case Faraday:
		return roleFaraday
	case IonCounter:
		return roleIonCounter
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole accepts "faraday", "ion_counter", "ioncounter" or "pm" (any case).
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case roleFaraday:
		return Faraday, nil
	case roleIonCounter, "ioncounter", "pm":
		return IonCounter, nil
	}

	return RoleUnknown, fmt.Errorf("%q: %w", s, ErrUnknownRole)
}

// MarshalYAML writes the role by name.
func (r Role) MarshalYAML() (interface{}, error) {
	if r != Faraday && r != IonCounter {
		return nil, fmt.Errorf("%s: %w", r, ErrUnknownRole)
	}

	return r.String(), nil
}

// UnmarshalYAML reads the role by name.
func (r *Role) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseRole(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*r = v

	return nil
}
