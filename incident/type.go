package incident

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/alextes/calabi/errors"
)

// Type is the kind of incident a market asks about.
type Type int

const (
	// Any is any GitHub incident (status indicator minor or major).
	Any Type = iota
	// Red is a critical GitHub incident.
	Red
)

// ParseIndicator maps a GitHub status indicator to an incident Type.
// "none" is not an incident and fails like any other unknown value.
func ParseIndicator(indicator string) (Type, error) {
	switch indicator {
	case "minor", "major":
		return Any, nil
	case "critical":
		return Red, nil
	default:
		return 0, apperrors.UnknownIndicator(indicator)
	}
}

// ParseType parses the String form of a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "any":
		return Any, nil
	case "red":
		return Red, nil
	default:
		return 0, fmt.Errorf("unknown market type: %s", s)
	}
}

func (t Type) String() string {
	switch t {
	case Any:
		return "any"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Satisfies reports whether a live incident of type t resolves a market of
// type market YES. A red incident is also "any" incident.
func (t Type) Satisfies(market Type) bool {
	switch market {
	case Any:
		return t == Any || t == Red
	case Red:
		return t == Red
	default:
		return false
	}
}

// MarshalJSON encodes the type as "any" or "red".
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// MarshalYAML encodes the type as "any" or "red".
func (t Type) MarshalYAML() (any, error) {
	return t.String(), nil
}

// Outcome is the side of a binary market.
type Outcome string

const (
	Yes Outcome = "YES"
	No  Outcome = "NO"
)

// Valid reports whether o is YES or NO.
func (o Outcome) Valid() bool {
	return o == Yes || o == No
}
