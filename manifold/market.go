package manifold

import (
	"slices"
	"strings"

	"github.com/alextes/calabi/incident"
)

const (
	anyIncidentQuestion = "Will GitHub have any incident"
	redIncidentQuestion = "Will GitHub have a red incident"
)

// Market is the subset of a Manifold market calabi reads.
type Market struct {
	ID        string `json:"id"`
	CreatorID string `json:"creatorId"`
	Question  string `json:"question"`
	URL       string `json:"url,omitempty"`
}

// Classifier recognizes incident markets from trusted creators.
type Classifier struct {
	trusted []string
}

// NewClassifier trusts the given creator ids, or DefaultTrustedCreators when
// none are given.
func NewClassifier(trusted ...string) *Classifier {
	if len(trusted) == 0 {
		trusted = DefaultTrustedCreators
	}
	return &Classifier{trusted: slices.Clone(trusted)}
}

func (c *Classifier) isTrusted(m Market) bool {
	return slices.Contains(c.trusted, m.CreatorID)
}

// IsAnyIncidentMarket reports whether m asks whether GitHub has any incident.
func (c *Classifier) IsAnyIncidentMarket(m Market) bool {
	return c.isTrusted(m) && strings.Contains(m.Question, anyIncidentQuestion)
}

// IsRedIncidentMarket reports whether m asks whether GitHub has a red incident.
func (c *Classifier) IsRedIncidentMarket(m Market) bool {
	return c.isTrusted(m) && strings.Contains(m.Question, redIncidentQuestion)
}

// Classify returns the incident type m asks about.
func (c *Classifier) Classify(m Market) (incident.Type, bool) {
	switch {
	case c.IsAnyIncidentMarket(m):
		return incident.Any, true
	case c.IsRedIncidentMarket(m):
		return incident.Red, true
	default:
		return 0, false
	}
}
