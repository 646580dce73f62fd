package testutil

import (
	"fmt"
	"time"

	"github.com/alextes/calabi/incident"
	"github.com/alextes/calabi/manifold"
)

// IncidentQuestion renders a market question for an incident of type kind
// on day. The year is included when withYear is set.
func IncidentQuestion(kind incident.Type, day time.Time, withYear bool) string {
	subject := "any incident"
	if kind == incident.Red {
		subject = "a red incident"
	}
	date := fmt.Sprintf("%s %d", day.Month(), day.Day())
	if withYear {
		date = fmt.Sprintf("%s, %d", date, day.Year())
	}
	return fmt.Sprintf("Will GitHub have %s on %s?", subject, date)
}

// IncidentMarket is a market from the first trusted creator.
func IncidentMarket(id string, kind incident.Type, day time.Time, withYear bool) manifold.Market {
	return manifold.Market{
		ID:        id,
		CreatorID: manifold.DefaultTrustedCreators[0],
		Question:  IncidentQuestion(kind, day, withYear),
	}
}
