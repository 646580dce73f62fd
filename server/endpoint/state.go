package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/alextes/calabi/bot"
	apperrors "github.com/alextes/calabi/errors"
	"github.com/alextes/calabi/incident"
)

// StateProvider exposes the bot's current state.
type StateProvider interface {
	Snapshot() bot.Snapshot
}

// TargetsResponse is the /targets body.
type TargetsResponse struct {
	Targets    []incident.Target `json:"targets"`
	LastStatus *bot.StatusReport `json:"last_status,omitempty"`
}

// ExclusionsResponse is the /exclusions body.
type ExclusionsResponse struct {
	Contracts []string `json:"contracts"`
	Days      []string `json:"days"`
}

// Targets returns a handler listing the markets the bot tracks.
func Targets(state StateProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if state == nil {
			RespondWithError(c, errBotUnavailable())
			return
		}
		snap := state.Snapshot()
		if snap.Targets == nil {
			snap.Targets = []incident.Target{}
		}
		RespondOKWithMeta(c, TargetsResponse{
			Targets:    snap.Targets,
			LastStatus: snap.LastStatus,
		}, &Meta{Total: len(snap.Targets)})
	}
}

// Exclusions returns a handler listing contracts already bet on and days
// the bot sits out.
func Exclusions(state StateProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if state == nil {
			RespondWithError(c, errBotUnavailable())
			return
		}
		snap := state.Snapshot()
		RespondOK(c, ExclusionsResponse{
			Contracts: nonNil(snap.Exclusions),
			Days:      nonNil(snap.ExcludedDays),
		})
	}
}

func errBotUnavailable() error {
	return apperrors.New(apperrors.ErrCodeServiceUnavailable, "bot is not running")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
