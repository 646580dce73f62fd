// Package incident models the GitHub incident markets calabi bets on: the
// kind of incident a market asks about, the date it resolves on, and the
// sets of targets and exclusions the bot keeps while it runs.
package incident
