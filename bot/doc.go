// Package bot runs calabi's two loops. The Updater refreshes the set of
// incident markets from Manifold; the Scanner polls GitHub's status and,
// while an incident is live, bets YES on every market it settles today.
//
// A contract is bet on once. With a Ledger the set of bet-on contracts
// survives restarts.
package bot
