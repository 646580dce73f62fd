// Package manifold is a client for the parts of the Manifold Markets API
// calabi uses: listing markets and placing bets. It also decides which
// markets are GitHub incident markets worth tracking.
package manifold
