// Package util holds small helpers with no better home.
package util
