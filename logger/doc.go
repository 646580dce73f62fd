// Package logger provides structured logging for calabi using zerolog.
//
// Output is human-readable console text by default. Setting LOG_JSON=true
// (or logging.json in the config file) switches to one JSON object per line,
// which is what the container deployment uses.
//
// # Usage
//
//	log := logger.WithComponent("scanner")
//	log.Debug("GitHub is working fine", logger.Fields("indicator", "none"))
package logger
