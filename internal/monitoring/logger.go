// Package monitoring carries the converter's redirectable diagnostic logger.
// Decode-time anomalies (skipped records, framing fallbacks) are reported
// here rather than returned, since they never abort a file.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf;
// batch drivers and tests may redirect or mute it via SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
