package util

import "log"

// Logging switches debug output on.  The command's -v flag sets it.
//
// Logf is silent unless Logging is true.  Warnf always logs.
var Logging = false

// Logf calls log.Printf if Logging is true.
func Logf(format string, args ...interface{}) {
	if !Logging {
		return
	}
	log.Printf(format, args...)
}

// Warnf logs a line starting with "warning: ".
//
// Warnings report conditions that are surprising but not errors,
// such as an unknown type in a spec or a ref that is defined twice.
func Warnf(format string, args ...interface{}) {
	log.Printf("warning: "+format, args...)
}
