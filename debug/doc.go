// Package debug holds process-wide debug switches read from the
// environment:
//
//	KEYPATH_DEBUG_RESOLVE  log every key-path resolution step
//	KEYPATH_DEBUG_CURSOR   log cursor reads, writes and section creation
//	KEYPATH_DEBUG_MAP      log leaf conversions between Go values and IR
//
// Each variable is parsed with strconv.ParseBool.
package debug
