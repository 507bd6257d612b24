// Package logger holds the program logger.
package logger

import "ytbatch/internal/utils/logging"

// Pl holds the global *ProgramLogger variable.
//
// It discards output until main replaces it.
var Pl = logging.Discard()
