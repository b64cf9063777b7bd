package models

import "fmt"

// CompileError reports a typesetting engine failure. EngineLog holds the
// combined stdout+stderr of the failing pass, empty when the failure
// happened before the engine ran.
type CompileError struct {
	Message   string
	EngineLog string
}

func (e *CompileError) Error() string {
	return e.Message
}

// NewCompileError builds a CompileError with a formatted message.
func NewCompileError(log string, format string, args ...interface{}) *CompileError {
	return &CompileError{
		Message:   fmt.Sprintf(format, args...),
		EngineLog: log,
	}
}
