package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrNoSuchElement is raised when an element is requested from a stage that
// has none left, or when an empty Optional is unwrapped.
var ErrNoSuchElement = errors.New("no such element")

// ErrStreamLinked is returned when a Stream handle is used after an
// intermediate operation moved its stage into a new Stream.
var ErrStreamLinked = errors.New("stream has already been linked to a downstream stage")

// ErrCountOverflow is returned by Average when the number of elements
// does not fit the accumulator type.
var ErrCountOverflow = errors.New("element count overflows the accumulator type")

// ErrPanic wraps a recovered panic value as an error.
// It includes a cleaned-up stack trace that excludes internal pullflow frames.
type ErrPanic struct {
	Value any
	Stack string // Cleaned stack trace
}

func (e ErrPanic) Error() string {
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// NewPanicError creates an ErrPanic from a recovered value with a cleaned stack trace.
// Call it from the deferred function that recovered the panic.
func NewPanicError(recovered any) ErrPanic {
	return ErrPanic{
		Value: recovered,
		Stack: cleanStack(captureStack(4)), // skip: runtime.Callers, captureStack, NewPanicError, defer func
	}
}

// captureStack returns the current stack trace as a string.
func captureStack(skip int) string {
	const maxFrames = 32
	var pcs [maxFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder

	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}

	return sb.String()
}

// internalPrefix marks the frames cleanStack drops.
const internalPrefix = "github.com/lguimbarda/pullflow/flow/"

// cleanStack removes internal pullflow frames from a stack trace,
// keeping user code and standard library frames.
func cleanStack(stack string) string {
	lines := strings.Split(stack, "\n")
	var result []string
	var skipNext bool

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Function lines are unindented; the file:line that follows is tabbed.
		if !strings.HasPrefix(line, "\t") {
			if strings.Contains(line, internalPrefix) {
				skipNext = true
				continue
			}
			skipNext = false
		} else if skipNext {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
