/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// Level is the severity of a sink message.
// Numeric values follow the historical INFO=0, WARN=1, ERROR=2, DEBUG=3 order.
type Level int

const (
	// LevelInfo reports normal lifecycle progress.
	LevelInfo Level = iota
	// LevelWarn reports soft conditions: idempotency hits and degrade paths.
	LevelWarn
	// LevelError reports failed validations and refused bindings.
	LevelError
	// LevelDebug reports step-by-step lifecycle tracing.
	LevelDebug
)

// Verbosity orders levels from least (Error) to most (Debug) verbose.
func (l Level) Verbosity() int {
	switch l {
	case LevelError:
		return 0
	case LevelWarn:
		return 1
	case LevelInfo:
		return 2
	default:
		return 3
	}
}

// String returns the upper-case label used in sink output.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Sink is a fire-and-forget message sink.
// Callers never inspect the outcome of Print; implementations must be safe for
// concurrent use and must not block on anything but their own output.
type Sink interface {
	// Print formats the message with fmt semantics (no formatting when args is empty).
	Print(level Level, format string, args ...any)
}
