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

// Package logsink provides the leveled, timestamped message sinks used across
// oversight (entities, collectors, registry).
//
// Output lines look like:
//
//	[2025/01/02 15:04:05][WARN] Object[game.Player@3f2a...] is already created
//
// Sinks are fire-and-forget: Print never returns an error and callers never
// wait on anything but the underlying writer.
//
// Typical usage:
//
//	logsink.SetDefault(logsink.FromConfig(os.Stderr, cfg))
//	logsink.Default().Print(apis.LevelInfo, "claimed %s", name)
//
// Tests capture output with a Recorder:
//
//	rec := logsink.NewRecorder()
//	prev := logsink.SetDefault(rec)
//	defer logsink.SetDefault(prev)
package logsink
