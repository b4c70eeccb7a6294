// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"sync"
)

// 📊 Kind classifies a reconciliation action.
type Kind int

const (
	KindUnknown Kind = iota
	KindCopyFile
	KindCopyDir
	KindUpdateFile
	KindRemoveFile
	KindRemoveDir
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindCopyFile:
		return "copy-file"
	case KindCopyDir:
		return "copy-directory"
	case KindUpdateFile:
		return "update-file"
	case KindRemoveFile:
		return "remove-file"
	case KindRemoveDir:
		return "remove-directory"
	default:
		return "unknown"
	}
}

// 📄 Action describes one planned or performed reconciliation step.
// Source is empty for removals. Err is set when the action failed and
// was skipped rather than performed.
type Action struct {
	Kind   Kind
	Source string
	Dest   string
	DryRun bool
	Err    error
}

// 📈 Notifier receives one Action per step the reconciler takes (or
// would take, in dry-run mode). Implementations must be safe for
// concurrent use: the reconciler may notify from multiple goroutines.
type Notifier interface {
	Notify(ctx context.Context, action Action)
}

// 🔇 Nop is a Notifier that discards everything.
type Nop struct{}

func (Nop) Notify(context.Context, Action) {}

// 🗒️ Recorder collects Actions for inspection in tests.
type Recorder struct {
	mu      sync.Mutex
	actions []Action
}

func (r *Recorder) Notify(_ context.Context, action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

// Actions returns a copy of everything recorded so far.
func (r *Recorder) Actions() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Action(nil), r.actions...)
}

// Failures returns only the recorded actions that carry an error.
func (r *Recorder) Failures() []Action {
	var failed []Action
	for _, action := range r.Actions() {
		if action.Err != nil {
			failed = append(failed, action)
		}
	}
	return failed
}

// 📢 Multi fans one Action out to several Notifiers in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, action Action) {
	for _, n := range m {
		n.Notify(ctx, action)
	}
}
