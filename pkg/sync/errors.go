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

package sync

import (
	"fmt"
)

// 🚫 InvalidArgumentError reports that a source or destination path does
// not name an existing, accessible directory. It is returned before any
// filesystem mutation happens.
type InvalidArgumentError struct {
	Path   string // the offending path as given by the caller
	Reason string // why it was rejected
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: path %q %s", e.Path, e.Reason)
}

// ⚠️ PartialError reports that the run finished but some entries could
// not be reconciled. Each failure was already surfaced through the
// Notifier as it happened; the rest of the tree was still processed.
type PartialError struct {
	Errs []error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("sync finished with %d failed entries", len(e.Errs))
}

func (e *PartialError) Unwrap() []error {
	return e.Errs
}
