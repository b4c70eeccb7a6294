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
	"bytes"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsync/pkg/vfs"
)

// compareChunkSize is how much of each file is read per iteration when
// sizes match and contents must be compared.
const compareChunkSize = 8 * 1024

// 🔍 filesEqual decides whether two files hold identical bytes. Sizes
// are compared first; only on a size match are contents streamed in
// fixed-size chunks until a difference or simultaneous EOF. Handles are
// released before returning.
func filesEqual(fs vfs.FS, pathA, pathB string) (bool, error) {
	infoA, err := fs.Stat(pathA)
	if err != nil {
		return false, errors.Errorf("stating %q: %w", pathA, err)
	}
	infoB, err := fs.Stat(pathB)
	if err != nil {
		return false, errors.Errorf("stating %q: %w", pathB, err)
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	fileA, err := fs.Open(pathA)
	if err != nil {
		return false, errors.Errorf("opening %q: %w", pathA, err)
	}
	defer fileA.Close()

	fileB, err := fs.Open(pathB)
	if err != nil {
		return false, errors.Errorf("opening %q: %w", pathB, err)
	}
	defer fileB.Close()

	bufA := make([]byte, compareChunkSize)
	bufB := make([]byte, compareChunkSize)
	for {
		nA, errA := io.ReadFull(fileA, bufA)
		nB, errB := io.ReadFull(fileB, bufB)
		if errA != nil && errA != io.EOF && errA != io.ErrUnexpectedEOF {
			return false, errors.Errorf("reading %q: %w", pathA, errA)
		}
		if errB != nil && errB != io.EOF && errB != io.ErrUnexpectedEOF {
			return false, errors.Errorf("reading %q: %w", pathB, errB)
		}
		if !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}
		if errA == io.EOF && errB == io.EOF {
			return true, nil
		}
		// a short chunk means one side hit EOF; the other must too on
		// the next read or the sizes lied (file changed underneath us)
		if errA == io.ErrUnexpectedEOF && errB == io.ErrUnexpectedEOF {
			return true, nil
		}
		if (errA == nil) != (errB == nil) {
			return false, nil
		}
	}
}
