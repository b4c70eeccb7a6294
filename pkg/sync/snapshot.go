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
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsync/pkg/vfs"
)

// 📄 entry is one immediate child of a directory.
type entry struct {
	name string
	dir  bool
}

// 📄 mismatch is a name present in both directories but as a file on
// one side and a directory on the other.
type mismatch struct {
	name        string
	sourceIsDir bool
	destIsDir   bool
}

// 📊 snapshot partitions the immediate children of a source/destination
// directory pair by presence and type. It is taken fresh at every
// recursion level and never reused. Each partition is sorted
// lexicographically by name so action order is reproducible.
type snapshot struct {
	sourceOnly  []entry
	destOnly    []entry
	commonFiles []string
	commonDirs  []string
	mismatched  []mismatch
}

// 🔍 takeSnapshot lists both directories and partitions their children.
func takeSnapshot(fs vfs.FS, sourceDir, destDir string) (*snapshot, error) {
	sourceEntries, err := fs.ReadDir(sourceDir)
	if err != nil {
		return nil, errors.Errorf("listing source directory %q: %w", sourceDir, err)
	}
	destEntries, err := fs.ReadDir(destDir)
	if err != nil {
		return nil, errors.Errorf("listing destination directory %q: %w", destDir, err)
	}

	inDest := make(map[string]bool, len(destEntries)) // name -> isDir
	for _, info := range destEntries {
		inDest[info.Name()] = info.IsDir()
	}

	snap := &snapshot{}
	inSource := make(map[string]bool, len(sourceEntries))
	for _, info := range sourceEntries {
		name := info.Name()
		inSource[name] = info.IsDir()

		destIsDir, ok := inDest[name]
		switch {
		case !ok:
			snap.sourceOnly = append(snap.sourceOnly, entry{name: name, dir: info.IsDir()})
		case info.IsDir() != destIsDir:
			snap.mismatched = append(snap.mismatched, mismatch{
				name:        name,
				sourceIsDir: info.IsDir(),
				destIsDir:   destIsDir,
			})
		case info.IsDir():
			snap.commonDirs = append(snap.commonDirs, name)
		default:
			snap.commonFiles = append(snap.commonFiles, name)
		}
	}
	for _, info := range destEntries {
		if _, ok := inSource[info.Name()]; !ok {
			snap.destOnly = append(snap.destOnly, entry{name: info.Name(), dir: info.IsDir()})
		}
	}

	slices.SortFunc(snap.sourceOnly, compareEntries)
	slices.SortFunc(snap.destOnly, compareEntries)
	slices.Sort(snap.commonFiles)
	slices.Sort(snap.commonDirs)
	slices.SortFunc(snap.mismatched, func(a, b mismatch) int {
		return strings.Compare(a.name, b.name)
	})

	return snap, nil
}

func compareEntries(a, b entry) int {
	return strings.Compare(a.name, b.name)
}
