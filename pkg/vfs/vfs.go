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

// Package vfs abstracts the filesystem operations the reconciler needs
// behind a narrow interface, so the core can run against a real disk or
// an in-memory tree in tests.
package vfs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gitlab.com/tozd/go/errors"
)

// 💾 FS is the filesystem capability the reconciler operates on.
type FS interface {
	// Resolve canonicalizes a path (absolute, symlinks evaluated where
	// the backing filesystem has a notion of either).
	Resolve(path string) (string, error)
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.FileInfo, error)
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	RemoveAll(path string) error

	// Chmod and Chtimes are best-effort: backends without metadata
	// support report no error and do nothing.
	Chmod(path string, mode os.FileMode) error
	Chtimes(path string, atime, mtime time.Time) error

	Join(elem ...string) string
}

// 🔧 billyFS adapts a billy.Filesystem to FS. chmod and chtimes are nil
// on backends without metadata support.
type billyFS struct {
	fs      billy.Filesystem
	resolve func(path string) (string, error)
	chmod   func(path string, mode os.FileMode) error
	chtimes func(path string, atime, mtime time.Time) error
}

// 🏭 NewOS returns an FS backed by the real filesystem.
func NewOS() FS {
	return &billyFS{
		fs: osfs.New("/"),
		resolve: func(path string) (string, error) {
			abs, err := filepath.Abs(path)
			if err != nil {
				return "", errors.Errorf("making path absolute: %w", err)
			}
			resolved, err := filepath.EvalSymlinks(abs)
			if err != nil {
				return "", err
			}
			return resolved, nil
		},
		chmod:   os.Chmod,
		chtimes: os.Chtimes,
	}
}

// 🏭 NewMem returns an FS backed by an in-memory tree, for tests.
func NewMem() FS {
	return &billyFS{
		fs: memfs.New(),
		resolve: func(path string) (string, error) {
			return filepath.Clean(path), nil
		},
	}
}

func (b *billyFS) Resolve(path string) (string, error) {
	return b.resolve(path)
}

func (b *billyFS) Stat(path string) (os.FileInfo, error) {
	return b.fs.Stat(path)
}

func (b *billyFS) ReadDir(path string) ([]os.FileInfo, error) {
	return b.fs.ReadDir(path)
}

func (b *billyFS) Open(path string) (io.ReadCloser, error) {
	return b.fs.Open(path)
}

func (b *billyFS) Create(path string) (io.WriteCloser, error) {
	return b.fs.Create(path)
}

func (b *billyFS) MkdirAll(path string, perm os.FileMode) error {
	return b.fs.MkdirAll(path, perm)
}

func (b *billyFS) Remove(path string) error {
	return b.fs.Remove(path)
}

func (b *billyFS) RemoveAll(path string) error {
	return util.RemoveAll(b.fs, path)
}

func (b *billyFS) Chmod(path string, mode os.FileMode) error {
	if b.chmod == nil {
		return nil
	}
	return b.chmod(path, mode)
}

func (b *billyFS) Chtimes(path string, atime, mtime time.Time) error {
	if b.chtimes == nil {
		return nil
	}
	return b.chtimes(path, atime, mtime)
}

func (b *billyFS) Join(elem ...string) string {
	return b.fs.Join(elem...)
}
