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

// Package vfstest provides helpers for building and reading directory
// trees on a vfs.FS in tests.
package vfstest

import (
	"io"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsync/pkg/vfs"
)

// 🌳 WriteTree materializes a tree under root. Map keys are slash paths
// relative to root; a key ending in "/" creates an empty directory, any
// other key creates a file holding the value.
func WriteTree(t *testing.T, fs vfs.FS, root string, tree map[string]string) {
	t.Helper()

	require.NoError(t, fs.MkdirAll(root, 0o755))
	for name, content := range tree {
		full := fs.Join(root, name)
		if strings.HasSuffix(name, "/") {
			require.NoError(t, fs.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, fs.MkdirAll(path.Dir(full), 0o755))
		f, err := fs.Create(full)
		require.NoError(t, err)
		_, err = io.WriteString(f, content)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
}

// 🔍 ReadTree walks root and returns its contents in WriteTree's map
// form, for structural equality assertions.
func ReadTree(fs vfs.FS, root string) (map[string]string, error) {
	tree := map[string]string{}
	if err := readDir(fs, root, "", tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func readDir(fs vfs.FS, root, rel string, tree map[string]string) error {
	entries, err := fs.ReadDir(fs.Join(root, rel))
	if err != nil {
		return errors.Errorf("listing %q: %w", rel, err)
	}
	for _, entry := range entries {
		entryRel := path.Join(rel, entry.Name())
		if entry.IsDir() {
			children, err := fs.ReadDir(fs.Join(root, entryRel))
			if err != nil {
				return errors.Errorf("listing %q: %w", entryRel, err)
			}
			if len(children) == 0 {
				tree[entryRel+"/"] = ""
			}
			if err := readDir(fs, root, entryRel, tree); err != nil {
				return err
			}
			continue
		}
		content, err := readFile(fs, fs.Join(root, entryRel))
		if err != nil {
			return errors.Errorf("reading %q: %w", entryRel, err)
		}
		tree[entryRel] = content
	}
	return nil
}

func readFile(fs vfs.FS, full string) (string, error) {
	f, err := fs.Open(full)
	if err != nil {
		return "", err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
