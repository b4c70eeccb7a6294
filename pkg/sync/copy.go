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
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsync/pkg/vfs"
)

// 📄 copyFile copies src to dst, overwriting dst if it exists, then
// carries over the source's permission bits and modification time where
// the filesystem supports them.
func copyFile(fs vfs.FS, src, dst string) error {
	srcFile, err := fs.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := fs.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Errorf("copying file content: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	return copyMetadata(fs, src, dst)
}

// 📁 copyTree recursively copies the directory src to dst, which must
// not exist yet. Directories are created before anything is copied into
// them.
func copyTree(fs vfs.FS, src, dst string) error {
	if err := fs.MkdirAll(dst, 0o755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}

	entries, err := fs.ReadDir(src)
	if err != nil {
		return errors.Errorf("listing directory: %w", err)
	}
	for _, info := range entries {
		srcChild := fs.Join(src, info.Name())
		dstChild := fs.Join(dst, info.Name())
		if info.IsDir() {
			if err := copyTree(fs, srcChild, dstChild); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(fs, srcChild, dstChild); err != nil {
			return errors.Errorf("copying %q: %w", srcChild, err)
		}
	}

	return copyMetadata(fs, src, dst)
}

// copyMetadata is best-effort: backends without mode or mtime support
// simply keep their defaults.
func copyMetadata(fs vfs.FS, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return errors.Errorf("stating source for metadata: %w", err)
	}
	if err := fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("preserving mode: %w", err)
	}
	if err := fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("preserving modification time: %w", err)
	}
	return nil
}
