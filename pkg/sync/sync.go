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

// Package sync makes a destination directory tree byte-for-byte and
// structurally equal to a source tree: new and changed entries are
// copied over, entries absent from the source are removed. The whole
// reconciliation is recomputed from a fresh walk on every run.
package sync

import (
	"context"
	"os"
	"path"
	"runtime"
	stdsync "sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/dirsync/pkg/status"
	"github.com/walteh/dirsync/pkg/vfs"
)

// 🔧 Options configures a Synchronizer.
type Options struct {
	// FS is the filesystem both trees live on. Required.
	FS vfs.FS
	// Notifier receives one Action per step. Defaults to a no-op sink.
	Notifier status.Notifier
	// DryRun reports actions without performing any mutation.
	DryRun bool
	// Parallel reconciles sibling subtrees concurrently. The action set
	// is the same as a sequential run; only emission order differs.
	Parallel bool
	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to the source root. Matching entries are neither
	// copied nor removed.
	Exclude []string
}

// 🔄 Synchronizer reconciles a destination tree against a source tree.
// It holds no per-run state and is safe to reuse.
type Synchronizer struct {
	fs       vfs.FS
	notifier status.Notifier
	dryRun   bool
	parallel bool
	exclude  []string
}

// 🏭 New creates a Synchronizer with the given options.
func New(opts Options) (*Synchronizer, error) {
	if opts.FS == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Notifier == nil {
		opts.Notifier = status.Nop{}
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return &Synchronizer{
		fs:       opts.FS,
		notifier: opts.Notifier,
		dryRun:   opts.DryRun,
		parallel: opts.Parallel,
		exclude:  opts.Exclude,
	}, nil
}

// 🏃 Sync makes destPath match sourcePath. Both paths must name
// existing directories; otherwise an *InvalidArgumentError is returned
// before anything is touched. Entries that fail mid-run are reported
// through the Notifier and skipped, and the rest of the tree is still
// processed; such a run returns a *PartialError.
func (s *Synchronizer) Sync(ctx context.Context, sourcePath, destPath string) error {
	logger := zerolog.Ctx(ctx)

	source, err := s.resolveDir(sourcePath)
	if err != nil {
		return err
	}
	dest, err := s.resolveDir(destPath)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("source", source).
		Str("dest", dest).
		Bool("dry_run", s.dryRun).
		Bool("parallel", s.parallel).
		Msg("starting reconciliation")

	r := &run{
		fs:       s.fs,
		notifier: s.notifier,
		dryRun:   s.dryRun,
		parallel: s.parallel,
		exclude:  s.exclude,
	}
	r.level(ctx, source, dest, "")

	if len(r.errs) > 0 {
		logger.Warn().Int("failed_entries", len(r.errs)).Msg("reconciliation finished with failures")
		return &PartialError{Errs: r.errs}
	}
	logger.Debug().Msg("reconciliation finished")
	return nil
}

// resolveDir canonicalizes a path and verifies it names a directory.
func (s *Synchronizer) resolveDir(p string) (string, error) {
	resolved, err := s.fs.Resolve(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &InvalidArgumentError{Path: p, Reason: "does not exist"}
		}
		return "", &InvalidArgumentError{Path: p, Reason: "cannot be resolved: " + err.Error()}
	}
	info, err := s.fs.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &InvalidArgumentError{Path: p, Reason: "does not exist"}
		}
		return "", &InvalidArgumentError{Path: p, Reason: "is not accessible: " + err.Error()}
	}
	if !info.IsDir() {
		return "", &InvalidArgumentError{Path: p, Reason: "is not a directory"}
	}
	return resolved, nil
}

// 🎮 run carries the state of one reconciliation pass: the callbacks
// and flags handed down the recursion, plus the accumulated non-fatal
// entry failures.
type run struct {
	fs       vfs.FS
	notifier status.Notifier
	dryRun   bool
	parallel bool
	exclude  []string

	mu   stdsync.Mutex
	errs []error
}

// level reconciles one directory pair, then recurses into shared
// subdirectories. rel is the slash path of this level relative to the
// source root, used only for exclude matching.
func (r *run) level(ctx context.Context, sourceDir, destDir, rel string) {
	if ctx.Err() != nil {
		r.record(ctx.Err())
		return
	}

	snap, err := takeSnapshot(r.fs, sourceDir, destDir)
	if err != nil {
		r.record(err)
		zerolog.Ctx(ctx).Warn().Err(err).Str("source", sourceDir).Msg("skipping level")
		return
	}

	// Same name, different type on each side: destination is always
	// subordinate to source, so the destination entry goes away and the
	// source entry is copied in its place.
	for _, m := range snap.mismatched {
		if r.excluded(path.Join(rel, m.name)) {
			continue
		}
		r.replaceMismatched(ctx, m, sourceDir, destDir)
	}

	var copies []func()
	for _, e := range snap.sourceOnly {
		if r.excluded(path.Join(rel, e.name)) {
			continue
		}
		e := e
		copies = append(copies, func() {
			r.copyEntry(ctx, e, r.fs.Join(sourceDir, e.name), r.fs.Join(destDir, e.name))
		})
	}
	r.runTasks(copies)

	for _, name := range snap.commonFiles {
		if r.excluded(path.Join(rel, name)) {
			continue
		}
		r.updateFile(ctx, r.fs.Join(sourceDir, name), r.fs.Join(destDir, name))
	}

	for _, e := range snap.destOnly {
		if r.excluded(path.Join(rel, e.name)) {
			continue
		}
		r.removeEntry(ctx, e.dir, r.fs.Join(destDir, e.name))
	}

	var recursions []func()
	for _, name := range snap.commonDirs {
		childRel := path.Join(rel, name)
		if r.excluded(childRel) {
			continue
		}
		name := name
		recursions = append(recursions, func() {
			r.level(ctx, r.fs.Join(sourceDir, name), r.fs.Join(destDir, name), childRel)
		})
	}
	r.runTasks(recursions)
}

// runTasks executes independent per-entry tasks, concurrently in
// parallel mode. Tasks never share a destination path; failures go
// through r.fail, so none of them returns an error.
func (r *run) runTasks(tasks []func()) {
	if !r.parallel || len(tasks) < 2 {
		for _, task := range tasks {
			task()
		}
		return
	}

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for _, task := range tasks {
		task := task
		group.Go(func() error {
			task()
			return nil
		})
	}
	_ = group.Wait()
}

// copyEntry copies one source-only entry into the destination.
func (r *run) copyEntry(ctx context.Context, e entry, src, dst string) {
	kind := status.KindCopyFile
	if e.dir {
		kind = status.KindCopyDir
	}
	action := status.Action{Kind: kind, Source: src, Dest: dst, DryRun: r.dryRun}

	if r.dryRun {
		r.notifier.Notify(ctx, action)
		return
	}

	var err error
	if e.dir {
		err = copyTree(r.fs, src, dst)
	} else {
		err = copyFile(r.fs, src, dst)
	}
	if err != nil {
		r.fail(ctx, action, err)
		return
	}
	r.notifier.Notify(ctx, action)
}

// updateFile overwrites the destination copy of a common file when the
// contents differ. Equal files produce no action and no emission.
func (r *run) updateFile(ctx context.Context, src, dst string) {
	action := status.Action{Kind: status.KindUpdateFile, Source: src, Dest: dst, DryRun: r.dryRun}

	equal, err := filesEqual(r.fs, src, dst)
	if err != nil {
		r.fail(ctx, action, err)
		return
	}
	if equal {
		return
	}

	if r.dryRun {
		r.notifier.Notify(ctx, action)
		return
	}
	if err := copyFile(r.fs, src, dst); err != nil {
		r.fail(ctx, action, err)
		return
	}
	r.notifier.Notify(ctx, action)
}

// removeEntry deletes one destination-only entry. It reports whether
// the destination path is gone (or would be, in dry-run mode).
func (r *run) removeEntry(ctx context.Context, isDir bool, dst string) bool {
	kind := status.KindRemoveFile
	if isDir {
		kind = status.KindRemoveDir
	}
	action := status.Action{Kind: kind, Dest: dst, DryRun: r.dryRun}

	if r.dryRun {
		r.notifier.Notify(ctx, action)
		return true
	}

	var err error
	if isDir {
		err = r.fs.RemoveAll(dst)
	} else {
		err = r.fs.Remove(dst)
	}
	if err != nil && !os.IsNotExist(err) {
		r.fail(ctx, action, err)
		return false
	}
	r.notifier.Notify(ctx, action)
	return true
}

// replaceMismatched handles a name that is a file on one side and a
// directory on the other: remove the destination entry, then copy the
// source entry. The copy is skipped if the removal failed.
func (r *run) replaceMismatched(ctx context.Context, m mismatch, sourceDir, destDir string) {
	src := r.fs.Join(sourceDir, m.name)
	dst := r.fs.Join(destDir, m.name)

	if !r.removeEntry(ctx, m.destIsDir, dst) {
		return
	}
	r.copyEntry(ctx, entry{name: m.name, dir: m.sourceIsDir}, src, dst)
}

// excluded reports whether a relative slash path matches any exclude
// pattern. Patterns were validated in New.
func (r *run) excluded(rel string) bool {
	for _, pattern := range r.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// fail surfaces one entry failure through the notifier and records it
// for the run's PartialError. The rest of the tree keeps going.
func (r *run) fail(ctx context.Context, action status.Action, err error) {
	action.Err = err
	r.notifier.Notify(ctx, action)

	zerolog.Ctx(ctx).Warn().
		Str("kind", action.Kind.String()).
		Str("dest", action.Dest).
		Err(err).
		Msg("entry failed")

	r.record(errors.Errorf("%s %q: %w", action.Kind, action.Dest, err))
}

func (r *run) record(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}
