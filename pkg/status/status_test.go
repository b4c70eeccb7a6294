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

package status_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsync/pkg/status"
)

// 🧪 TestKindString checks the Kind names used in logs
func TestKindString(t *testing.T) {
	assert.Equal(t, "copy-file", status.KindCopyFile.String())
	assert.Equal(t, "copy-directory", status.KindCopyDir.String())
	assert.Equal(t, "update-file", status.KindUpdateFile.String())
	assert.Equal(t, "remove-file", status.KindRemoveFile.String())
	assert.Equal(t, "remove-directory", status.KindRemoveDir.String())
	assert.Equal(t, "unknown", status.KindUnknown.String())
}

// 🧪 TestRecorder checks recording and failure filtering
func TestRecorder(t *testing.T) {
	rec := &status.Recorder{}
	ctx := context.Background()

	rec.Notify(ctx, status.Action{Kind: status.KindCopyFile, Dest: "/d/a"})
	rec.Notify(ctx, status.Action{Kind: status.KindRemoveFile, Dest: "/d/b", Err: errors.New("boom")})

	require.Len(t, rec.Actions(), 2)
	require.Len(t, rec.Failures(), 1)
	assert.Equal(t, "/d/b", rec.Failures()[0].Dest)
}

// 🧪 TestRecorderConcurrent checks the Recorder under concurrent notifies
func TestRecorderConcurrent(t *testing.T) {
	rec := &status.Recorder{}
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Notify(ctx, status.Action{Kind: status.KindCopyFile})
		}()
	}
	wg.Wait()

	assert.Len(t, rec.Actions(), 50)
}

// 🧪 TestMulti checks fan-out ordering
func TestMulti(t *testing.T) {
	first := &status.Recorder{}
	second := &status.Recorder{}
	multi := status.Multi{first, second}

	multi.Notify(context.Background(), status.Action{Kind: status.KindUpdateFile, Dest: "/d/x"})

	require.Len(t, first.Actions(), 1)
	require.Len(t, second.Actions(), 1)
	assert.Equal(t, first.Actions(), second.Actions())
}
