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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsync/pkg/status"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// 🧪 TestFormatAction pins the output line wording: downstream scripts
// parse these, so they are contract
func TestFormatAction(t *testing.T) {
	tests := []struct {
		name   string
		action status.Action
		want   string
	}{
		{
			name:   "would_copy_file",
			action: status.Action{Kind: status.KindCopyFile, Source: "/s/a", Dest: "/d/a", DryRun: true},
			want:   "Would copy file '/s/a' to '/d/a'",
		},
		{
			name:   "would_copy_directory",
			action: status.Action{Kind: status.KindCopyDir, Source: "/s/sub", Dest: "/d/sub", DryRun: true},
			want:   "Would copy directory '/s/sub' to '/d/sub'",
		},
		{
			name:   "would_update",
			action: status.Action{Kind: status.KindUpdateFile, Source: "/s/a", Dest: "/d/a", DryRun: true},
			want:   "Would update '/d/a' from '/s/a'",
		},
		{
			name:   "would_remove_file",
			action: status.Action{Kind: status.KindRemoveFile, Dest: "/d/old", DryRun: true},
			want:   "Would remove file '/d/old'",
		},
		{
			name:   "would_remove_directory",
			action: status.Action{Kind: status.KindRemoveDir, Dest: "/d/old", DryRun: true},
			want:   "Would remove directory '/d/old'",
		},
		{
			name:   "copied_file",
			action: status.Action{Kind: status.KindCopyFile, Source: "/s/a", Dest: "/d/a"},
			want:   "Copied file '/s/a' to '/d/a'",
		},
		{
			name:   "copied_directory",
			action: status.Action{Kind: status.KindCopyDir, Source: "/s/sub", Dest: "/d/sub"},
			want:   "Copied directory '/s/sub' to '/d/sub'",
		},
		{
			name:   "updated",
			action: status.Action{Kind: status.KindUpdateFile, Source: "/s/a", Dest: "/d/a"},
			want:   "Updated '/d/a' from '/s/a'",
		},
		{
			name:   "removed_file",
			action: status.Action{Kind: status.KindRemoveFile, Dest: "/d/old"},
			want:   "Removed file '/d/old'",
		},
		{
			name:   "removed_directory",
			action: status.Action{Kind: status.KindRemoveDir, Dest: "/d/old"},
			want:   "Removed directory '/d/old'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.FormatAction(tt.action))
		})
	}
}

// 🧪 TestConsoleBanner checks real mutations get a confirmation banner
// and dry-run lines do not
func TestConsoleBanner(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	console := status.NewConsole(&buf)
	ctx := testContext(t)

	console.Notify(ctx, status.Action{Kind: status.KindCopyFile, Source: "/s/a", Dest: "/d/a"})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Copied file '/s/a' to '/d/a'", lines[0])
	assert.Equal(t, "Very Nice, Borat Approves!", lines[1])

	buf.Reset()
	console.Notify(ctx, status.Action{Kind: status.KindCopyFile, Source: "/s/a", Dest: "/d/a", DryRun: true})
	assert.Equal(t, "Would copy file '/s/a' to '/d/a'\n", buf.String())
}

// 🧪 TestConsoleUnknownKind checks an unformattable action prints
// nothing instead of a blank line
func TestConsoleUnknownKind(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	console := status.NewConsole(&buf)

	console.Notify(testContext(t), status.Action{Kind: status.KindUnknown, Dest: "/d/a"})
	assert.Empty(t, buf.String())

	console.Notify(testContext(t), status.Action{Kind: status.KindUnknown, Dest: "/d/a", DryRun: true})
	assert.Empty(t, buf.String())
}

// 🧪 TestConsoleFailure checks failed actions are reported, not printed
// as successes
func TestConsoleFailure(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	console := status.NewConsole(&buf)

	console.Notify(testContext(t), status.Action{
		Kind: status.KindRemoveFile,
		Dest: "/d/locked",
		Err:  errors.New("permission denied"),
	})

	out := buf.String()
	assert.Contains(t, out, "skipping remove-file '/d/locked'")
	assert.Contains(t, out, "permission denied")
	assert.NotContains(t, out, "Removed file")
	assert.NotContains(t, out, "Borat")
}
