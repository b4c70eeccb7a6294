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
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// defaultBanner is printed after every real mutation.
const defaultBanner = "Very Nice, Borat Approves!"

// 🖥️ Console writes each action as a human-readable line. The line
// wording is contract: downstream scripts parse it, so it changes for
// nobody's aesthetics. Mutations are followed by a decorative
// confirmation banner; dry-run lines and failures are not.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	banner string
}

// 🏭 NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		banner: defaultBanner,
	}
}

// FormatAction renders the contract line for an action.
func FormatAction(action Action) string {
	if action.DryRun {
		switch action.Kind {
		case KindCopyDir:
			return fmt.Sprintf("Would copy directory '%s' to '%s'", action.Source, action.Dest)
		case KindCopyFile:
			return fmt.Sprintf("Would copy file '%s' to '%s'", action.Source, action.Dest)
		case KindUpdateFile:
			return fmt.Sprintf("Would update '%s' from '%s'", action.Dest, action.Source)
		case KindRemoveDir:
			return fmt.Sprintf("Would remove directory '%s'", action.Dest)
		case KindRemoveFile:
			return fmt.Sprintf("Would remove file '%s'", action.Dest)
		}
		return ""
	}
	switch action.Kind {
	case KindCopyDir:
		return fmt.Sprintf("Copied directory '%s' to '%s'", action.Source, action.Dest)
	case KindCopyFile:
		return fmt.Sprintf("Copied file '%s' to '%s'", action.Source, action.Dest)
	case KindUpdateFile:
		return fmt.Sprintf("Updated '%s' from '%s'", action.Dest, action.Source)
	case KindRemoveDir:
		return fmt.Sprintf("Removed directory '%s'", action.Dest)
	case KindRemoveFile:
		return fmt.Sprintf("Removed file '%s'", action.Dest)
	}
	return ""
}

// 📝 Notify implements Notifier.
func (c *Console) Notify(ctx context.Context, action Action) {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := zerolog.Ctx(ctx)

	if action.Err != nil {
		fmt.Fprintf(c.out, "⚠️  %s\n",
			color.New(color.FgYellow).Sprintf("skipping %s '%s': %v", action.Kind, action.Dest, action.Err))
		logger.Warn().
			Str("kind", action.Kind.String()).
			Str("source", action.Source).
			Str("dest", action.Dest).
			Err(action.Err).
			Msg("action failed")
		return
	}

	line := FormatAction(action)
	if line == "" {
		return
	}

	fmt.Fprintln(c.out, line)
	logger.Info().
		Str("kind", action.Kind.String()).
		Str("source", action.Source).
		Str("dest", action.Dest).
		Bool("dry_run", action.DryRun).
		Msg("action")

	if !action.DryRun {
		fmt.Fprintln(c.out, color.New(color.FgGreen).Sprint(c.banner))
	}
}
