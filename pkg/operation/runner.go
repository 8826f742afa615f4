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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner runs one function per file, sequentially or with bounded
// concurrency
type Runner struct {
	jobs int
}

// 🏗️ NewRunner creates a new runner. jobs <= 1 runs sequentially.
func NewRunner(jobs int) *Runner {
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{jobs: jobs}
}

// Jobs returns the concurrency limit
func (r *Runner) Jobs() int {
	return r.jobs
}

// 🏃 Run calls fn for every path and returns the first error
func (r *Runner) Run(ctx context.Context, paths []string, fn func(ctx context.Context, path string) error) error {
	if r.jobs == 1 {
		return r.runSync(ctx, paths, fn)
	}
	return r.runAsync(ctx, paths, fn)
}

// 🔄 runSync stops between files once ctx is done
func (r *Runner) runSync(ctx context.Context, paths []string, fn func(ctx context.Context, path string) error) error {
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		if err := fn(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// ⚡ runAsync processes at most jobs files at a time
func (r *Runner) runAsync(ctx context.Context, paths []string, fn func(ctx context.Context, path string) error) error {
	zerolog.Ctx(ctx).Debug().Int("jobs", r.jobs).Int("files", len(paths)).Msg("running concurrently")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			return fn(gctx, p)
		})
	}
	return g.Wait()
}
