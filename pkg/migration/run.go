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

package migration

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/ngmigrate/pkg/log"
	"github.com/walteh/ngmigrate/pkg/operation"
	"github.com/walteh/ngmigrate/pkg/status"
	"github.com/walteh/ngmigrate/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

// 🔧 RunOptions configure Run
type RunOptions struct {
	Predicates operation.Predicates
	Jobs       int
	DryRun     bool
	Root       string // shown in step headers
}

// 📊 StepReport is the outcome of one step
type StepReport struct {
	Step   Step
	Report *operation.Report
}

// 📋 Result is the outcome of a run
type Result struct {
	Steps   []StepReport
	Tracker *status.Tracker
}

// Changed returns every file changed by any step
func (r *Result) Changed() []status.FileInfo {
	return r.Tracker.Changed()
}

// 🚀 Run applies steps in order. The tree is walked once and the discovery is
// shared by every step; a failing step stops the run, earlier steps stay
// applied.
func Run(ctx context.Context, t tree.Tree, steps []Step, opts RunOptions) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	console, hasConsole := log.Lookup(ctx)

	result := &Result{Tracker: status.NewTracker()}
	if len(steps) == 0 {
		logger.Debug().Msg("no migration steps to run")
		return result, nil
	}

	if opts.Predicates.TemplateSuffix == "" && opts.Predicates.SourceSuffix == "" {
		opts.Predicates = operation.DefaultPredicates()
	}

	d, err := operation.Discover(ctx, t, opts.Predicates)
	if err != nil {
		return nil, err
	}

	for _, step := range steps {
		cs, err := step.Changes(ctx)
		if err != nil {
			return result, err
		}

		if hasConsole {
			console.StartStep(ctx, log.StepOperation{
				Name:        step.Name,
				Version:     step.Version.String(),
				Description: step.Description,
				Root:        opts.Root,
			})
		}

		op, err := operation.New(operation.Options{
			Tree:       t,
			Changes:    cs,
			Predicates: opts.Predicates,
			Discovery:  d,
			Tracker:    result.Tracker,
			Jobs:       opts.Jobs,
			DryRun:     opts.DryRun,
		})
		if err != nil {
			return result, errors.Errorf("step %s: %w", step.Name, err)
		}

		report, err := op.ApplyChanges(ctx)
		if hasConsole {
			console.EndStep(ctx)
		}
		if err != nil {
			return result, errors.Errorf("step %s: %w", step.Name, err)
		}

		logger.Debug().Str("step", step.Name).Str("report", report.String()).Msg("step complete")
		result.Steps = append(result.Steps, StepReport{Step: step, Report: report})
	}

	return result, nil
}
