package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/blang/semver"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

const (
	// LockFile is written to the project root after every applied run
	LockFile = ".ngmigrate.lock"
	// SchemaVersion of the lock file format
	SchemaVersion = "1.0.0"
)

// ErrSchemaMismatch is returned when a lock file uses another major schema
var ErrSchemaMismatch = errors.Base("lock file schema mismatch")

// File is the on-disk shape of the lock file
type File struct {
	SchemaVersion string    `json:"schema_version"`
	LastUpdated   time.Time `json:"last_updated"`

	// Version is the highest migration version applied to the project
	Version string `json:"version,omitempty"`

	// Steps lists applied steps, oldest first
	Steps []AppliedStep `json:"steps"`
}

// AppliedStep records one step applied to the project
type AppliedStep struct {
	Name         string    `json:"name"`
	Version      string    `json:"version,omitempty"`
	AppliedAt    time.Time `json:"applied_at"`
	Replacements int       `json:"replacements"`
	Writes       int       `json:"writes"`
}

// State tracks the migrations applied to one project
type State struct {
	fs   afero.Fs
	path string
	file File
}

// New creates a clean state for the project rooted at dir
func New(fsys afero.Fs, dir string) (*State, error) {
	if dir == "" {
		return nil, errors.Errorf("project directory is required")
	}
	return &State{
		fs:   fsys,
		path: filepath.Join(dir, LockFile),
		file: File{SchemaVersion: SchemaVersion},
	}, nil
}

// Path returns the lock file location
func (s *State) Path() string {
	return s.path
}

// Load reads the lock file. A missing file leaves the state clean.
func (s *State) Load(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", s.path).Msg("loading state")

	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug().Msg("no lock file, starting clean")
		s.file = File{SchemaVersion: SchemaVersion}
		return nil
	}
	if err != nil {
		return errors.Errorf("reading lock file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.Errorf("parsing lock file: %w", err)
	}

	got, err := semver.ParseTolerant(f.SchemaVersion)
	if err != nil {
		return errors.Errorf("parsing lock file schema %q: %w", f.SchemaVersion, err)
	}
	want := semver.MustParse(SchemaVersion)
	if got.Major != want.Major {
		return errors.Errorf("%s uses schema %s, want %d.x: %w", s.path, f.SchemaVersion, want.Major, ErrSchemaMismatch)
	}

	s.file = f
	return nil
}

// Save writes the lock file
func (s *State) Save(ctx context.Context) error {
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Msg("writing state")

	s.file.SchemaVersion = SchemaVersion
	s.file.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(s.file, "", "\t")
	if err != nil {
		return errors.Errorf("encoding lock file: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, append(data, '\n'), 0o644); err != nil {
		return errors.Errorf("writing lock file: %w", err)
	}
	return nil
}

// Version returns the highest applied version, empty when none
func (s *State) Version() string {
	return s.file.Version
}

// Steps returns the applied steps, oldest first
func (s *State) Steps() []AppliedStep {
	out := make([]AppliedStep, len(s.file.Steps))
	copy(out, s.file.Steps)
	return out
}

// Record appends step and raises Version when the step is newer. Unversioned
// steps never move Version.
func (s *State) Record(step AppliedStep) {
	if step.AppliedAt.IsZero() {
		step.AppliedAt = time.Now().UTC()
	}
	s.file.Steps = append(s.file.Steps, step)

	if step.Version == "" {
		return
	}
	next, err := semver.ParseTolerant(step.Version)
	if err != nil {
		return
	}
	if cur, err := semver.ParseTolerant(s.file.Version); err == nil && next.LTE(cur) {
		return
	}
	s.file.Version = next.String()
}
