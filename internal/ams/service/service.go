package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brandonyach/amsadmin/internal/ams/model"
	"github.com/brandonyach/amsadmin/internal/ams/util"
)

var (
	ErrMissingIdentifierColumn = errors.New("identifier column not found in mapping")
	ErrMissingValueColumn      = errors.New("value column not found in mapping")
	ErrDirectoryUnavailable    = errors.New("failed to retrieve user data")
)

// Directory returns every user the platform knows about.
type Directory interface {
	FetchAllUsers(ctx context.Context) ([]model.Person, error)
}

// Saver applies one field update for a resolved user. The payload is the
// complete person object with the changed attribute overlaid.
type Saver interface {
	SavePerson(ctx context.Context, person map[string]any) error
}

// Request describes one bulk-update invocation: the mapping table, which
// column identifies users, and which attribute is being changed.
type Request struct {
	Mapping model.MappingTable
	Key     model.UserKey
	Field   model.Field
}

// Service runs the three-step pipeline: directory fetch, identifier
// matching, per-row mutation with failure capture.
type Service struct {
	directory Directory
	saver     Saver
	workers   int
	logger    *slog.Logger
}

func NewService(directory Directory, saver Saver, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		directory: directory,
		saver:     saver,
		workers:   workers,
		logger:    util.GetLogger(),
	}
}

// Run executes one invocation and returns the failure report. Row-level
// problems (no match, ambiguous match, bad value, rejected save) are data in
// the report; only invocation-level preconditions return an error, and those
// always fire before any mutation is attempted.
func (s *Service) Run(ctx context.Context, req Request) (model.Report, error) {
	if !req.Mapping.HasColumn(string(req.Key)) {
		return nil, fmt.Errorf("%w: column %q", ErrMissingIdentifierColumn, string(req.Key))
	}
	if !req.Mapping.HasColumn(req.Field.Column) {
		return nil, fmt.Errorf("%w: column %q", ErrMissingValueColumn, req.Field.Column)
	}

	directory, err := s.directory.FetchAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryUnavailable, err)
	}
	s.logger.Info("retrieved user directory",
		"users", len(directory), "rows", len(req.Mapping.Rows), "key", string(req.Key))

	resolved, unmatched := matchUsers(directory, req.Mapping, req.Key, req.Field)

	report := unmatched
	report = append(report, s.applyUpdates(ctx, resolved, req.Key, req.Field)...)
	return report, nil
}
