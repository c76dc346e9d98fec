package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/target/gradebook/internal/domain/roster"
	"github.com/target/gradebook/internal/ports"
)

// DiagnosticsServiceOptions groups dependencies for DiagnosticsService.
type DiagnosticsServiceOptions struct {
	Clients ports.PrivilegedClientFactory // Required
	Logger  *slog.Logger                  // Optional
}

// DiagnosticsService reports on backend connectivity with an unrestricted view of the data.
// Callers are responsible for restricting who may invoke it.
type DiagnosticsService struct {
	clients ports.PrivilegedClientFactory
	logger  *slog.Logger
}

// NewDiagnosticsService constructs a DiagnosticsService.
func NewDiagnosticsService(opts DiagnosticsServiceOptions) *DiagnosticsService {
	if opts.Clients == nil {
		panic("DiagnosticsService requires a privileged client factory")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DiagnosticsService{clients: opts.Clients, logger: logger.With("component", "diagnostics")}
}

// Run builds a privileged client for this call only and counts users and students while
// listing user profiles ordered by last name. Configuration errors from the factory are
// returned unchanged.
func (s *DiagnosticsService) Run(ctx context.Context) (*roster.Diagnostics, error) {
	client, err := s.clients.NewPrivilegedClient()
	if err != nil {
		return nil, err
	}

	var out roster.Diagnostics
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, countErr := client.Count(gctx, roster.CollectionUsers)
		if countErr != nil {
			return fmt.Errorf("count users: %w", countErr)
		}
		out.TotalUsers = n
		return nil
	})
	g.Go(func() error {
		n, countErr := client.Count(gctx, roster.CollectionStudents)
		if countErr != nil {
			return fmt.Errorf("count students: %w", countErr)
		}
		out.TotalStudents = n
		return nil
	})
	g.Go(func() error {
		var users []roster.UserProfile
		selectErr := client.Select(gctx, ports.SelectQuery{
			Collection: roster.CollectionUsers,
			Fields:     roster.UserProfileFields,
			OrderBy:    "last_name",
		}, &users)
		if selectErr != nil {
			return fmt.Errorf("list users: %w", selectErr)
		}
		out.Users = users
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.Users == nil {
		out.Users = []roster.UserProfile{}
	}

	s.logger.DebugContext(ctx, "diagnostics complete",
		"total_users", out.TotalUsers,
		"total_students", out.TotalStudents)
	return &out, nil
}
