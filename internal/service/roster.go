package service

import (
	"context"
	"fmt"

	domainauth "github.com/target/gradebook/internal/domain/auth"
	"github.com/target/gradebook/internal/domain/roster"
	"github.com/target/gradebook/internal/ports"
)

// RosterServiceOptions groups dependencies for RosterService.
type RosterServiceOptions struct {
	Clients ports.StandardClientFactory
}

// RosterService reads a signed-in user's students. Row-level security decides which
// students are visible.
type RosterService struct {
	clients ports.StandardClientFactory
}

// NewRosterService constructs a RosterService.
func NewRosterService(opts RosterServiceOptions) *RosterService {
	if opts.Clients == nil {
		panic("RosterService requires a standard client factory")
	}
	return &RosterService{clients: opts.Clients}
}

// ListStudents returns the students visible to session's user, ordered by last name,
// with per-student score summaries.
func (s *RosterService) ListStudents(ctx context.Context, session *domainauth.Session) ([]roster.StudentSummary, error) {
	if session == nil {
		return nil, ErrNoSession
	}

	client, err := s.clients.NewStandardClient(ports.Principal{
		UserID: session.UserID,
		Email:  session.Email,
		Role:   string(session.Role),
	})
	if err != nil {
		return nil, err
	}

	var students []roster.Student
	if err := client.Select(ctx, ports.SelectQuery{
		Collection: roster.CollectionStudents,
		Fields:     roster.StudentFields,
		OrderBy:    "last_name",
	}, &students); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	out := make([]roster.StudentSummary, 0, len(students))
	for _, st := range students {
		out = append(out, roster.Summarize(st))
	}
	return out, nil
}
