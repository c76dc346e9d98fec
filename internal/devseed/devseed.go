// Package devseed loads a small demo roster for local development.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/target/gradebook/internal/domain/roster"
	apperrors "github.com/target/gradebook/internal/errors"
	"github.com/target/gradebook/internal/pgxutil"
)

// Options identifies the signed-in developer the demo students are assigned to.
type Options struct {
	User   roster.UserProfile
	Logger *slog.Logger
}

type demoStudent struct {
	id        string
	firstName string
	lastName  string
	yearGroup int
	scores    map[string]string
}

//nolint:gochecknoglobals // fixed demo data
var demoStudents = []demoStudent{
	{
		id: "5d1c9a3e-7d0f-4b6e-9a51-000000000001", firstName: "Alan", lastName: "Turing", yearGroup: 9,
		scores: map[string]string{"maths": "91.5", "physics": "88"},
	},
	{
		id: "5d1c9a3e-7d0f-4b6e-9a51-000000000002", firstName: "Katherine", lastName: "Johnson", yearGroup: 9,
		scores: map[string]string{"maths": "97", "english": "84.25"},
	},
	{
		id: "5d1c9a3e-7d0f-4b6e-9a51-000000000003", firstName: "Edsger", lastName: "Dijkstra", yearGroup: 10,
	},
}

// Seed inserts the developer's profile and the demo students. Existing rows are kept, so
// running it again is harmless.
func Seed(ctx context.Context, db *sql.DB, opts Options) error {
	if db == nil {
		return errors.New("devseed: database is required")
	}
	if opts.User.ID == "" || opts.User.Email == "" {
		return apperrors.Validation("devseed: user id and email are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	role := opts.User.Role
	if role == "" {
		role = "teacher"
	}

	inserted := 0
	err := pgxutil.WithSQLTx(ctx, db, pgxutil.SQLTxConfig{Fn: func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, first_name, last_name, email, role)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`,
			opts.User.ID, opts.User.FirstName, opts.User.LastName, opts.User.Email, role,
		); err != nil {
			return fmt.Errorf("seed user: %w", apperrors.MapDBError(err))
		}

		for _, s := range demoStudents {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO students (id, first_name, last_name, year_group, teacher_id)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (id) DO NOTHING`,
				s.id, s.firstName, s.lastName, s.yearGroup, opts.User.ID,
			)
			if err != nil {
				return fmt.Errorf("seed student %s: %w", s.lastName, apperrors.MapDBError(err))
			}
			if n, _ := res.RowsAffected(); n == 0 {
				continue
			}
			inserted++

			for subject, raw := range s.scores {
				score, parseErr := decimal.NewFromString(raw)
				if parseErr != nil {
					return fmt.Errorf("seed score %q: %w", raw, parseErr)
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO assessments (student_id, subject, score) VALUES ($1, $2, $3)`,
					s.id, subject, score.String(),
				); err != nil {
					return fmt.Errorf("seed assessment: %w", apperrors.MapDBError(err))
				}
			}
		}
		return nil
	}})
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "dev seed complete", "user_id", opts.User.ID, "students_inserted", inserted)
	return nil
}
