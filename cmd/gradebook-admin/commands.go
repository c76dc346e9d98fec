package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/target/gradebook/internal/adapters/authroles"
	"github.com/target/gradebook/internal/bootstrap"
	"github.com/target/gradebook/internal/devseed"
	domainauth "github.com/target/gradebook/internal/domain/auth"
	"github.com/target/gradebook/internal/domain/roster"
	"github.com/target/gradebook/internal/migrate"
	"github.com/target/gradebook/internal/service"
)

type migrateOptions struct {
	Timeout time.Duration
	Status  bool
}

type dbSeedOptions struct {
	Timeout     time.Duration
	AllowRemote bool
}

type diagnosticsOptions struct {
	Timeout time.Duration
	JSON    bool
}

type revokeOptions struct {
	Timeout time.Duration
	UserID  string
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := newFlagSet("migrate")
	opts := migrateOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for migrations to complete")
	fs.BoolVar(&opts.Status, "status", false, "List migrations and whether they are applied, without applying any")
	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseDBSeedFlags(args []string) (dbSeedOptions, error) {
	fs := newFlagSet("db-seed")
	opts := dbSeedOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for seeding to complete")
	fs.BoolVar(&opts.AllowRemote, "allow-remote", false, "Permit running against database hosts that do not look local")
	if err := fs.Parse(args); err != nil {
		return dbSeedOptions{}, err
	}
	if opts.Timeout <= 0 {
		return dbSeedOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseDiagnosticsFlags(args []string) (diagnosticsOptions, error) {
	fs := newFlagSet("diagnostics")
	opts := diagnosticsOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for the backend")
	fs.BoolVar(&opts.JSON, "json", false, "Print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return diagnosticsOptions{}, err
	}
	if opts.Timeout <= 0 {
		return diagnosticsOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseRevokeFlags(args []string) (revokeOptions, error) {
	fs := newFlagSet("revoke-sessions")
	opts := revokeOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for Redis")
	fs.StringVarP(&opts.UserID, "user", "u", "", "User id whose sessions are removed (required)")
	if err := fs.Parse(args); err != nil {
		return revokeOptions{}, err
	}
	opts.UserID = strings.TrimSpace(opts.UserID)
	if opts.UserID == "" {
		return revokeOptions{}, errors.New("--user is required")
	}
	if opts.Timeout <= 0 {
		return revokeOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		if opts.Status {
			status, statusErr := migrate.Status(ctx, db)
			if statusErr != nil {
				return fmt.Errorf("migration status: %w", statusErr)
			}
			return printMigrationStatus(cmdCtx.Out, status)
		}

		cmdCtx.Logger.Info("running database migrations")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return migrateErr
		}
		cmdCtx.Logger.Info("migrations completed successfully")
		return nil
	})
}

func printMigrationStatus(w io.Writer, status []migrate.Migration) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "VERSION\tAPPLIED AT"); err != nil {
		return err
	}
	for _, m := range status {
		applied := "pending"
		if m.Applied() {
			applied = m.AppliedAt.UTC().Format(time.RFC3339)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", m.Version, applied); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runDBSeed(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBSeedFlags(args)
	if err != nil {
		return err
	}
	if guardErr := guardRemoteHost(cmdCtx, opts.AllowRemote, "insert demo students into the configured database"); guardErr != nil {
		return guardErr
	}

	user := devSeedUser(cmdCtx)
	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("ensuring database migrations are current")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return migrateErr
		}

		cmdCtx.Logger.Info("seeding development data", "user_id", user.ID)
		if seedErr := devseed.Seed(ctx, db, devseed.Options{User: user, Logger: cmdCtx.Logger}); seedErr != nil {
			return fmt.Errorf("seed data: %w", seedErr)
		}
		return nil
	})
}

// devSeedUser is the dev sign-in identity, so seeded students show up on its dashboard.
func devSeedUser(cmdCtx *commandContext) roster.UserProfile {
	dev := cmdCtx.Config.Auth.DevAuth
	roles := authroles.StaticRoleMapper{
		AdminGroup:   cmdCtx.Config.Auth.AdminGroup,
		TeacherGroup: cmdCtx.Config.Auth.TeacherGroup,
	}
	role := roles.Map(dev.Groups)
	if role == domainauth.RoleGuest {
		role = domainauth.RoleTeacher
	}
	return roster.UserProfile{
		ID:        dev.UserID,
		FirstName: dev.FirstName,
		LastName:  dev.LastName,
		Email:     dev.Email,
		Role:      string(role),
	}
}

func runDiagnostics(cmdCtx *commandContext, args []string) error {
	opts, err := parseDiagnosticsFlags(args)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	svc := service.NewDiagnosticsService(service.DiagnosticsServiceOptions{
		Clients: bootstrap.NewBackendFactory(cmdCtx.Config.Backend),
		Logger:  cmdCtx.Logger,
	})
	report, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("diagnostics: %w", err)
	}
	return printDiagnostics(cmdCtx.Out, report, opts.JSON)
}

func printDiagnostics(w io.Writer, report *roster.Diagnostics, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if _, err := fmt.Fprintf(w, "Users: %d\nStudents: %d\n\n", report.TotalUsers, report.TotalStudents); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE"); err != nil {
		return err
	}
	for _, u := range report.Users {
		if _, err := fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", u.ID, u.FirstName, u.LastName, u.Email, u.Role); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runRevokeSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseRevokeFlags(args)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	removed, err := bootstrap.NewSessionStore(client).DeleteUserSessions(ctx, opts.UserID)
	if err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return writef(cmdCtx.Out, "Removed %d session(s) for %s\n", removed, opts.UserID)
}
