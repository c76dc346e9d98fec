package ports

import "context"

// SelectQuery describes a collection read.
type SelectQuery struct {
	Collection string
	Fields     []string
	// OrderBy is a field name, optionally suffixed with ".desc".
	OrderBy string
	// Limit caps the row count; zero means no limit.
	Limit int
}

// RowReader is the read surface shared by both data client trust levels.
type RowReader interface {
	// Select decodes the matching rows into dest, which must be a pointer to a slice.
	Select(ctx context.Context, q SelectQuery, dest any) error
	// Count returns the number of rows in collection visible to the client.
	Count(ctx context.Context, collection string) (int64, error)
}

// StandardDataClient reads as a signed-in user; row-level security applies.
type StandardDataClient interface {
	RowReader
	// Subject is the user id the backend evaluates row policies against.
	Subject() string
}

// PrivilegedDataClient reads with the service role and sees every row.
// Obtain one per administrative operation and drop it afterwards.
type PrivilegedDataClient interface {
	RowReader
	BypassesRowSecurity() bool
}

// PrivilegedClientFactory constructs privileged clients on explicit request.
type PrivilegedClientFactory interface {
	NewPrivilegedClient() (PrivilegedDataClient, error)
}

// StandardClientFactory constructs row-level-security enforced clients for a user.
type StandardClientFactory interface {
	NewStandardClient(user Principal) (StandardDataClient, error)
}

// Principal identifies the user a standard client acts for.
type Principal struct {
	UserID string
	Email  string
	Role   string
}
