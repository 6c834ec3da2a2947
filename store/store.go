package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// DuplicatePolicy controls what an insert does when a row collides with an
// existing one on a unique constraint.
type DuplicatePolicy int

const (
	// RejectDuplicates surfaces the constraint violation to the caller.
	RejectDuplicates DuplicatePolicy = iota
	// IgnoreDuplicates drops colliding rows and keeps the rest.
	IgnoreDuplicates
)

// Query describes a read against one collection.
type Query struct {
	Collection string
	Columns    []string
	ActiveOnly bool
	Limit      int
}

// Store is the durable event store the backfill reads entities from and
// writes synthetic events to. Both the Supabase REST API and a direct
// Postgres connection implement it.
type Store interface {
	// Select reads rows from a collection into dest, which must be a
	// pointer to a slice of structs with matching field tags.
	Select(ctx context.Context, q Query, dest any) error

	// UserIDs returns up to limit registered user IDs.
	UserIDs(ctx context.Context, limit int) ([]string, error)

	// Insert writes rows (a slice) to a collection and returns how many
	// rows the store accepted. Under IgnoreDuplicates the count may be
	// approximate depending on the backend.
	Insert(ctx context.Context, collection string, rows any, policy DuplicatePolicy) (int, error)
}

// RequestError is a non-2xx response from the REST backend. Body is
// truncated so a huge error page never floods the logs.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// Postgres error codes that indicate a row-level constraint conflict.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsConstraintViolation reports whether err is a row-level conflict (a
// duplicate or a dangling reference) rather than a transport or server
// failure. Conflicts are worth retrying row by row; everything else is not.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgForeignKeyViolation
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status == http.StatusConflict
	}
	return false
}
