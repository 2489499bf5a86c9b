package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Unique index names, reported by postgres as the violated constraint.
const (
	idxUsersEmail    = "idx_users_email"
	idxUsersUsername = "idx_users_username"
	idxShopsSellerID = "idx_shops_seller_id"
)

// violatedUnique returns the unique index a write tripped over, if any.
func violatedUnique(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
