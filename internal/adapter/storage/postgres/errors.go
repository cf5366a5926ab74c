package postgres

import (
	"errors"
	"strings"

	"orangecat-wallets/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlStateUniqueViolation = "23505"
	sqlStateRaiseException  = "P0001"

	constraintActiveLimit = "wallets_active_limit"
)

// translateWriteError maps constraint and trigger violations raised by the
// wallets table to the repository sentinels. Other errors pass through.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case sqlStateUniqueViolation:
		switch {
		case strings.HasPrefix(pgErr.ConstraintName, "wallets_address_"):
			return ports.ErrDuplicateAddress
		case strings.HasPrefix(pgErr.ConstraintName, "wallets_primary_"):
			return ports.ErrPrimaryConflict
		}
	case sqlStateRaiseException:
		if pgErr.ConstraintName == constraintActiveLimit {
			return ports.ErrWalletLimit
		}
	}
	return err
}
