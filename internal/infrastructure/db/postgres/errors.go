package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/classifieds/ads-api/internal/core/domain"
)

const uniqueViolation = pq.ErrorCode("23505")

// translateError maps driver errors onto the domain error classes. notFound is
// returned for sql.ErrNoRows so callers keep the entity-specific message.
func translateError(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}

// expectAffected turns a zero-row update or delete into notFound.
func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
