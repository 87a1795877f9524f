package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/classifieds/ads-api/internal/core/domain"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("connection reset")

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, domain.ErrAdvertisementNotFound},
		{"wrapped no rows", fmt.Errorf("get: %w", sql.ErrNoRows), domain.ErrAdvertisementNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, domain.ErrConflict},
		{"other pq error", &pq.Error{Code: "23503"}, nil},
		{"unrelated", other, other},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateError(tc.in, domain.ErrAdvertisementNotFound)
			if tc.want == nil {
				if tc.in == nil && got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				if tc.in != nil && (errors.Is(got, domain.ErrNotFound) || errors.Is(got, domain.ErrConflict)) {
					t.Fatalf("expected passthrough, got %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

type fakeResult struct {
	n   int64
	err error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.n, r.err }

func TestExpectAffected(t *testing.T) {
	if err := expectAffected(fakeResult{n: 1}, domain.ErrUserNotFound); err != nil {
		t.Errorf("one row: expected nil, got %v", err)
	}
	if err := expectAffected(fakeResult{n: 0}, domain.ErrUserNotFound); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("zero rows: expected ErrUserNotFound, got %v", err)
	}
	driverErr := errors.New("driver does not support RowsAffected")
	if err := expectAffected(fakeResult{err: driverErr}, domain.ErrUserNotFound); !errors.Is(err, driverErr) {
		t.Errorf("expected driver error, got %v", err)
	}
}
