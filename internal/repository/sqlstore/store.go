// Package sqlstore implements the domain repositories on the db facade. The
// same SQL runs on PostgreSQL and SQLite; dialect differences are confined to
// the fragments db.Dialect provides.
package sqlstore

import (
	"database/sql"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/pkg/errors"
)

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	i := ni.Int64
	return &i
}

// emptyToNil stores an empty optional string as NULL
func emptyToNil(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func insertedID(res db.Result, what string) (int64, error) {
	if res.InsertedID == nil {
		return 0, errors.DatabaseError("Failed to get "+what+" ID", nil)
	}
	return *res.InsertedID, nil
}

func scanCount(n *int) db.ScanFunc {
	return func(s db.Scanner) error { return s.Scan(n) }
}

func scanBool(b *bool) db.ScanFunc {
	return func(s db.Scanner) error { return s.Scan(b) }
}
