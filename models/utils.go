package models

import "database/sql"

// NullString converts an empty string to an invalid sql.NullString.
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{String: "", Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
