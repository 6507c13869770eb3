package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes the repositories react to
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isForeignKeyViolation(err error) bool {
	return pqCode(err) == codeForeignKeyViolation
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

func isCheckViolation(err error) bool {
	return pqCode(err) == codeCheckViolation
}
