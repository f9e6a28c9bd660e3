package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type constraintKind string

const (
	constraintNone       constraintKind = ""
	constraintUnique     constraintKind = "unique"
	constraintForeignKey constraintKind = "foreign_key"
	constraintCheck      constraintKind = "check"
)

// constraintMatchers map each kind to the gorm typed error produced by
// TranslateError and the message fragments of drivers that do not translate.
// Fragments are lower case and include the PostgreSQL SQLSTATE codes.
var constraintMatchers = []struct {
	kind      constraintKind
	sentinel  error
	fragments []string
}{
	{kind: constraintUnique, sentinel: gorm.ErrDuplicatedKey, fragments: []string{"duplicate key", "unique constraint", "23505"}},
	{kind: constraintForeignKey, sentinel: gorm.ErrForeignKeyViolated, fragments: []string{"foreign key constraint", "23503"}},
	{kind: constraintCheck, sentinel: gorm.ErrCheckConstraintViolated, fragments: []string{"check constraint", "23514"}},
}

func classifyConstraint(err error) constraintKind {
	if err == nil {
		return constraintNone
	}

	for _, m := range constraintMatchers {
		if errors.Is(err, m.sentinel) {
			return m.kind
		}
	}

	msg := strings.ToLower(err.Error())
	for _, m := range constraintMatchers {
		for _, fragment := range m.fragments {
			if strings.Contains(msg, fragment) {
				return m.kind
			}
		}
	}

	return constraintNone
}

func isUniqueConstraintViolation(err error) bool {
	return classifyConstraint(err) == constraintUnique
}

func isForeignKeyConstraintViolation(err error) bool {
	return classifyConstraint(err) == constraintForeignKey
}

func isCheckConstraintViolation(err error) bool {
	return classifyConstraint(err) == constraintCheck
}
