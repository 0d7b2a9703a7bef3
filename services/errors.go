package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// NotFoundError: the referenced record does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// GuardError is a declined business operation. Reason is shown to the caller as is.
type GuardError struct {
	Reason string
}

func (e *GuardError) Error() string {
	return e.Reason
}

func notFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func guard(format string, args ...interface{}) error {
	return &GuardError{Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsGuard reports whether err is (or wraps) a GuardError.
func IsGuard(err error) bool {
	var g *GuardError
	return errors.As(err, &g)
}

// lookupErr maps gorm's missing-row error to a NotFoundError and wraps the rest.
func lookupErr(resource string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(resource)
	}
	return fmt.Errorf("failed to load %s: %w", strings.ToLower(resource), err)
}

// isDuplicateKey covers MySQL error 1062 and gorm's translated error for the other drivers.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// isRoomOverlap detects the postgres exclusion constraint on room stays (SQLSTATE 23P01).
func isRoomOverlap(err error) bool {
	var pe *pgconn.PgError
	return errors.As(err, &pe) && pe.Code == "23P01"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateCommand runs struct tags and turns the first failure into a GuardError.
func validateCommand(cmd interface{}) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	fe := verrs[0]
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required", "required_without":
		return guard("%s is required", field)
	case "email":
		return guard("%s must be a valid email address", field)
	case "oneof":
		return guard("%s must be one of: %s", field, fe.Param())
	case "min", "gte":
		return guard("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return guard("%s must be at most %s", field, fe.Param())
	}
	return guard("%s is invalid", field)
}

func toSnake(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := rs[i-1] >= 'a' && rs[i-1] <= 'z'
			nextLower := i+1 < len(rs) && rs[i+1] >= 'a' && rs[i+1] <= 'z'
			// "IDPassport" splits as id_passport
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
