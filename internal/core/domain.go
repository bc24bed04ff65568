package core

import (
	"errors"
	"strings"
)

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"

	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type (
	Role            string
	TransactionType string

	// User is a login-capable account stored in the Users table.
	// PasswordHash never leaves the persistence/auth layers.
	User struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		PasswordHash string `json:"-"`
		Name         string `json:"name"`
		Role         Role   `json:"role"`

		// RowPos is the record's 1-based position within the full
		// fetched table range (header is row 1). It is recomputed on
		// every read and is not part of the logical entity.
		RowPos int `json:"-"`
	}

	// Transaction is a single income or expense entry.
	Transaction struct {
		ID          string          `json:"id"`
		Date        string          `json:"date"` // canonical YYYY-MM-DD
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"`
		CreatedBy   string          `json:"createdBy"`

		RowPos int `json:"-"`
	}
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("record already exists")
	ErrUnavailable = errors.New("backing store unavailable")

	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidRole   = errors.New("invalid role")
)

// ParseRole normalizes a role string, defaulting empty input to RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return RoleUser, nil
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// ParseTransactionType validates a transaction type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.TrimSpace(s)) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	default:
		return "", ErrInvalidType
	}
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Validate checks the fields required to persist a transaction.
func (t Transaction) Validate() error {
	if _, ok := CanonicalDate(t.Date); !ok {
		return ErrInvalidDate
	}
	if _, err := ParseTransactionType(string(t.Type)); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("empty category")
	}
	return t.Amount.Validate()
}

// UserPatch carries partial updates for a user. Nil fields are left
// untouched by the persistence layer.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	Name         *string
	Role         *Role
}

// TransactionPatch carries partial updates for a transaction.
// CreatedBy is deliberately absent: it is captured at creation time
// and never updated.
type TransactionPatch struct {
	Date        *string
	Type        *TransactionType
	Category    *string
	Description *string
	Amount      *Money
}
