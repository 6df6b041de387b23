package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Gender enumerates the accepted customer genders.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// RoleUser is the role granted to every registered customer.
const RoleUser = "ROLE_USER"

// Customer is both the CRUD resource and the authentication principal record.
// Email doubles as the login username and as the token subject; PasswordHash
// stores the bcrypt hash and must never leave the persistence/auth layers.
type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID           int64      `bun:"id,pk,autoincrement"`
	Name         string     `bun:"name,notnull"`
	Email        string     `bun:"email,notnull,unique"`
	PasswordHash string     `bun:"password_hash,notnull"`
	Age          int        `bun:"age,notnull"`
	Gender       Gender     `bun:"gender,notnull"`
	Roles        StringList `bun:"roles,type:jsonb,notnull,default:'[]'"`
	ProfileImage *string    `bun:"profile_image"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

// Username returns the login identifier presented to clients. The email is
// the stable subject embedded in issued tokens.
func (c *Customer) Username() string {
	return c.Email
}

// StringList stores a list of strings as a JSON column.
type StringList []string

// Scan implements sql.Scanner for reading from the database
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to scan StringList: expected []byte or string, got %T", value)
	}
	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer for writing to the database
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	bytes, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}
