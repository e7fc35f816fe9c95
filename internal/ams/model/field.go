package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FieldKind selects which person attribute a run mutates.
type FieldKind string

const (
	FieldActive   FieldKind = "active"
	FieldPassword FieldKind = "password"
	FieldDOB      FieldKind = "dateOfBirth"
	FieldEmail    FieldKind = "emailAddress"
	FieldUUID     FieldKind = "uuid"
)

// Field describes one mutable person attribute: the mapping-table column the
// new value is read from, the attribute name in the save payload, and the
// validation/conversion rule applied before any network call.
type Field struct {
	Kind     FieldKind
	Column   string
	APIField string

	convert func(string) (any, error)
}

// Convert validates a raw new value and returns the payload representation.
// A validation error short-circuits the row; the save call is never made.
func (f Field) Convert(raw string) (any, error) {
	return f.convert(raw)
}

var (
	ActiveField = Field{
		Kind:     FieldActive,
		Column:   "active",
		APIField: "active",
		convert: func(raw string) (any, error) {
			v, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
			if err != nil {
				return nil, fmt.Errorf("invalid active value %q, expected true or false", raw)
			}
			return v, nil
		},
	}

	PasswordField = Field{
		Kind:     FieldPassword,
		Column:   "password",
		APIField: "password",
		convert: func(raw string) (any, error) {
			if err := GetValidator().Var(raw, "required,min=8"); err != nil {
				return nil, errors.New("invalid password, must be at least 8 characters")
			}
			return raw, nil
		},
	}

	DOBField = Field{
		Kind:     FieldDOB,
		Column:   "date_of_birth",
		APIField: "dateOfBirth",
		convert: func(raw string) (any, error) {
			raw = strings.TrimSpace(raw)
			if err := GetValidator().Var(raw, "required,datetime=02/01/2006"); err != nil {
				return nil, fmt.Errorf("invalid date format %q, expected DD/MM/YYYY", raw)
			}
			return raw, nil
		},
	}

	EmailField = Field{
		Kind:     FieldEmail,
		Column:   "email_address",
		APIField: "emailAddress",
		convert: func(raw string) (any, error) {
			raw = strings.TrimSpace(raw)
			if err := GetValidator().Var(raw, "required,email"); err != nil {
				return nil, fmt.Errorf("invalid email address %q", raw)
			}
			return raw, nil
		},
	}

	UUIDField = Field{
		Kind:     FieldUUID,
		Column:   "uuid",
		APIField: "uuid",
		convert: func(raw string) (any, error) {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("invalid uuid %q", raw)
			}
			return id.String(), nil
		},
	}
)

var fieldsByKind = map[FieldKind]Field{
	FieldActive:   ActiveField,
	FieldPassword: PasswordField,
	FieldDOB:      DOBField,
	FieldEmail:    EmailField,
	FieldUUID:     UUIDField,
}

func FieldByKind(kind FieldKind) (Field, bool) {
	f, ok := fieldsByKind[kind]
	return f, ok
}
