package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// stringTypedFields are the person attributes the save endpoint expects as
// strings even when the platform returned them as numbers.
var stringTypedFields = []string{
	"id", "avatarId", "organisationId", "ownerId", "plan", "state", "uuid",
	"emailAddress", "firstName", "lastName", "username", "password",
	"dateOfBirth", "knownAs", "middleNames", "language", "sidebarWidth", "sex",
}

// Person is one directory entry. The typed fields cover what the matcher and
// report need; the raw object as the platform returned it is kept alongside
// so a save round-trips fields this package knows nothing about.
type Person struct {
	ID        string
	FirstName string
	LastName  string
	Username  string
	Email     string
	UUID      string
	DOB       string
	Active    bool

	raw map[string]any
}

// NewPerson builds a Person from a decoded person object.
func NewPerson(fields map[string]any) Person {
	p := Person{raw: fields}
	p.ID = stringField(fields, "id")
	p.FirstName = stringField(fields, "firstName")
	p.LastName = stringField(fields, "lastName")
	p.Username = stringField(fields, "username")
	p.Email = stringField(fields, "emailAddress")
	p.UUID = stringField(fields, "uuid")
	p.DOB = stringField(fields, "dateOfBirth")
	if p.DOB == "" {
		p.DOB = stringField(fields, "dob")
	}
	if v, ok := fields["active"].(bool); ok {
		p.Active = v
	}
	return p
}

func (p *Person) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*p = NewPerson(fields)
	return nil
}

// About is the human-facing full name the platform shows for the user.
func (p Person) About() string {
	return p.FirstName + " " + p.LastName
}

// Payload returns the complete person object with a single attribute
// overlaid, ready for the save endpoint. String-typed attributes are
// coerced so numeric ids from the directory response survive the trip.
func (p Person) Payload(apiField string, value any) map[string]any {
	payload := make(map[string]any, len(p.raw)+2)
	for k, v := range p.raw {
		payload[k] = v
	}
	payload["id"] = p.ID
	payload[apiField] = value
	for _, key := range stringTypedFields {
		if v, ok := payload[key]; ok && v != nil {
			payload[key] = coerceString(v)
		}
	}
	return payload
}

func stringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	return coerceString(v)
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; ids are integral.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
