package odoo

import (
	"encoding/json"
	"fmt"
)

// Odoo's search_read sends "empty" relational and optional fields as the
// JSON literal false instead of null. These wrapper types normalize that
// quirk right at the RPC boundary so the rest of the codebase never has to
// type-switch on interface{}.

// Many2One is a reference field. Odoo serializes it as [id, "Display Name"]
// when set and false when empty.
type Many2One struct {
	ID    int64
	Name  string
	Valid bool
}

// UnmarshalJSON accepts false, null, or the [id, name] tuple.
func (m *Many2One) UnmarshalJSON(data []byte) error {
	*m = Many2One{}

	// false / null -> empty reference
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return nil
	}
	if string(data) == "null" {
		return nil
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("many2one: unexpected value %s", data)
	}
	if len(tuple) < 1 {
		return nil
	}
	if err := json.Unmarshal(tuple[0], &m.ID); err != nil {
		return fmt.Errorf("many2one: bad id in %s", data)
	}
	if len(tuple) > 1 {
		// Name can be missing on some models; ignore decode errors
		json.Unmarshal(tuple[1], &m.Name)
	}
	m.Valid = true
	return nil
}

// IDList is a one2many/many2many field. Odoo sends an array of ids when
// set and false when empty.
type IDList []int64

func (l *IDList) UnmarshalJSON(data []byte) error {
	*l = nil

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return nil
	}
	if string(data) == "null" {
		return nil
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("idlist: unexpected value %s", data)
	}
	*l = ids
	return nil
}

// OptString is a char/text field. Odoo sends false when empty.
type OptString string

func (s *OptString) UnmarshalJSON(data []byte) error {
	*s = ""

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return nil
	}
	if string(data) == "null" {
		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("optstring: unexpected value %s", data)
	}
	*s = OptString(v)
	return nil
}

func (s OptString) String() string { return string(s) }

// OptFloat is a numeric field that may arrive as false.
type OptFloat float64

func (f *OptFloat) UnmarshalJSON(data []byte) error {
	*f = 0

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return nil
	}
	if string(data) == "null" {
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("optfloat: unexpected value %s", data)
	}
	*f = OptFloat(v)
	return nil
}
