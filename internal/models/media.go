package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MediaList is a list of media URLs stored as a JSON text column.
type MediaList []string

// Value implements driver.Valuer.
func (m MediaList) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *MediaList) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*m = MediaList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported media column type %T", value)
	}
	if len(raw) == 0 {
		*m = MediaList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// GormDataType keeps the column portable between postgres and sqlite.
func (MediaList) GormDataType() string {
	return "text"
}
