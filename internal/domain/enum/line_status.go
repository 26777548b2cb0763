package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LineStatus is the disposition of a single line within a sale.
type LineStatus int

const (
	LineStatusActive        LineStatus = 0
	LineStatusVoided        LineStatus = 1
	LineStatusCancelled     LineStatus = 2
	LineStatusComplimentary LineStatus = 3
)

var lineStatusNames = [...]string{"active", "voided", "cancelled", "complimentary"}

// ParseLineStatus converts the wire name of a line status.
func ParseLineStatus(s string) (LineStatus, error) {
	for i, name := range lineStatusNames {
		if name == s {
			return LineStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown line status %q", s)
}

func (s LineStatus) IsValid() bool {
	return s >= LineStatusActive && s <= LineStatusComplimentary
}

func (s LineStatus) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("LineStatus(%d)", int(s))
	}
	return lineStatusNames[s]
}

// CountsTowardTotal reports whether lines in this status contribute to
// the sale subtotal.
func (s LineStatus) CountsTowardTotal() bool {
	switch s {
	case LineStatusActive:
		return true
	case LineStatusVoided, LineStatusCancelled, LineStatusComplimentary:
		return false
	default:
		panic(fmt.Sprintf("enum: unhandled %v", s))
	}
}

func (s LineStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *LineStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseLineStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s LineStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *LineStatus) Scan(value interface{}) error {
	if value == nil {
		*s = LineStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = LineStatus(v)
	case int:
		*s = LineStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into LineStatus", value)
	}
	if !s.IsValid() {
		return fmt.Errorf("invalid line status %d", int(*s))
	}
	return nil
}
