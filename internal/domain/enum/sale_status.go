package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SaleStatus represents the lifecycle state of a sale
type SaleStatus int

const (
	SaleStatusPending   SaleStatus = 0
	SaleStatusCompleted SaleStatus = 1
	SaleStatusVoided    SaleStatus = 2
)

var saleStatusNames = [...]string{"pending", "completed", "voided"}

func (s SaleStatus) IsValid() bool {
	return s >= SaleStatusPending && s <= SaleStatusVoided
}

func (s SaleStatus) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("SaleStatus(%d)", int(s))
	}
	return saleStatusNames[s]
}

// IsTerminal reports whether no further commands may change the sale.
func (s SaleStatus) IsTerminal() bool {
	switch s {
	case SaleStatusPending:
		return false
	case SaleStatusCompleted, SaleStatusVoided:
		return true
	default:
		panic(fmt.Sprintf("enum: unhandled %v", s))
	}
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	for i, name := range saleStatusNames {
		if name == str {
			*s = SaleStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sale status %q", str)
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into SaleStatus", value)
	}
	return nil
}
