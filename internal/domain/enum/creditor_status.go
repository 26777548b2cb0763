package enum

import (
	"encoding/json"
	"fmt"
)

// CreditorStatus is derived from a creditor's settlement history and is
// never assigned directly.
type CreditorStatus int

const (
	CreditorStatusUnpaid        CreditorStatus = 0
	CreditorStatusPartiallyPaid CreditorStatus = 1
	CreditorStatusFullyPaid     CreditorStatus = 2
)

var creditorStatusNames = [...]string{"Unpaid", "Partially Paid", "Fully Paid"}

func (s CreditorStatus) IsValid() bool {
	return s >= CreditorStatusUnpaid && s <= CreditorStatusFullyPaid
}

func (s CreditorStatus) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("CreditorStatus(%d)", int(s))
	}
	return creditorStatusNames[s]
}

// BadgeCategory groups statuses for display.
type BadgeCategory string

const (
	BadgeSuccess BadgeCategory = "success"
	BadgeWarning BadgeCategory = "warning"
	BadgeDanger  BadgeCategory = "danger"
)

// Badge maps a creditor status to its presentation category.
func (s CreditorStatus) Badge() BadgeCategory {
	switch s {
	case CreditorStatusFullyPaid:
		return BadgeSuccess
	case CreditorStatusPartiallyPaid:
		return BadgeWarning
	case CreditorStatusUnpaid:
		return BadgeDanger
	default:
		panic(fmt.Sprintf("enum: unhandled %v", s))
	}
}

func (s CreditorStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CreditorStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	for i, name := range creditorStatusNames {
		if name == str {
			*s = CreditorStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown creditor status %q", str)
}
