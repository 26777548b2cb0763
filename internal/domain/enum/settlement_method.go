package enum

import (
	"encoding/json"
	"fmt"
)

// SettlementMethod is how a creditor payment was made.
type SettlementMethod int

const (
	SettlementMethodCash     SettlementMethod = 0
	SettlementMethodPOS      SettlementMethod = 1
	SettlementMethodTransfer SettlementMethod = 2
	SettlementMethodCheque   SettlementMethod = 3
)

var settlementMethodNames = [...]string{"Cash", "POS", "Transfer", "Cheque"}

// SettlementMethods lists every accepted method in display order.
func SettlementMethods() []SettlementMethod {
	return []SettlementMethod{
		SettlementMethodCash,
		SettlementMethodPOS,
		SettlementMethodTransfer,
		SettlementMethodCheque,
	}
}

// ParseSettlementMethod converts a method name such as "Transfer".
func ParseSettlementMethod(s string) (SettlementMethod, error) {
	for i, name := range settlementMethodNames {
		if name == s {
			return SettlementMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown settlement method %q", s)
}

func (m SettlementMethod) IsValid() bool {
	return m >= SettlementMethodCash && m <= SettlementMethodCheque
}

func (m SettlementMethod) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("SettlementMethod(%d)", int(m))
	}
	return settlementMethodNames[m]
}

func (m SettlementMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *SettlementMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSettlementMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
