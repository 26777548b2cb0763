package enum

import "fmt"

// OverpaymentPolicy decides what happens when a settlement would push a
// creditor's remaining balance below zero.
type OverpaymentPolicy int

const (
	// OverpaymentReject refuses the settlement with a validation error.
	OverpaymentReject OverpaymentPolicy = iota
	// OverpaymentAllow records it; the signed balance goes negative.
	OverpaymentAllow
)

func ParseOverpaymentPolicy(s string) (OverpaymentPolicy, error) {
	switch s {
	case "", "reject":
		return OverpaymentReject, nil
	case "allow":
		return OverpaymentAllow, nil
	}
	return OverpaymentReject, fmt.Errorf("unknown overpayment policy %q (use reject or allow)", s)
}

func (p OverpaymentPolicy) String() string {
	switch p {
	case OverpaymentReject:
		return "reject"
	case OverpaymentAllow:
		return "allow"
	default:
		return fmt.Sprintf("OverpaymentPolicy(%d)", int(p))
	}
}
