package entity

// AlertKind discriminates operator notifications.
type AlertKind int

const (
	AlertDisputed AlertKind = iota + 1
	AlertPurchased
	AlertDeadLetter
)

func (k AlertKind) String() string {
	switch k {
	case AlertDisputed:
		return "disputed"
	case AlertPurchased:
		return "purchased"
	case AlertDeadLetter:
		return "dead_letter"
	default:
		return "unknown"
	}
}

// Alert is an operator notification produced by the reconciliation loop and
// delivered by the notifier bot. Best effort; never blocks a pass.
type Alert struct {
	Kind       AlertKind
	Withdrawal Withdrawal
	Detail     string
}
