package enums

// PaymentState is the coarse outcome marker a redirect provider appends to
// the return URL ("payment" query parameter).
type PaymentState string

const (
	PaymentStateSuccess   PaymentState = "success"
	PaymentStateCancelled PaymentState = "cancelled"
)

// String implements fmt.Stringer.
func (p PaymentState) String() string {
	return string(p)
}
