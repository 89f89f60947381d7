package types

// CartItem pairs a product with its quantity. Quantity is always >= 1 once
// the item exists; updates below 1 remove the line instead.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartPayload mirrors the backend cart response. Lines carry the backend
// line-item id, which is distinct from the product id and required for
// update/remove calls.
type CartPayload struct {
	Items []CartLine `json:"items"`
}

// CartLine is one backend cart row.
type CartLine struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartItems converts the wire payload into the client cart representation.
func (c CartPayload) CartItems() []CartItem {
	items := make([]CartItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, CartItem{Product: line.Product, Quantity: line.Quantity})
	}
	return items
}

// LineForProduct resolves the backend line matching a product id.
func (c CartPayload) LineForProduct(productID string) (CartLine, bool) {
	for _, line := range c.Items {
		if line.Product.ID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}
