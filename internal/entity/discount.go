package entity

// DiscountRule is a discount entry served by the external discount API.
// ID matches a product's discount_type.
type DiscountRule struct {
	ID         string  `json:"id"`
	Enablement bool    `json:"enablement"`
	Discount   float64 `json:"discount"`
}
