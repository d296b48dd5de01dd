package entity

// ProductEvent is published after a product mutation.
type ProductEvent struct {
	Event     string   `json:"event"` // e.g., "created", "updated", "deleted"
	ProductID string   `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}
