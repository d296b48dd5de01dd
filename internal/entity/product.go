package entity

// Product is the external representation of a product record.
// Discount and FinalPrice are only set on single-product reads.
type Product struct {
	ID           string   `json:"_id"`
	Name         string   `json:"productName"`
	Description  string   `json:"productDescription"`
	Status       string   `json:"status,omitempty"`
	Stock        int      `json:"stock"`
	Price        float64  `json:"price"`
	DiscountType string   `json:"discount_type"`
	Discount     *float64 `json:"discount,omitempty"`
	FinalPrice   *float64 `json:"final_price,omitempty"`
}

// ProductInput holds the fields written on create and update, with the status as a label.
type ProductInput struct {
	Name         string
	Description  string
	Status       string
	Stock        int
	Price        float64
	DiscountType string
}

// ProductRecord is the persisted shape of a product, with the status kept as
// its numeric code.
type ProductRecord struct {
	ID           string  `json:"_id" db:"id"`
	Name         string  `json:"productName" db:"name"`
	Description  string  `json:"productDescription" db:"description"`
	StatusCode   int     `json:"status" db:"status"`
	Stock        int     `json:"stock" db:"stock"`
	Price        float64 `json:"price" db:"price"`
	DiscountType string  `json:"discount_type" db:"discount_type"`
}

/*
Schema for products table (stoolap):
CREATE TABLE IF NOT EXISTS products (
	id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	status INTEGER NOT NULL,
	stock INTEGER NOT NULL,
	price FLOAT NOT NULL,
	discount_type TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_id ON products(id);
*/
