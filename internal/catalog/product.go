package catalog

import "github.com/shopspring/decimal"

const (
	StockIn  = "In Stock"
	StockOut = "Out of Stock"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Tags        []string        `json:"tags,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	StockStatus string          `json:"stock_status"`
}
