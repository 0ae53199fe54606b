package cafeserver

import "github.com/shopspring/decimal"

type MenuProduct struct {
	ProductId    int64  `json:"productId"`
	Category     string `json:"category"`
	Name         string `json:"name"`
	BasePrice    string `json:"basePrice"`
	Availability string `json:"availability"`
}

type MenuDescription struct {
	ProductId   int64  `json:"productId"`
	Description string `json:"description"`
}

// ProductPatch is a partial product update. Absent members are left unchanged.
type ProductPatch struct {
	Category     *string          `json:"category,omitempty"`
	Name         *string          `json:"name,omitempty"`
	BasePrice    *decimal.Decimal `json:"basePrice,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Availability *string          `json:"availability,omitempty"`
}
