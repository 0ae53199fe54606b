package cafeserver

type CartItem struct {
	ProductId int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type GuestCheckoutRequest struct {
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Items     []CartItem `json:"items"`
}

type MemberCheckoutRequest struct {
	Items []CartItem `json:"items"`
}

// OrderSummary is an order without its line items. Money is rendered with two decimals.
type OrderSummary struct {
	OrderId   int64  `json:"orderId"`
	UserId    int64  `json:"userId"`
	TotalCost string `json:"totalCost"`
	OrderDate string `json:"orderDate"`
	PlacedAt  string `json:"placedAt"`
	Status    string `json:"status"`
}

type OrderItem struct {
	ItemId      int64  `json:"itemId"`
	OrderId     int64  `json:"orderId"`
	ProductId   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
}

type OrderDetail struct {
	OrderSummary
	Items []OrderItem `json:"items"`
}

type OrderStatusPatch struct {
	Status string `json:"status"`
}
