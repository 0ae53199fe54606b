package cafeserver

// AdminDashboard lists every product and the orders staff still have to act on.
type AdminDashboard struct {
	AllProducts []MenuProduct  `json:"allProducts"`
	AllOrders   []OrderSummary `json:"allOrders"`
}

type SalesSnapshot struct {
	SnapshotId     int64  `json:"snapshotId"`
	TakenAt        string `json:"takenAt"`
	TotalOrders    int64  `json:"totalOrders"`
	TotalItemsSold int64  `json:"totalItemsSold"`
}
