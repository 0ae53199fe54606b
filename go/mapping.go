package cafeserver

import (
	"time"

	catalogdomain "github.com/Apurer/cafe-api/internal/domains/catalog/domain"
	contactdomain "github.com/Apurer/cafe-api/internal/domains/contact/domain"
	identityports "github.com/Apurer/cafe-api/internal/domains/identity/ports"
	ordersdomain "github.com/Apurer/cafe-api/internal/domains/orders/domain"
	salesdomain "github.com/Apurer/cafe-api/internal/domains/sales/domain"
)

const orderDateLayout = "2006-01-02"

func toAuthResponse(session *identityports.Session) AuthResponse {
	identity := session.Identity
	return AuthResponse{
		Token:     session.Token,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Role:      identity.Role.String(),
	}
}

func toMenuProduct(p *catalogdomain.Product) MenuProduct {
	return MenuProduct{
		ProductId:    p.ID,
		Category:     p.Category,
		Name:         p.Name,
		BasePrice:    p.BasePrice.StringFixed(2),
		Availability: string(p.Availability),
	}
}

func toMenuProducts(products []*catalogdomain.Product) []MenuProduct {
	out := make([]MenuProduct, 0, len(products))
	for _, p := range products {
		out = append(out, toMenuProduct(p))
	}
	return out
}

func toProductPatch(in ProductPatch) catalogdomain.Patch {
	patch := catalogdomain.Patch{
		Category:    in.Category,
		Name:        in.Name,
		BasePrice:   in.BasePrice,
		Description: in.Description,
	}
	if in.Availability != nil {
		availability := catalogdomain.Availability(*in.Availability)
		patch.Availability = &availability
	}
	return patch
}

func toCartLines(items []CartItem) []ordersdomain.CartLine {
	lines := make([]ordersdomain.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, ordersdomain.CartLine{ProductID: item.ProductId, Quantity: item.Quantity})
	}
	return lines
}

func toOrderSummary(o *ordersdomain.Order) OrderSummary {
	return OrderSummary{
		OrderId:   o.ID,
		UserId:    o.OwnerID,
		TotalCost: o.TotalCost.StringFixed(2),
		OrderDate: o.PlacedAt.UTC().Format(orderDateLayout),
		PlacedAt:  o.PlacedAt.UTC().Format(time.RFC3339),
		Status:    string(o.Status),
	}
}

func toOrderSummaries(orders []*ordersdomain.Order) []OrderSummary {
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderSummary(o))
	}
	return out
}

func toOrderDetail(o *ordersdomain.Order) OrderDetail {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem{
			ItemId:      item.ID,
			OrderId:     item.OrderID,
			ProductId:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
		})
	}
	return OrderDetail{OrderSummary: toOrderSummary(o), Items: items}
}

func toSalesSnapshot(s *salesdomain.Snapshot) SalesSnapshot {
	return SalesSnapshot{
		SnapshotId:     s.ID,
		TakenAt:        s.TakenAt.UTC().Format(time.RFC3339),
		TotalOrders:    s.TotalOrders,
		TotalItemsSold: s.TotalItemsSold,
	}
}

func toContactSubmission(s *contactdomain.Submission) ContactSubmission {
	return ContactSubmission{
		SubmissionId: s.ID,
		SubmittedAt:  s.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

func toContactMessages(submissions []*contactdomain.Submission) []ContactMessage {
	out := make([]ContactMessage, 0, len(submissions))
	for _, s := range submissions {
		out = append(out, ContactMessage{
			SubmissionId: s.ID,
			FirstName:    s.FirstName,
			LastName:     s.LastName,
			Phone:        s.Phone,
			Email:        s.Email,
			Subject:      s.Subject,
			Message:      s.Message,
			SubmittedAt:  s.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
