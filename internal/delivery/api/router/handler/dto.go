package handler

import (
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money values are rendered as fixed two-decimal strings.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID           uuid.UUID `json:"id"`
	VendorID     uuid.UUID `json:"vendor_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Price        string    `json:"price"`
	Stock        int       `json:"stock"`
	MinStock     int       `json:"min_stock"`
	IsActive     bool      `json:"is_active"`
	IsLowStock   bool      `json:"is_low_stock"`
	IsOutOfStock bool      `json:"is_out_of_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	return &ProductResponse{
		ID:           p.ID,
		VendorID:     p.VendorID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        money(p.Price),
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		IsActive:     p.IsActive,
		IsLowStock:   p.IsLowStock(),
		IsOutOfStock: p.IsOutOfStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductResponses(products []*entity.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}

	return out
}

// CartLineResponse is one line of the caller's cart.
type CartLineResponse struct {
	ID        uuid.UUID        `json:"id"`
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Subtotal  string           `json:"subtotal"`
	Product   *ProductResponse `json:"product,omitempty"`
	AddedAt   time.Time        `json:"added_at"`
}

func toCartLineResponse(line *entity.CartLine) *CartLineResponse {
	return &CartLineResponse{
		ID:        line.ID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Subtotal:  money(line.Subtotal()),
		Product:   toProductResponse(line.Product),
		AddedAt:   line.AddedAt,
	}
}

// CartResponse is the caller's cart with its total.
type CartResponse struct {
	Items     []*CartLineResponse `json:"items"`
	ItemCount int                 `json:"item_count"`
	Total     string              `json:"total"`
}

func toCartResponse(view *usecase.CartView) *CartResponse {
	items := make([]*CartLineResponse, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, toCartLineResponse(line))
	}

	return &CartResponse{
		Items:     items,
		ItemCount: view.ItemCount(),
		Total:     money(view.Total),
	}
}

// OrderItemResponse is one purchased line with its settlement split.
type OrderItemResponse struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	VendorID         uuid.UUID `json:"vendor_id"`
	ProductName      string    `json:"product_name"`
	Quantity         int       `json:"quantity"`
	Price            string    `json:"price"`
	Subtotal         string    `json:"subtotal"`
	CommissionRate   string    `json:"commission_rate"`
	CommissionAmount string    `json:"commission_amount"`
	VendorAmount     string    `json:"vendor_amount"`
}

func toOrderItemResponse(item *entity.OrderItem) *OrderItemResponse {
	return &OrderItemResponse{
		ID:               item.ID,
		ProductID:        item.ProductID,
		VendorID:         item.VendorID,
		ProductName:      item.ProductName,
		Quantity:         item.Quantity,
		Price:            money(item.Price),
		Subtotal:         money(item.Subtotal()),
		CommissionRate:   item.CommissionRate.String(),
		CommissionAmount: money(item.CommissionAmount),
		VendorAmount:     money(item.VendorAmount),
	}
}

// OrderResponse is an order as shown to its customer or an admin.
type OrderResponse struct {
	ID               uuid.UUID            `json:"id"`
	OrderNumber      string               `json:"order_number"`
	CustomerID       uuid.UUID            `json:"customer_id"`
	Status           entity.OrderStatus   `json:"status"`
	PaymentStatus    string               `json:"payment_status"`
	PaymentMethod    string               `json:"payment_method"`
	Subtotal         string               `json:"subtotal"`
	DeliveryFee      string               `json:"delivery_fee"`
	TotalAmount      string               `json:"total_amount"`
	CommissionAmount string               `json:"commission_amount"`
	DeliveryAddress  string               `json:"delivery_address"`
	DeliveryPhone    string               `json:"delivery_phone"`
	Notes            string               `json:"notes,omitempty"`
	Items            []*OrderItemResponse `json:"items,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

func toOrderResponse(o *entity.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		CustomerID:       o.CustomerID,
		Status:           o.Status,
		PaymentStatus:    o.PaymentStatus,
		PaymentMethod:    o.PaymentMethod,
		Subtotal:         money(o.Subtotal()),
		DeliveryFee:      money(o.DeliveryFee),
		TotalAmount:      money(o.TotalAmount),
		CommissionAmount: money(o.CommissionAmount),
		DeliveryAddress:  o.DeliveryAddress,
		DeliveryPhone:    o.DeliveryPhone,
		Notes:            o.Notes,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, toOrderItemResponse(item))
	}

	return resp
}

func toOrderResponses(orders []*entity.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}

	return out
}

// PlaceOrderResponse confirms a placed order.
type PlaceOrderResponse struct {
	OrderID     uuid.UUID          `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	TotalAmount string             `json:"total_amount"`
	Status      entity.OrderStatus `json:"status"`
}

// VendorOrderItemResponse is a sold line seen by its vendor.
type VendorOrderItemResponse struct {
	OrderNumber string             `json:"order_number"`
	OrderStatus entity.OrderStatus `json:"order_status"`
	OrderedAt   time.Time          `json:"ordered_at"`
	Item        *OrderItemResponse `json:"item"`
}

func toVendorOrderItemResponses(items []*entity.VendorOrderItem) []*VendorOrderItemResponse {
	out := make([]*VendorOrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, &VendorOrderItemResponse{
			OrderNumber: it.OrderNumber,
			OrderStatus: it.OrderStatus,
			OrderedAt:   it.OrderedAt,
			Item:        toOrderItemResponse(it.Item),
		})
	}

	return out
}

// VendorResponse is a vendor account with its ledger.
type VendorResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	BusinessName    string              `json:"business_name"`
	BusinessEmail   string              `json:"business_email"`
	BusinessPhone   string              `json:"business_phone"`
	BusinessAddress string              `json:"business_address"`
	BankName        string              `json:"bank_name"`
	AccountNumber   string              `json:"account_number"`
	AccountName     string              `json:"account_name"`
	Status          entity.VendorStatus `json:"status"`
	CommissionRate  string              `json:"commission_rate"`
	TotalSales      string              `json:"total_sales"`
	CurrentBalance  string              `json:"current_balance"`
	ApprovedAt      *time.Time          `json:"approved_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

func toVendorResponse(v *entity.Vendor) *VendorResponse {
	if v == nil {
		return nil
	}

	return &VendorResponse{
		ID:              v.ID,
		UserID:          v.UserID,
		BusinessName:    v.BusinessName,
		BusinessEmail:   v.BusinessEmail,
		BusinessPhone:   v.BusinessPhone,
		BusinessAddress: v.BusinessAddress,
		BankName:        v.BankName,
		AccountNumber:   v.AccountNumber,
		AccountName:     v.AccountName,
		Status:          v.Status,
		CommissionRate:  v.CommissionRate.String(),
		TotalSales:      money(v.TotalSales),
		CurrentBalance:  money(v.CurrentBalance),
		ApprovedAt:      v.ApprovedAt,
		CreatedAt:       v.CreatedAt,
	}
}

func toVendorResponses(vendors []*entity.Vendor) []*VendorResponse {
	out := make([]*VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, toVendorResponse(v))
	}

	return out
}

// SuspendVendorResponse reports a suspension and its product cascade.
type SuspendVendorResponse struct {
	Vendor              *VendorResponse `json:"vendor"`
	DeactivatedProducts int64           `json:"deactivated_products"`
}

// WithdrawalResponse acknowledges a withdrawal request.
type WithdrawalResponse struct {
	ID          uuid.UUID `json:"id"`
	VendorID    uuid.UUID `json:"vendor_id"`
	Amount      string    `json:"amount"`
	Balance     string    `json:"balance"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}

func toWithdrawalResponse(w *entity.WithdrawalRequest) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:          w.ID,
		VendorID:    w.VendorID,
		Amount:      money(w.Amount),
		Balance:     money(w.Balance),
		Status:      w.Status,
		RequestedAt: w.RequestedAt,
	}
}

// AuditRecordResponse is one entry of the admin action log.
type AuditRecordResponse struct {
	ID          uuid.UUID          `json:"id"`
	ActorID     uuid.UUID          `json:"actor_id"`
	Action      entity.AuditAction `json:"action"`
	TargetID    uuid.UUID          `json:"target_id"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
}

func toAuditRecordResponses(records []*entity.AuditRecord) []*AuditRecordResponse {
	out := make([]*AuditRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, &AuditRecordResponse{
			ID:          r.ID,
			ActorID:     r.ActorID,
			Action:      r.Action,
			TargetID:    r.TargetID,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		})
	}

	return out
}

// ProductCountsResponse summarises catalog state.
type ProductCountsResponse struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	LowStock   int64 `json:"low_stock"`
	OutOfStock int64 `json:"out_of_stock"`
}

// OrderCountsResponse summarises order activity.
type OrderCountsResponse struct {
	Total   int64 `json:"total"`
	Recent  int64 `json:"recent"`
	Pending int64 `json:"pending"`
}

// TopProductResponse is a best-selling product.
type TopProductResponse struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	QuantitySold int64     `json:"quantity_sold"`
	Revenue      string    `json:"revenue"`
}

// VendorDashboardResponse is the vendor's own summary.
type VendorDashboardResponse struct {
	Vendor        *VendorResponse       `json:"vendor"`
	Days          int                   `json:"days"`
	Products      ProductCountsResponse `json:"products"`
	Orders        OrderCountsResponse   `json:"orders"`
	RecentRevenue string                `json:"recent_revenue"`
	TopProducts   []*TopProductResponse `json:"top_products"`
}

func toProductCounts(c repository.ProductCounts) ProductCountsResponse {
	return ProductCountsResponse{Total: c.Total, Active: c.Active, LowStock: c.LowStock, OutOfStock: c.OutOfStock}
}

func toOrderCounts(c repository.OrderCounts) OrderCountsResponse {
	return OrderCountsResponse{Total: c.Total, Recent: c.Recent, Pending: c.Pending}
}

func toVendorDashboardResponse(d *usecase.VendorDashboard) *VendorDashboardResponse {
	top := make([]*TopProductResponse, 0, len(d.TopProducts))
	for _, p := range d.TopProducts {
		top = append(top, &TopProductResponse{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			Revenue:      money(p.Revenue),
		})
	}

	return &VendorDashboardResponse{
		Vendor:        toVendorResponse(d.Vendor),
		Days:          d.Days,
		Products:      toProductCounts(d.Products),
		Orders:        toOrderCounts(d.Orders),
		RecentRevenue: money(d.RecentRevenue),
		TopProducts:   top,
	}
}

// TopVendorResponse is a vendor ranked by sales.
type TopVendorResponse struct {
	VendorID     uuid.UUID `json:"vendor_id"`
	BusinessName string    `json:"business_name"`
	TotalSales   string    `json:"total_sales"`
}

// AdminDashboardResponse is the marketplace-wide summary.
type AdminDashboardResponse struct {
	Days       int                   `json:"days"`
	Vendors    VendorCountsResponse  `json:"vendors"`
	Products   ProductCountsResponse `json:"products"`
	Orders     OrderCountsResponse   `json:"orders"`
	Revenue    RevenueResponse       `json:"revenue"`
	TopVendors []*TopVendorResponse  `json:"top_vendors"`
}

// VendorCountsResponse summarises vendor onboarding.
type VendorCountsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
}

// RevenueResponse aggregates order money.
type RevenueResponse struct {
	Total      string `json:"total"`
	Commission string `json:"commission"`
	Recent     string `json:"recent"`
}

func toAdminDashboardResponse(d *usecase.AdminDashboard) *AdminDashboardResponse {
	top := make([]*TopVendorResponse, 0, len(d.TopVendors))
	for _, v := range d.TopVendors {
		top = append(top, &TopVendorResponse{
			VendorID:     v.VendorID,
			BusinessName: v.BusinessName,
			TotalSales:   money(v.TotalSales),
		})
	}

	return &AdminDashboardResponse{
		Days: d.Days,
		Vendors: VendorCountsResponse{
			Total:    d.Vendors.Total,
			Pending:  d.Vendors.Pending,
			Approved: d.Vendors.Approved,
		},
		Products: toProductCounts(d.Products),
		Orders:   toOrderCounts(d.Orders),
		Revenue: RevenueResponse{
			Total:      money(d.Revenue.Total),
			Commission: money(d.Revenue.Commission),
			Recent:     money(d.Revenue.Recent),
		},
		TopVendors: top,
	}
}
