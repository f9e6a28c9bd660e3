package postgres

import (
	"marketplace/internal/domain/entity"
	"marketplace/internal/infra/persistence/model"
)

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:          data.ID,
		VendorID:    data.VendorID,
		Name:        data.Name,
		Description: data.Description,
		Category:    data.Category,
		Price:       data.Price,
		Stock:       data.Stock,
		MinStock:    data.MinStock,
		IsActive:    data.IsActive,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		VendorID:    data.VendorID,
		Name:        data.Name,
		Description: data.Description,
		Category:    data.Category,
		Price:       data.Price,
		Stock:       data.Stock,
		MinStock:    data.MinStock,
		IsActive:    data.IsActive,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toVendorDomain(data *model.VendorModel) *entity.Vendor {
	if data == nil {
		return nil
	}

	return &entity.Vendor{
		ID:              data.ID,
		UserID:          data.UserID,
		BusinessName:    data.BusinessName,
		BusinessEmail:   data.BusinessEmail,
		BusinessPhone:   data.BusinessPhone,
		BusinessAddress: data.BusinessAddress,
		BankName:        data.BankName,
		AccountNumber:   data.AccountNumber,
		AccountName:     data.AccountName,
		Status:          entity.VendorStatus(data.Status),
		CommissionRate:  data.CommissionRate,
		TotalSales:      data.TotalSales,
		CurrentBalance:  data.CurrentBalance,
		ApprovedAt:      data.ApprovedAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromVendorDomain(data *entity.Vendor) *model.VendorModel {
	if data == nil {
		return nil
	}

	return &model.VendorModel{
		ID:              data.ID,
		UserID:          data.UserID,
		BusinessName:    data.BusinessName,
		BusinessEmail:   data.BusinessEmail,
		BusinessPhone:   data.BusinessPhone,
		BusinessAddress: data.BusinessAddress,
		BankName:        data.BankName,
		AccountNumber:   data.AccountNumber,
		AccountName:     data.AccountName,
		Status:          data.Status.String(),
		CommissionRate:  data.CommissionRate,
		TotalSales:      data.TotalSales,
		CurrentBalance:  data.CurrentBalance,
		ApprovedAt:      data.ApprovedAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toCartLineDomain(data *model.CartItemModel) *entity.CartLine {
	if data == nil {
		return nil
	}

	return &entity.CartLine{
		ID:         data.ID,
		CustomerID: data.CustomerID,
		ProductID:  data.ProductID,
		Quantity:   data.Quantity,
		AddedAt:    data.AddedAt,
		UpdatedAt:  data.UpdatedAt,
		Product:    toProductDomain(data.Product),
	}
}

func fromCartLineDomain(data *entity.CartLine) *model.CartItemModel {
	if data == nil {
		return nil
	}

	return &model.CartItemModel{
		ID:         data.ID,
		CustomerID: data.CustomerID,
		ProductID:  data.ProductID,
		Quantity:   data.Quantity,
		AddedAt:    data.AddedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, toOrderItemDomain(&data.Items[i]))
	}

	return &entity.Order{
		ID:               data.ID,
		CustomerID:       data.CustomerID,
		OrderNumber:      data.OrderNumber,
		TotalAmount:      data.TotalAmount,
		CommissionAmount: data.CommissionAmount,
		DeliveryFee:      data.DeliveryFee,
		DeliveryAddress:  data.DeliveryAddress,
		DeliveryPhone:    data.DeliveryPhone,
		Notes:            data.Notes,
		PaymentMethod:    data.PaymentMethod,
		PaymentStatus:    data.PaymentStatus,
		Status:           entity.OrderStatus(data.Status),
		Items:            items,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, *fromOrderItemDomain(item))
	}

	return &model.OrderModel{
		ID:               data.ID,
		CustomerID:       data.CustomerID,
		OrderNumber:      data.OrderNumber,
		TotalAmount:      data.TotalAmount,
		CommissionAmount: data.CommissionAmount,
		DeliveryFee:      data.DeliveryFee,
		DeliveryAddress:  data.DeliveryAddress,
		DeliveryPhone:    data.DeliveryPhone,
		Notes:            data.Notes,
		PaymentMethod:    data.PaymentMethod,
		PaymentStatus:    data.PaymentStatus,
		Status:           data.Status.String(),
		Items:            items,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	return &entity.OrderItem{
		ID:               data.ID,
		OrderID:          data.OrderID,
		ProductID:        data.ProductID,
		VendorID:         data.VendorID,
		ProductName:      data.ProductName,
		Quantity:         data.Quantity,
		Price:            data.Price,
		CommissionRate:   data.CommissionRate,
		CommissionAmount: data.CommissionAmount,
		VendorAmount:     data.VendorAmount,
		CreatedAt:        data.CreatedAt,
	}
}

func fromOrderItemDomain(data *entity.OrderItem) *model.OrderItemModel {
	return &model.OrderItemModel{
		ID:               data.ID,
		OrderID:          data.OrderID,
		ProductID:        data.ProductID,
		VendorID:         data.VendorID,
		ProductName:      data.ProductName,
		Quantity:         data.Quantity,
		Price:            data.Price,
		CommissionRate:   data.CommissionRate,
		CommissionAmount: data.CommissionAmount,
		VendorAmount:     data.VendorAmount,
		CreatedAt:        data.CreatedAt,
	}
}

func toAuditDomain(data *model.AdminActionModel) *entity.AuditRecord {
	return &entity.AuditRecord{
		ID:          data.ID,
		ActorID:     data.ActorID,
		Action:      entity.AuditAction(data.ActionType),
		TargetID:    data.TargetID,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
	}
}
