package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// moneyPlaces is the number of decimal places of the smallest currency unit.
const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// LineSplit is the commission split of one purchased line.
type LineSplit struct {
	Subtotal     decimal.Decimal
	Commission   decimal.Decimal
	VendorAmount decimal.Decimal
}

// SplitLine computes subtotal = price x quantity, the platform commission at
// ratePercent rounded to the smallest unit, and the vendor remainder.
// Commission + VendorAmount always equals Subtotal exactly.
func SplitLine(price decimal.Decimal, quantity int, ratePercent decimal.Decimal) LineSplit {
	subtotal := price.Mul(decimal.NewFromInt(int64(quantity)))
	commission := subtotal.Mul(ratePercent).Div(hundred).Round(moneyPlaces)

	return LineSplit{
		Subtotal:     subtotal,
		Commission:   commission,
		VendorAmount: subtotal.Sub(commission),
	}
}

// VendorCredit is the settlement owed to one vendor for an order.
type VendorCredit struct {
	VendorID     uuid.UUID
	Sales        decimal.Decimal
	VendorAmount decimal.Decimal
}

// Settlement is the computed money breakdown of a checkout.
type Settlement struct {
	Items           []*OrderItem
	Subtotal        decimal.Decimal
	CommissionTotal decimal.Decimal
	DeliveryFee     decimal.Decimal
	TotalAmount     decimal.Decimal
	Credits         []VendorCredit
}

// SettleLines builds frozen order items for the cart lines and the per-vendor
// credits. Every line must carry its Product, and vendors must hold each
// product's vendor.
func SettleLines(lines []*CartLine, vendors map[uuid.UUID]*Vendor, deliveryFee decimal.Decimal) *Settlement {
	settlement := &Settlement{
		Items:           make([]*OrderItem, 0, len(lines)),
		Subtotal:        decimal.Zero,
		CommissionTotal: decimal.Zero,
		DeliveryFee:     deliveryFee,
	}

	creditIndex := make(map[uuid.UUID]int)
	for _, line := range lines {
		product := line.Product
		vendor := vendors[product.VendorID]
		split := SplitLine(product.Price, line.Quantity, vendor.CommissionRate)

		settlement.Items = append(settlement.Items, &OrderItem{
			ID:               uuid.New(),
			ProductID:        product.ID,
			VendorID:         vendor.ID,
			ProductName:      product.Name,
			Quantity:         line.Quantity,
			Price:            product.Price,
			CommissionRate:   vendor.CommissionRate,
			CommissionAmount: split.Commission,
			VendorAmount:     split.VendorAmount,
		})
		settlement.Subtotal = settlement.Subtotal.Add(split.Subtotal)
		settlement.CommissionTotal = settlement.CommissionTotal.Add(split.Commission)

		idx, ok := creditIndex[vendor.ID]
		if !ok {
			idx = len(settlement.Credits)
			creditIndex[vendor.ID] = idx
			settlement.Credits = append(settlement.Credits, VendorCredit{
				VendorID:     vendor.ID,
				Sales:        decimal.Zero,
				VendorAmount: decimal.Zero,
			})
		}
		settlement.Credits[idx].Sales = settlement.Credits[idx].Sales.Add(split.Subtotal)
		settlement.Credits[idx].VendorAmount = settlement.Credits[idx].VendorAmount.Add(split.VendorAmount)
	}

	settlement.TotalAmount = settlement.Subtotal.Add(deliveryFee)

	return settlement
}
