package model

// All lists every table model in dependency order, for schema migration.
func All() []any {
	return []any{
		&VendorModel{},
		&ProductModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&AdminActionModel{},
	}
}
