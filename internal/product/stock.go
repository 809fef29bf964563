package product

// Legacy stock field names reconciled by ReconcileStock, checked in order.
var legacyStockFields = []string{"stock", "stockCount", "quantity"}

// ReconcileStock folds the legacy stock fields (stock, stockCount, quantity)
// into a single non-negative integer "stock" on doc and removes the redundant
// keys. The first present field wins; negative or non-numeric values clamp
// to 0. On order line items "quantity" is the ordered amount, not inventory,
// so it is left in place there.
func ReconcileStock(doc map[string]any) (stock int, changed bool) {
	var found bool
	for _, k := range legacyStockFields {
		v, ok := doc[k]
		if !ok || v == nil {
			continue
		}
		if !found {
			stock = normStock(v)
			found = true
		}
	}

	prev, hadStock := doc["stock"]
	if n, ok := toInt(prev); !hadStock || !ok || n != stock {
		changed = true
	}
	doc["stock"] = stock

	if _, ok := doc["stockCount"]; ok {
		delete(doc, "stockCount")
		changed = true
	}
	if _, ok := doc["quantity"]; ok && !isOrderItem(doc) {
		delete(doc, "quantity")
		changed = true
	}
	return stock, changed
}

func isOrderItem(doc map[string]any) bool {
	if _, ok := doc["orderId"]; ok {
		return true
	}
	switch cat, _ := doc["category"].(string); cat {
	case "order", "orders", "order-item":
		return true
	}
	return false
}
