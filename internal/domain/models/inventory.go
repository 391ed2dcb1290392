package models

// InventoryItem is one ledger entry, keyed by the canonical item name the
// parser produces. Stock may go negative: the bot never blocks an over-sale,
// it only alerts.
type InventoryItem struct {
	Name         string `bson:"name" json:"name"`
	CurrentStock int    `bson:"current_stock" json:"current_stock"`
	ReorderPoint int    `bson:"reorder_point" json:"reorder_point"`
}

// StockUpdate is the outcome of applying a sale to the ledger.
// AlertNeeded is true when the post-sale stock fell to or below the item's
// reorder point.
type StockUpdate struct {
	Item         string `json:"item"`
	NewStock     int    `json:"new_stock"`
	ReorderPoint int    `json:"reorder_point"`
	AlertNeeded  bool   `json:"alert_needed"`
}
