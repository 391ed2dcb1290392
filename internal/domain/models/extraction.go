package models

// Extraction is the structured transaction pulled out of one message.
// Every field is independently optional: Item is empty when no known item was
// recognized, Quantity and Price are nil when no numeric cue was found. An
// all-absent Extraction is the valid "nothing recognized" outcome, not an
// error.
type Extraction struct {
	// Item is the canonical item name, never a raw alias.
	Item     string
	Quantity *int
	// Price is extracted for the ledger but does not drive the stock update.
	Price *int
}

// Recognized reports whether the extraction carries enough to apply a sale.
func (e Extraction) Recognized() bool {
	return e.Item != "" && e.Quantity != nil
}

// Empty reports whether nothing at all was recognized in the message.
func (e Extraction) Empty() bool {
	return e.Item == "" && e.Quantity == nil && e.Price == nil
}
