package whatsapp

import (
	"errors"
	"fmt"

	"github.com/tahmidrayat/dukandost/internal/domain/models"
	"github.com/tahmidrayat/dukandost/internal/service/inventory"
)

// Reply composition. Pure string building, no side effects; the branch
// conditions here are the observable contract of the bot:
//
//   - sale confirmation, with a low-stock warning when warranted
//   - "item found, quantity missing" prompt
//   - "nothing recognized" echo, with an optional did-you-mean guess
//   - inventory error replies for unknown items and ledger faults
//
// (transcription failures never reach here, they are passed through verbatim)

func composeConfirmation(ex models.Extraction, update models.StockUpdate) string {
	reply := fmt.Sprintf("Noted: sold %d kg %s. Stock now %d.", *ex.Quantity, update.Item, update.NewStock)
	if ex.Price != nil {
		reply += fmt.Sprintf(" Price %d taka.", *ex.Price)
	}
	if update.AlertNeeded {
		reply += fmt.Sprintf("\nLow stock warning: %s is at %d, reorder point is %d. Time to restock.",
			update.Item, update.NewStock, update.ReorderPoint)
	}
	return reply
}

func composeQuantityPrompt(item string) string {
	return fmt.Sprintf("Got it, %s was sold. How much? Reply like \"5 kg %s\".", item, item)
}

func composeEcho(heard, suggestion string) string {
	reply := fmt.Sprintf("Sorry, I could not find a sale in that. I heard: \"%s\"", heard)
	if suggestion != "" {
		reply += fmt.Sprintf("\nDid you mean %s?", suggestion)
	}
	return reply
}

func composeUpdateError(item string, err error) string {
	switch {
	case errors.Is(err, inventory.ErrItemNotFound):
		return fmt.Sprintf("\"%s\" is not in your inventory yet, so I could not record the sale.", item)
	case errors.Is(err, inventory.ErrInvalidQuantity):
		return "That quantity does not look right, so I did not touch the ledger."
	default:
		return "Could not update the ledger right now. Please try again in a bit."
	}
}
