package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tahmidrayat/dukandost/internal/repository/messages"
	"github.com/tahmidrayat/dukandost/internal/repository/sheets"
	"github.com/tahmidrayat/dukandost/internal/service/inventory"
)

const (
	dateLayout  = "2006-01-02"
	ledgerRange = "Ledger!A:D"
)

// Service builds the daily WhatsApp summary for the shopkeeper and, when a
// ledger sheet is configured, exports the same numbers as a spreadsheet row.
type Service struct {
	inventory *inventory.Service
	msgLog    messages.Log
	sheets    sheets.Repository
	logger    *zap.Logger
}

// NewService wires a new reporting service. msgLog and sheetsRepo may be nil;
// the summary then skips the message count and the sheet export.
func NewService(inventorySvc *inventory.Service, msgLog messages.Log, sheetsRepo sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inventory: inventorySvc,
		msgLog:    msgLog,
		sheets:    sheetsRepo,
		logger:    logger,
	}
}

// DailySummary renders the end-of-day report for the given day: messages
// received since midnight and every item sitting at or below its reorder
// point. A failed sheet export only logs; the WhatsApp summary still goes out.
func (s *Service) DailySummary(ctx context.Context, day time.Time) (string, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	var msgCount int64
	if s.msgLog != nil {
		count, err := s.msgLog.CountSince(ctx, startOfDay.UTC())
		if err != nil {
			s.logger.Warn("message count unavailable for summary", zap.Error(err))
		} else {
			msgCount = count
		}
	}

	low, err := s.inventory.LowStock(ctx)
	if err != nil {
		return "", fmt.Errorf("collect low stock items: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DukanDost daily summary for %s\n", day.Format(dateLayout))
	fmt.Fprintf(&b, "Messages received: %d\n", msgCount)

	if len(low) == 0 {
		b.WriteString("All items are above their reorder points.")
	} else {
		b.WriteString("Items to restock:")
		for _, item := range low {
			fmt.Fprintf(&b, "\n- %s: %d left (reorder at %d)", item.Name, item.CurrentStock, item.ReorderPoint)
		}
	}

	summary := b.String()

	if s.sheets != nil {
		lowNames := make([]string, 0, len(low))
		for _, item := range low {
			lowNames = append(lowNames, item.Name)
		}
		row := []interface{}{day.Format(dateLayout), msgCount, len(low), strings.Join(lowNames, ", ")}
		if err := s.sheets.AppendRow(ctx, ledgerRange, row); err != nil {
			s.logger.Warn("ledger sheet export failed", zap.Error(err))
		}
	}

	return summary, nil
}
