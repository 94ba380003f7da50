package service

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ReservationLedger records which stock decrements have succeeded and must be
// reversed if the order cannot be completed. Entries keep the order they were
// first recorded in; quantities for the same book are merged.
type ReservationLedger struct {
	entries []ledgerEntry
}

type ledgerEntry struct {
	bookID   uuid.UUID
	quantity int
}

func NewReservationLedger() *ReservationLedger {
	return &ReservationLedger{}
}

func (l *ReservationLedger) Record(bookID uuid.UUID, quantity int) {
	for i := range l.entries {
		if l.entries[i].bookID == bookID {
			l.entries[i].quantity += quantity
			return
		}
	}
	l.entries = append(l.entries, ledgerEntry{bookID: bookID, quantity: quantity})
}

func (l *ReservationLedger) Empty() bool { return len(l.entries) == 0 }

// CompensationManager reverses recorded reservations by incrementing stock
// back in the catalog.
type CompensationManager struct {
	catalog CatalogClient
}

func NewCompensationManager(catalog CatalogClient) *CompensationManager {
	return &CompensationManager{catalog: catalog}
}

// Compensate issues one increment per ledger entry, in recorded order. The
// calls are best-effort: a failed increment is logged and never retried, so
// the primary error being reported to the caller is not masked by a failed
// rollback. The cost is a possible stock drift when an increment fails.
func (m *CompensationManager) Compensate(ledger *ReservationLedger, token string) {
	for _, e := range ledger.entries {
		if err := m.catalog.IncrementStock(e.bookID, e.quantity, token); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"bookId":   e.bookID,
				"quantity": e.quantity,
			}).Error("failed to compensate reserved stock")
		}
	}
}
