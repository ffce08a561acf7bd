package ledger

import (
	"time"

	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Entry is an immutable journal record of one applied adjustment.
// BalanceAfter always equals BalanceBefore + Amount.
type Entry struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	Kind          Kind
	Amount        valueobject.Money
	BalanceBefore valueobject.Money
	BalanceAfter  valueobject.Money
	SourceType    SourceType
	SourceID      string
	Reason        string
	CreatedAt     time.Time
}

func newEntry(accountID uuid.UUID, adj Adjustment, before, after valueobject.Money) *Entry {
	return &Entry{
		ID:            uuid.New(),
		AccountID:     accountID,
		Kind:          adj.Kind,
		Amount:        adj.Delta,
		BalanceBefore: before,
		BalanceAfter:  after,
		SourceType:    adj.Source.Type,
		SourceID:      adj.Source.ID,
		Reason:        adj.Reason,
		CreatedAt:     time.Now(),
	}
}

// Compensation returns the reversal that undoes this entry
func (e *Entry) Compensation() Adjustment {
	return Reversal(e.AccountID, e.Amount.Neg(), Source{Type: e.SourceType, ID: e.SourceID}, "compensation: "+e.Reason)
}

// IsCharge returns true if the entry increased the balance through a charge
func (e *Entry) IsCharge() bool {
	return e.Kind == KindCharge
}
