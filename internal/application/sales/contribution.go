package sales

import (
	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// contributionChange returns the adjustments that move an order's
// contribution from (oldAccount, oldTotal) to (newAccount, newTotal).
// When the account changes the old account is credited before the new one is
// charged.
func contributionChange(src ledger.Source, oldAccount *uuid.UUID, oldTotal valueobject.Money, newAccount *uuid.UUID, newTotal valueobject.Money, reason string) []ledger.Adjustment {
	switch {
	case oldAccount == nil && newAccount == nil:
		return nil
	case oldAccount != nil && newAccount != nil && *oldAccount == *newAccount:
		return []ledger.Adjustment{ledger.ForTotalChange(*newAccount, newTotal.Sub(oldTotal), src, reason)}
	}

	var adjs []ledger.Adjustment
	if oldAccount != nil {
		adjs = append(adjs, ledger.Reversal(*oldAccount, oldTotal.Neg(), src, reason+": moved off account"))
	}
	if newAccount != nil {
		adjs = append(adjs, ledger.Charge(*newAccount, newTotal, src, reason+": moved onto account"))
	}
	return adjs
}
