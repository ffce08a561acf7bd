package ledger

import (
	"time"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CreateAccountRequest represents a request to open an account
// @Description Request body for opening a charge account
type CreateAccountRequest struct {
	CustomerID     uuid.UUID          `json:"customer_id" binding:"required" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AccountNumber  string             `json:"account_number" binding:"required,min=1,max=50" example:"ACC-1001"`
	CreditLimit    *valueobject.Money `json:"credit_limit" binding:"omitempty,money_non_negative" swaggertype:"number" example:"1000.00"`
	OpeningBalance *valueobject.Money `json:"opening_balance" swaggertype:"number" example:"120.00"`
}

// UpdateAccountRequest changes the limit or status. The balance is never
// editable here.
// @Description Request body for changing an account limit or status
type UpdateAccountRequest struct {
	CreditLimit       *valueobject.Money `json:"credit_limit" binding:"omitempty,money_non_negative" swaggertype:"number" example:"1000.00"`
	RemoveCreditLimit bool               `json:"remove_credit_limit" example:"false"`
	Status            *string            `json:"status" binding:"omitempty,account_status" example:"ACTIVE"`
}

// AccountListFilter represents filter options for listing accounts
type AccountListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AccountResponse represents an account in API responses
// @Description Charge account with its stored balance
type AccountResponse struct {
	ID              uuid.UUID          `json:"id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	CustomerID      uuid.UUID          `json:"customer_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AccountNumber   string             `json:"account_number" example:"ACC-1001"`
	CreditLimit     *valueobject.Money `json:"credit_limit" swaggertype:"number" example:"1000.00"`
	AvailableCredit *valueobject.Money `json:"available_credit" swaggertype:"number" example:"120.00"`
	OpeningBalance  valueobject.Money  `json:"opening_balance" swaggertype:"number" example:"120.00"`
	CurrentBalance  valueobject.Money  `json:"current_balance" swaggertype:"number" example:"120.00"`
	Status          string             `json:"status" example:"ACTIVE"`
	OpenedDate      time.Time          `json:"opened_date"`
	Version         int                `json:"version" example:"1"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ToAccountResponse converts a domain Account to AccountResponse
func ToAccountResponse(a *ledger.Account) AccountResponse {
	return AccountResponse{
		ID:              a.ID,
		CustomerID:      a.CustomerID,
		AccountNumber:   a.AccountNumber,
		CreditLimit:     a.CreditLimit,
		AvailableCredit: a.AvailableCredit(),
		OpeningBalance:  a.OpeningBalance,
		CurrentBalance:  a.CurrentBalance,
		Status:          string(a.Status),
		OpenedDate:      a.OpenedDate,
		Version:         a.Version,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// EntryResponse represents a journal entry in API responses
// @Description One immutable journal entry
type EntryResponse struct {
	ID            uuid.UUID         `json:"id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AccountID     uuid.UUID         `json:"account_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Kind          string            `json:"kind" example:"DEBIT"`
	Amount        valueobject.Money `json:"amount" swaggertype:"number" example:"50.00"`
	BalanceBefore valueobject.Money `json:"balance_before" swaggertype:"number" example:"120.00"`
	BalanceAfter  valueobject.Money `json:"balance_after" swaggertype:"number" example:"120.00"`
	SourceType    string            `json:"source_type" example:"ORDER"`
	SourceID      string            `json:"source_id"`
	Reason        string            `json:"reason,omitempty" example:"order updated"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ToEntryResponse converts a domain Entry to EntryResponse
func ToEntryResponse(e *ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		AccountID:     e.AccountID,
		Kind:          e.Kind.String(),
		Amount:        e.Amount,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		SourceType:    string(e.SourceType),
		SourceID:      e.SourceID,
		Reason:        e.Reason,
		CreatedAt:     e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of entries
func ToEntryResponses(entries []ledger.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ReconciliationReport compares the stored balance against what the orders,
// payments and journal say it should be
// @Description Stored balance compared against orders, payments and the journal
type ReconciliationReport struct {
	AccountID       uuid.UUID         `json:"account_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	StoredBalance   valueobject.Money `json:"stored_balance" swaggertype:"number" example:"120.00"`
	OpeningBalance  valueobject.Money `json:"opening_balance" swaggertype:"number" example:"120.00"`
	OrderTotal      valueobject.Money `json:"order_total" swaggertype:"number" example:"120.00"`
	PaymentTotal    valueobject.Money `json:"payment_total" swaggertype:"number" example:"120.00"`
	ExpectedBalance valueobject.Money `json:"expected_balance" swaggertype:"number" example:"120.00"`
	JournalBalance  valueobject.Money `json:"journal_balance" swaggertype:"number" example:"120.00"`
	EntryCount      int               `json:"entry_count" example:"3"`
	Difference      valueobject.Money `json:"difference" swaggertype:"number" example:"120.00"`
	Consistent      bool              `json:"consistent" example:"true"`
	CheckedAt       time.Time         `json:"checked_at"`
}

// Statement is the document archived by ExportStatement
type Statement struct {
	Account     AccountResponse `json:"account"`
	Entries     []EntryResponse `json:"entries"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// StatementReceipt tells the caller where the statement was stored
// @Description Location of an exported statement
type StatementReceipt struct {
	AccountID   uuid.UUID `json:"account_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	StorageKey  string    `json:"storage_key" example:"statements/acc.json"`
	EntryCount  int       `json:"entry_count" example:"3"`
	DownloadURL string    `json:"download_url,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}
