package persistence

import (
	"context"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEntryRepository implements ledger.EntryRepository using GORM.
// Entries are only ever inserted.
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// Append inserts a journal entry
func (r *GormEntryRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	return translateError(r.db.WithContext(ctx).Create(models.LedgerEntryModelFromDomain(entry)).Error, "Ledger entry already exists")
}

// FindByAccount pages through an account's journal
func (r *GormEntryRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]ledger.Entry, int64, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).Where("account_id = ?", accountID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.LedgerEntryModel
	dir := ValidateSortOrder(filter.OrderDir)
	if err := query.
		Order("created_at " + dir).
		Order("id " + dir).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toEntries(rows), total, nil
}

// ListByAccount returns the full journal of an account in posting order
func (r *GormEntryRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Entry, error) {
	var rows []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

func toEntries(rows []models.LedgerEntryModel) []ledger.Entry {
	entries := make([]ledger.Entry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries
}

var _ ledger.EntryRepository = (*GormEntryRepository)(nil)
