package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// stockEntryRepository implements the domain.StockEntryRepository interface using GORM.
// The ledger is insert-only: no update or delete method exists here.
type stockEntryRepository struct {
	db *gorm.DB
}

// NewStockEntryRepository is the constructor for stockEntryRepository.
func NewStockEntryRepository(db *gorm.DB) repository.StockEntryRepository {
	return &stockEntryRepository{db: db}
}

// Append writes one ledger entry.
func (repo *stockEntryRepository) Append(ctx context.Context, entry *entity.StockEntry) error {
	entryM := fromStockEntryDomain(entry)

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append stock entry")
	}

	entry.ID = entryM.ID
	entry.RecordedAt = entryM.RecordedAt

	return nil
}

// List retrieves the full ledger, newest first.
func (repo *stockEntryRepository) List(ctx context.Context) ([]*entity.StockEntry, error) {
	var entryMs []model.StockEntryModel
	if err := repo.db.WithContext(ctx).Order("recorded_at DESC").Find(&entryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stock entries")
	}

	entries := make([]*entity.StockEntry, 0, len(entryMs))
	for i := range entryMs {
		entries = append(entries, toStockEntryDomain(&entryMs[i]))
	}

	return entries, nil
}

// toStockEntryDomain converts a GORM StockEntryModel to a domain StockEntry entity.
func toStockEntryDomain(data *model.StockEntryModel) *entity.StockEntry {
	if data == nil {
		return nil
	}

	return &entity.StockEntry{
		ID:          data.ID,
		ProductID:   data.ProductID,
		ProductName: data.ProductName,
		Delta:       data.Delta,
		Total:       data.Total,
		RecordedAt:  data.RecordedAt,
	}
}

// fromStockEntryDomain converts a domain StockEntry entity to a GORM StockEntryModel.
func fromStockEntryDomain(data *entity.StockEntry) *model.StockEntryModel {
	if data == nil {
		return nil
	}

	return &model.StockEntryModel{
		ID:          data.ID,
		ProductID:   data.ProductID,
		ProductName: data.ProductName,
		Delta:       data.Delta,
		Total:       data.Total,
	}
}
