package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/bikesim-go/internal/domain/ledger"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM transaction repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create persists a new transaction
func (r *GormTransactionRepository) Create(ctx context.Context, transaction *ledger.Transaction) error {
	model := transactionToModel(transaction)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// FindByID retrieves a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id ledger.TransactionID, sessionID string) (*ledger.Transaction, error) {
	var model TransactionModel
	err := conn(ctx, r.db).
		Where("id = ? AND session_id = ?", id.String(), sessionID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ledger.ErrTransactionNotFound{
				ID:        id.String(),
				SessionID: sessionID,
			}
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	return modelToTransaction(&model)
}

// FindBySession retrieves transactions for a session with optional filtering
func (r *GormTransactionRepository) FindBySession(ctx context.Context, sessionID string, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	query := applyTransactionFilters(conn(ctx, r.db).Where("session_id = ?", sessionID), opts)

	orderBy := "timestamp DESC"
	if opts.OrderBy != "" {
		orderBy = opts.OrderBy
	}
	query = query.Order(orderBy)

	// Limit 0 means every matching row
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	transactions := make([]*ledger.Transaction, len(models))
	for i := range models {
		tx, err := modelToTransaction(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert transaction model: %w", err)
		}
		transactions[i] = tx
	}

	return transactions, nil
}

// CountBySession returns the count of transactions matching the criteria
func (r *GormTransactionRepository) CountBySession(ctx context.Context, sessionID string, opts ledger.QueryOptions) (int, error) {
	query := applyTransactionFilters(
		conn(ctx, r.db).Model(&TransactionModel{}).Where("session_id = ?", sessionID), opts)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return int(count), nil
}

func applyTransactionFilters(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	if opts.Period != nil {
		query = query.Where("month = ? AND year = ?", opts.Period.Month, opts.Period.Year)
	}
	if opts.Category != nil {
		query = query.Where("category = ?", opts.Category.String())
	}
	if opts.TransactionType != nil {
		query = query.Where("transaction_type = ?", opts.TransactionType.String())
	}
	if opts.PlayerOnly {
		query = query.Where("competitor_id IS NULL")
	}
	return query
}

func modelToTransaction(model *TransactionModel) (*ledger.Transaction, error) {
	id, err := ledger.ParseTransactionID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction ID in database: %w", err)
	}

	transactionType, err := ledger.ParseTransactionType(model.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type in database: %w", err)
	}

	category, err := ledger.ParseCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category in database: %w", err)
	}

	return ledger.ReconstructTransaction(
		id,
		model.SessionID,
		model.CompetitorID,
		shared.Period{Month: model.Month, Year: model.Year},
		model.Timestamp,
		transactionType,
		category,
		model.Amount,
		model.BalanceBefore,
		model.BalanceAfter,
		model.Description,
		model.RelatedEntityType,
		model.RelatedEntityID,
	), nil
}

func transactionToModel(tx *ledger.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                tx.ID().String(),
		SessionID:         tx.SessionID(),
		CompetitorID:      tx.CompetitorID(),
		Month:             tx.Period().Month,
		Year:              tx.Period().Year,
		Timestamp:         tx.Timestamp(),
		TransactionType:   tx.TransactionType().String(),
		Category:          tx.Category().String(),
		Amount:            tx.Amount(),
		BalanceBefore:     tx.BalanceBefore(),
		BalanceAfter:      tx.BalanceAfter(),
		Description:       tx.Description(),
		RelatedEntityType: tx.RelatedEntityType(),
		RelatedEntityID:   tx.RelatedEntityID(),
	}
}
