package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// GormSessionRepository implements session.Repository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM session repository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Add inserts a new session
func (r *GormSessionRepository) Add(ctx context.Context, s *session.Session) error {
	model := sessionToModel(s)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Save updates the clock and balance of an existing session
func (r *GormSessionRepository) Save(ctx context.Context, s *session.Session) error {
	result := conn(ctx, r.db).Model(&SessionModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"name":          s.Name,
			"current_month": s.Period.Month,
			"current_year":  s.Period.Year,
			"balance":       s.Balance,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", session.ErrSessionNotFound, s.ID)
	}
	return nil
}

// FindByID loads a session
func (r *GormSessionRepository) FindByID(ctx context.Context, id string) (*session.Session, error) {
	var model SessionModel
	err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return modelToSession(&model), nil
}

// List returns every session, newest first
func (r *GormSessionRepository) List(ctx context.Context) ([]*session.Session, error) {
	var models []SessionModel
	if err := conn(ctx, r.db).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sessions := make([]*session.Session, len(models))
	for i := range models {
		sessions[i] = modelToSession(&models[i])
	}
	return sessions, nil
}

func sessionToModel(s *session.Session) *SessionModel {
	return &SessionModel{
		ID:           s.ID,
		Name:         s.Name,
		CurrentMonth: s.Period.Month,
		CurrentYear:  s.Period.Year,
		Balance:      s.Balance,
		CreatedAt:    s.CreatedAt,
	}
}

func modelToSession(m *SessionModel) *session.Session {
	return &session.Session{
		ID:        m.ID,
		Name:      m.Name,
		Period:    shared.Period{Month: m.CurrentMonth, Year: m.CurrentYear},
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
	}
}
