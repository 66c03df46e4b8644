package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"optiontracker/internal/models"
	"optiontracker/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ repository.Repository = (*Store)(nil)

// --- Users ------------------------------------------------------------------

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, repository.ErrNotFound
	}
	var item models.User
	err := s.db.WithContext(ctx).First(&item, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateUser(ctx context.Context, item *models.User) error {
	if item == nil {
		return nil
	}
	item.Email = normalizeEmail(item.Email)
	return s.db.WithContext(ctx).Create(item).Error
}

// --- Strategies -------------------------------------------------------------

func (s *Store) SaveStrategy(ctx context.Context, item *models.Strategy) error {
	if item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		legs := item.Legs
		item.Legs = nil
		defer func() { item.Legs = legs }()

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ticker",
				"objective",
				"structure",
				"status",
				"total_entry_premium",
				"start_date",
				"initial_spot_price",
				"stop_loss_percent",
				"max_gain_percent",
				"updated_at",
			}),
		}).Create(item).Error; err != nil {
			return err
		}

		// The leg list is replaced wholesale; legs have no identity of
		// their own across saves.
		if err := tx.Where("strategy_id = ?", item.ID).Delete(&models.Leg{}).Error; err != nil {
			return err
		}
		for i := range legs {
			legs[i].ID = 0
			legs[i].StrategyID = item.ID
			legs[i].Position = i
		}
		if len(legs) == 0 {
			return nil
		}
		return tx.Create(&legs).Error
	})
}

func (s *Store) GetStrategy(ctx context.Context, id, ownerEmail string) (*models.Strategy, error) {
	var item models.Strategy
	err := s.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&item, "id = ? AND owner_email = ?", id, normalizeEmail(ownerEmail)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListStrategiesByOwner(ctx context.Context, ownerEmail string, params repository.ListStrategiesParams) ([]models.Strategy, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Strategy{}).
		Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("owner_email = ?", normalizeEmail(ownerEmail))
	if params.Structure != nil && strings.TrimSpace(*params.Structure) != "" {
		query = query.Where("structure = ?", strings.TrimSpace(*params.Structure))
	}
	if params.Objective != nil && strings.TrimSpace(*params.Objective) != "" {
		query = query.Where("objective = ?", strings.TrimSpace(*params.Objective))
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	var items []models.Strategy
	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	// Parent symbol lives on legs, so that filter is applied after load.
	if params.Parent != nil && strings.TrimSpace(*params.Parent) != "" {
		parent := strings.TrimSpace(*params.Parent)
		filtered := items[:0]
		for _, item := range items {
			if item.FirstParentSymbol() == parent {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	return items, nil
}

func (s *Store) DeleteStrategy(ctx context.Context, id, ownerEmail string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, normalizeEmail(ownerEmail)).
		Delete(&models.Strategy{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return s.db.WithContext(ctx).Where("strategy_id = ?", id).Delete(&models.Leg{}).Error
}

func (s *Store) ListOpenStrategies(ctx context.Context) ([]models.Strategy, error) {
	var items []models.Strategy
	err := s.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("status = ?", models.StatusOpen).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- Quote / underlying snapshots -------------------------------------------

func (s *Store) UpsertQuoteSnapshot(ctx context.Context, item *models.QuoteSnapshot) error {
	if item == nil || strings.TrimSpace(item.Ticker) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mark", "bid", "ask", "last", "close", "fetched_at", "updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListQuoteSnapshots(ctx context.Context, tickers []string) ([]models.QuoteSnapshot, error) {
	if len(tickers) == 0 {
		return nil, nil
	}
	var items []models.QuoteSnapshot
	if err := s.db.WithContext(ctx).Where("ticker IN ?", tickers).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpsertUnderlyingSnapshot(ctx context.Context, item *models.UnderlyingSnapshot) error {
	if item == nil || strings.TrimSpace(item.Symbol) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"close_price", "iv", "iv_rank", "iv_percentile", "fetched_at", "updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListUnderlyingSnapshots(ctx context.Context, symbols []string) ([]models.UnderlyingSnapshot, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	var items []models.UnderlyingSnapshot
	if err := s.db.WithContext(ctx).Where("symbol IN ?", symbols).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Alerts -----------------------------------------------------------------

func (s *Store) InsertAlert(ctx context.Context, item *models.Alert) error {
	if item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListAlertsByStrategy(ctx context.Context, strategyID, ownerEmail string) ([]models.Alert, error) {
	var items []models.Alert
	err := s.db.WithContext(ctx).
		Where("strategy_id = ? AND owner_email = ?", strategyID, normalizeEmail(ownerEmail)).
		Order("triggered_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) LastAlertAt(ctx context.Context, strategyID, rule string) (*time.Time, error) {
	var item models.Alert
	err := s.db.WithContext(ctx).
		Where("strategy_id = ? AND rule = ?", strategyID, rule).
		Order("triggered_at desc").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := item.TriggeredAt
	return &t, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
