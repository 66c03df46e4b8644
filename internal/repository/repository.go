package repository

import (
	"context"
	"errors"
	"time"

	"optiontracker/internal/models"
)

// ErrNotFound is returned by lookups and owner-scoped mutations when the
// target row does not exist (or belongs to another user; the two cases are
// indistinguishable on purpose).
var ErrNotFound = errors.New("not found")

// ListStrategiesParams narrows ListStrategiesByOwner. Nil fields match all.
type ListStrategiesParams struct {
	Parent    *string
	Structure *string
	Objective *string
	Status    *string
}

// Repository is the persistence boundary. Handlers and services depend on
// this interface only; the gorm store under repository/gorm implements it.
type Repository interface {
	// Users
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, item *models.User) error

	// Strategies. SaveStrategy replaces the leg list wholesale inside one
	// transaction; last write wins on concurrent saves.
	SaveStrategy(ctx context.Context, item *models.Strategy) error
	GetStrategy(ctx context.Context, id, ownerEmail string) (*models.Strategy, error)
	ListStrategiesByOwner(ctx context.Context, ownerEmail string, params ListStrategiesParams) ([]models.Strategy, error)
	DeleteStrategy(ctx context.Context, id, ownerEmail string) error
	ListOpenStrategies(ctx context.Context) ([]models.Strategy, error)

	// Quote / underlying hot tables, refreshed by the cron job.
	UpsertQuoteSnapshot(ctx context.Context, item *models.QuoteSnapshot) error
	ListQuoteSnapshots(ctx context.Context, tickers []string) ([]models.QuoteSnapshot, error)
	UpsertUnderlyingSnapshot(ctx context.Context, item *models.UnderlyingSnapshot) error
	ListUnderlyingSnapshots(ctx context.Context, symbols []string) ([]models.UnderlyingSnapshot, error)

	// Alerts
	InsertAlert(ctx context.Context, item *models.Alert) error
	ListAlertsByStrategy(ctx context.Context, strategyID, ownerEmail string) ([]models.Alert, error)
	LastAlertAt(ctx context.Context, strategyID, rule string) (*time.Time, error)
}
