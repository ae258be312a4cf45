package driverrepo

import (
	"context"
	"errors"
	"net/http"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// MsgEmailTaken is the refusal message for a signup with a registered email.
const MsgEmailTaken = "An account with this email already exists."

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the driver with its route and history links.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewRefusalErrorWithStatus("createDriver", MsgEmailTaken, http.StatusConflict)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites the driver row and replaces its order links.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&DriverDTO{}).
			Where("id = ?", dto.ID).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("driver_id = ?", dto.ID).Delete(&DriverOrderDTO{}).Error; err != nil {
			return err
		}
		if len(dto.Orders) == 0 {
			return nil
		}
		return tx.Create(&dto.Orders).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return errs.NewRefusalErrorWithStatus("updateDriver", MsgEmailTaken, http.StatusConflict)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "id = ?", id.Bytes(), id.String())
}

// GetForUpdate locks the driver row with SELECT ... FOR UPDATE.
// Outside a transaction the lock is released as soon as the query returns.
func (r *GormDriverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(locked, "id = ?", id.Bytes(), id.String())
}

func (r *GormDriverRepository) GetByEmail(ctx context.Context, email string) (*driver.Driver, error) {
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	return r.first(r.db.WithContext(ctx), "email = ?", email, email)
}

func (r *GormDriverRepository) first(db *gorm.DB, query string, arg any, key string) (*driver.Driver, error) {
	var dto DriverDTO
	err := db.
		Preload("Orders", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("active, position")
		}).
		First(&dto, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", key)
		}
		return nil, err
	}

	return toDomain(dto)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
