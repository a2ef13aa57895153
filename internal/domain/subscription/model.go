package subscription

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/types"
)

// Subscription represents a recurring charge owned by one user. StartDate is
// the anchor for all cadence computation; renewal dates are always derived
// from it on demand, never stored.
type Subscription struct {
	ID        string               `json:"id" gorm:"column:id;primaryKey"`
	UserID    string               `json:"user_id" gorm:"column:user_id;index"`
	Name      string               `json:"name" gorm:"column:name"`
	Price     decimal.Decimal      `json:"price" gorm:"column:price;type:decimal(12,2)"`
	Cadence   types.BillingCadence `json:"billing" gorm:"column:billing;type:varchar(20)"`
	StartDate time.Time            `json:"due_date" gorm:"column:due_date"`
	Category  string               `json:"category,omitempty" gorm:"column:category"`
	IconURL   string               `json:"icon_url,omitempty" gorm:"column:icon_url"`
	types.BaseModel
}

func (s *Subscription) TableName() string {
	return "subscriptions"
}

// Validate checks the subscription invariants.
func (s *Subscription) Validate() error {
	if s.Name == "" {
		return ierr.NewError("subscription name is required").
			Mark(ierr.ErrValidation)
	}
	if !s.Price.IsPositive() {
		return ierr.NewError("subscription price must be positive").
			WithReportableDetails(map[string]interface{}{
				"price": s.Price,
			}).
			Mark(ierr.ErrValidation)
	}
	if err := s.Cadence.Validate(); err != nil {
		return err
	}
	if s.StartDate.IsZero() {
		return ierr.NewError("subscription start date is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Filter narrows subscription list queries.
type Filter struct {
	Category string
}

// Repository defines the interface for subscription persistence operations
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, userID, id string) (*Subscription, error)
	List(ctx context.Context, userID string, filter *Filter) ([]*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, userID, id string) error
}
