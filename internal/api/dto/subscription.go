package dto

import (
	"github.com/shopspring/decimal"

	"github.com/subwatch/subwatch/internal/domain/subscription"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/types"
)

// CreateSubscriptionRequest creates a new subscription for the caller.
type CreateSubscriptionRequest struct {
	Name     string               `json:"name" binding:"required"`
	Price    decimal.Decimal      `json:"price" binding:"required"`
	Billing  types.BillingCadence `json:"billing" binding:"required"`
	DueDate  string               `json:"due_date" binding:"required"`
	Category string               `json:"category"`
	IconURL  string               `json:"icon_url"`
}

// ToSubscription converts the request to a domain subscription.
func (r *CreateSubscriptionRequest) ToSubscription(userID string) (*subscription.Subscription, error) {
	startDate, err := types.ParseCivilDate(r.DueDate)
	if err != nil {
		return nil, err
	}

	return &subscription.Subscription{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		UserID:    userID,
		Name:      r.Name,
		Price:     r.Price,
		Cadence:   r.Billing,
		StartDate: startDate,
		Category:  r.Category,
		IconURL:   r.IconURL,
		BaseModel: types.GetDefaultBaseModel(),
	}, nil
}

// UpdateSubscriptionRequest patches an existing subscription. Nil fields are
// left untouched.
type UpdateSubscriptionRequest struct {
	Name     *string               `json:"name,omitempty"`
	Price    *decimal.Decimal      `json:"price,omitempty"`
	Billing  *types.BillingCadence `json:"billing,omitempty"`
	DueDate  *string               `json:"due_date,omitempty"`
	Category *string               `json:"category,omitempty"`
	IconURL  *string               `json:"icon_url,omitempty"`
}

// Apply patches the domain subscription in place.
func (r *UpdateSubscriptionRequest) Apply(sub *subscription.Subscription) error {
	if r.Name != nil {
		sub.Name = *r.Name
	}
	if r.Price != nil {
		sub.Price = *r.Price
	}
	if r.Billing != nil {
		sub.Cadence = *r.Billing
	}
	if r.DueDate != nil {
		startDate, err := types.ParseCivilDate(*r.DueDate)
		if err != nil {
			return err
		}
		sub.StartDate = startDate
	}
	if r.Category != nil {
		sub.Category = *r.Category
	}
	if r.IconURL != nil {
		sub.IconURL = *r.IconURL
	}
	return nil
}

// Validate rejects an empty patch.
func (r *UpdateSubscriptionRequest) Validate() error {
	if r.Name == nil && r.Price == nil && r.Billing == nil &&
		r.DueDate == nil && r.Category == nil && r.IconURL == nil {
		return ierr.NewError("update request has no fields").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SubscriptionResponse is a subscription plus its derived renewal state.
type SubscriptionResponse struct {
	*subscription.Subscription
	RenewalDate      string `json:"renewal_date,omitempty"`
	DaysUntilRenewal *int   `json:"days_until_renewal,omitempty"`
}

// ListSubscriptionsResponse wraps a subscription listing.
type ListSubscriptionsResponse struct {
	Items []*SubscriptionResponse `json:"items"`
	Total int                     `json:"total"`
}

// SpendSummaryResponse aggregates a user's recurring spend. Totals are
// monthly- and yearly-equivalent: yearly prices are spread over 12 months
// and monthly prices multiplied out.
type SpendSummaryResponse struct {
	Subscriptions     int                        `json:"subscriptions"`
	MonthlyTotal      decimal.Decimal            `json:"monthly_total"`
	YearlyTotal       decimal.Decimal            `json:"yearly_total"`
	MonthlyByCategory map[string]decimal.Decimal `json:"monthly_by_category"`
}
