package ports

import (
	"context"

	"github.com/crmdesk/crm-system/internal/core/analytics"
	"github.com/crmdesk/crm-system/internal/core/domain"
)

// ClientInput carries all data needed to create a client. It is also the
// POST /clients wire payload; omitted numbers default to zero.
type ClientInput struct {
	FirstName            string                    `json:"first_name" validate:"required"`
	LastName             string                    `json:"last_name" validate:"required"`
	Phone                string                    `json:"phone"`
	ClientStatus         string                    `json:"client_status" validate:"required"`
	CRMLink              string                    `json:"crm_link" validate:"omitempty,url"`
	ExpectedOrderSets    int                       `json:"expected_order_sets" validate:"gte=0"`
	ExpectedOrderAmount  float64                   `json:"expected_order_amount" validate:"gte=0"`
	SetsOrderedThisMonth int                       `json:"sets_ordered_this_month" validate:"gte=0"`
	AmountThisMonth      float64                   `json:"amount_this_month" validate:"gte=0"`
	Debt                 float64                   `json:"debt"`
	LastContactDate      string                    `json:"last_contact_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TaskDescription      string                    `json:"task_description"`
	Comment              string                    `json:"comment"`
	ActionStatus         domain.ActionStatusBitmap `json:"action_status" validate:"omitempty,dive,keys,statuskey,endkeys"`
}

// ClientPatch is a partial update: nil fields are left untouched. A non-nil
// ActionStatus replaces the whole bitmap (last write wins).
type ClientPatch struct {
	FirstName            *string                   `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName             *string                   `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Phone                *string                   `json:"phone,omitempty"`
	ClientStatus         *string                   `json:"client_status,omitempty" validate:"omitempty,min=1"`
	CRMLink              *string                   `json:"crm_link,omitempty" validate:"omitempty,url"`
	ExpectedOrderSets    *int                      `json:"expected_order_sets,omitempty" validate:"omitempty,gte=0"`
	ExpectedOrderAmount  *float64                  `json:"expected_order_amount,omitempty" validate:"omitempty,gte=0"`
	SetsOrderedThisMonth *int                      `json:"sets_ordered_this_month,omitempty" validate:"omitempty,gte=0"`
	AmountThisMonth      *float64                  `json:"amount_this_month,omitempty" validate:"omitempty,gte=0"`
	Debt                 *float64                  `json:"debt,omitempty"`
	LastContactDate      *string                   `json:"last_contact_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TaskDescription      *string                   `json:"task_description,omitempty"`
	Comment              *string                   `json:"comment,omitempty"`
	ActionStatus         domain.ActionStatusBitmap `json:"action_status,omitempty" validate:"omitempty,dive,keys,statuskey,endkeys"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p ClientPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil &&
		p.ClientStatus == nil && p.CRMLink == nil && p.ExpectedOrderSets == nil &&
		p.ExpectedOrderAmount == nil && p.SetsOrderedThisMonth == nil &&
		p.AmountThisMonth == nil && p.Debt == nil && p.LastContactDate == nil &&
		p.TaskDescription == nil && p.Comment == nil && p.ActionStatus == nil
}

// Apply returns a copy of c with the patch applied.
func (p ClientPatch) Apply(c domain.Client) domain.Client {
	setString(&c.FirstName, p.FirstName)
	setString(&c.LastName, p.LastName)
	setString(&c.Phone, p.Phone)
	setString(&c.ClientStatus, p.ClientStatus)
	setString(&c.CRMLink, p.CRMLink)
	setString(&c.LastContactDate, p.LastContactDate)
	setString(&c.TaskDescription, p.TaskDescription)
	setString(&c.Comment, p.Comment)
	if p.ExpectedOrderSets != nil {
		c.ExpectedOrderSets = *p.ExpectedOrderSets
	}
	if p.ExpectedOrderAmount != nil {
		c.ExpectedOrderAmount = *p.ExpectedOrderAmount
	}
	if p.SetsOrderedThisMonth != nil {
		c.SetsOrderedThisMonth = *p.SetsOrderedThisMonth
	}
	if p.AmountThisMonth != nil {
		c.AmountThisMonth = *p.AmountThisMonth
	}
	if p.Debt != nil {
		c.Debt = *p.Debt
	}
	if p.ActionStatus != nil {
		c.ActionStatus = p.ActionStatus.Clone()
	} else {
		c.ActionStatus = c.ActionStatus.Clone()
	}
	return c
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// ClientService defines use-case operations for the client collection.
type ClientService interface {
	List(ctx context.Context, statusFilter string) ([]domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, input ClientInput) (*domain.Client, error)
	Update(ctx context.Context, id string, patch ClientPatch) (*domain.Client, error)
	UpdateComment(ctx context.Context, id, comment string) error
	UpdateActionStatus(ctx context.Context, id string, flags domain.ActionStatusBitmap) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context) (analytics.Statistics, error)
	Summary(ctx context.Context) (analytics.Summary, error)
}
