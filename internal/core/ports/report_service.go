package ports

import (
	"context"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// ReportInput is the create payload for a daily report.
type ReportInput struct {
	Date               string  `json:"date" validate:"required,datetime=2006-01-02"`
	OrdersInAssembly   int     `json:"orders_in_assembly" validate:"gte=0"`
	SetsCount          int     `json:"sets_count" validate:"gte=0"`
	OrdersAmount       float64 `json:"orders_amount" validate:"gte=0"`
	MoneyReceivedToday float64 `json:"money_received_today" validate:"gte=0"`
	CallAttempts       int     `json:"call_attempts" validate:"gte=0"`
	SuccessfulCalls    int     `json:"successful_calls" validate:"gte=0"`
	SelfMessagedClient int     `json:"self_messaged_client" validate:"gte=0"`
	Responses          int     `json:"responses" validate:"gte=0"`
	ChatsToday         int     `json:"chats_today" validate:"gte=0"`
	ClientsNoOrder     int     `json:"clients_no_order" validate:"gte=0"`
	Comment            string  `json:"comment"`
}

// ReportPatch is a partial daily report update.
type ReportPatch struct {
	Date               *string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	OrdersInAssembly   *int     `json:"orders_in_assembly,omitempty" validate:"omitempty,gte=0"`
	SetsCount          *int     `json:"sets_count,omitempty" validate:"omitempty,gte=0"`
	OrdersAmount       *float64 `json:"orders_amount,omitempty" validate:"omitempty,gte=0"`
	MoneyReceivedToday *float64 `json:"money_received_today,omitempty" validate:"omitempty,gte=0"`
	CallAttempts       *int     `json:"call_attempts,omitempty" validate:"omitempty,gte=0"`
	SuccessfulCalls    *int     `json:"successful_calls,omitempty" validate:"omitempty,gte=0"`
	SelfMessagedClient *int     `json:"self_messaged_client,omitempty" validate:"omitempty,gte=0"`
	Responses          *int     `json:"responses,omitempty" validate:"omitempty,gte=0"`
	ChatsToday         *int     `json:"chats_today,omitempty" validate:"omitempty,gte=0"`
	ClientsNoOrder     *int     `json:"clients_no_order,omitempty" validate:"omitempty,gte=0"`
	Comment            *string  `json:"comment,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p ReportPatch) IsEmpty() bool {
	return p.Date == nil && p.OrdersInAssembly == nil && p.SetsCount == nil &&
		p.OrdersAmount == nil && p.MoneyReceivedToday == nil && p.CallAttempts == nil &&
		p.SuccessfulCalls == nil && p.SelfMessagedClient == nil && p.Responses == nil &&
		p.ChatsToday == nil && p.ClientsNoOrder == nil && p.Comment == nil
}

// ReportService manages daily reports.
type ReportService interface {
	List(ctx context.Context) ([]domain.DailyReport, error)
	Get(ctx context.Context, id string) (*domain.DailyReport, error)
	Create(ctx context.Context, in ReportInput) (*domain.DailyReport, error)
	Update(ctx context.Context, id string, patch ReportPatch) (*domain.DailyReport, error)
	Delete(ctx context.Context, id string) error
}
