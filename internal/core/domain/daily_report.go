package domain

import "time"

// DailyReport is the operator's end-of-day activity summary. At most one
// report exists per Date (YYYY-MM-DD).
type DailyReport struct {
	ID                 string    `json:"id" bson:"_id"`
	Date               string    `json:"date" bson:"date"`
	OrdersInAssembly   int       `json:"orders_in_assembly" bson:"orders_in_assembly"`
	SetsCount          int       `json:"sets_count" bson:"sets_count"`
	OrdersAmount       float64   `json:"orders_amount" bson:"orders_amount"`
	MoneyReceivedToday float64   `json:"money_received_today" bson:"money_received_today"`
	CallAttempts       int       `json:"call_attempts" bson:"call_attempts"`
	SuccessfulCalls    int       `json:"successful_calls" bson:"successful_calls"`
	SelfMessagedClient int       `json:"self_messaged_client" bson:"self_messaged_client"`
	Responses          int       `json:"responses" bson:"responses"`
	ChatsToday         int       `json:"chats_today" bson:"chats_today"`
	ClientsNoOrder     int       `json:"clients_no_order" bson:"clients_no_order"`
	Comment            string    `json:"comment" bson:"comment"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}
