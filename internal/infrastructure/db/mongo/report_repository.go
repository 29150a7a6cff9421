package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

const collectionReports = "daily_reports"

type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

func (r *ReportRepository) List(ctx context.Context) ([]domain.DailyReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	reports := []domain.DailyReport{}
	if err := cur.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	return reports, nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.DailyReport, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ReportRepository) FindByDate(ctx context.Context, date string) (*domain.DailyReport, error) {
	return r.findOne(ctx, bson.M{"date": date})
}

func (r *ReportRepository) findOne(ctx context.Context, filter bson.M) (*domain.DailyReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rep domain.DailyReport
	if err := r.col.FindOne(ctx, filter).Decode(&rep); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.DailyReport) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rep); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrReportExists
		}
		return err
	}
	return nil
}

func (r *ReportRepository) Update(ctx context.Context, id string, patch ports.ReportPatch) (*domain.DailyReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rep domain.DailyReport
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": reportPatchSet(patch)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rep)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrReportNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrReportExists
		}
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// EnsureIndexes enforces one report per date.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func reportPatchSet(p ports.ReportPatch) bson.M {
	set := bson.M{}
	if p.Date != nil {
		set["date"] = *p.Date
	}
	if p.OrdersInAssembly != nil {
		set["orders_in_assembly"] = *p.OrdersInAssembly
	}
	if p.SetsCount != nil {
		set["sets_count"] = *p.SetsCount
	}
	if p.OrdersAmount != nil {
		set["orders_amount"] = *p.OrdersAmount
	}
	if p.MoneyReceivedToday != nil {
		set["money_received_today"] = *p.MoneyReceivedToday
	}
	if p.CallAttempts != nil {
		set["call_attempts"] = *p.CallAttempts
	}
	if p.SuccessfulCalls != nil {
		set["successful_calls"] = *p.SuccessfulCalls
	}
	if p.SelfMessagedClient != nil {
		set["self_messaged_client"] = *p.SelfMessagedClient
	}
	if p.Responses != nil {
		set["responses"] = *p.Responses
	}
	if p.ChatsToday != nil {
		set["chats_today"] = *p.ChatsToday
	}
	if p.ClientsNoOrder != nil {
		set["clients_no_order"] = *p.ClientsNoOrder
	}
	if p.Comment != nil {
		set["comment"] = *p.Comment
	}
	return set
}
