// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Problems are aggregated so startup can fail fast with the full picture.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureTrackingLedgers(ctx, db); err != nil {
		problems = append(problems, "tracking_ledgers: "+err.Error())
	}
	if err := ensurePlannings(ctx, db); err != nil {
		problems = append(problems, "plannings: "+err.Error())
	}
	if err := ensureMachines(ctx, db); err != nil {
		problems = append(problems, "machines: "+err.Error())
	}
	if err := ensureOperators(ctx, db); err != nil {
		problems = append(problems, "operators: "+err.Error())
	}
	if err := ensureRawItems(ctx, db); err != nil {
		problems = append(problems, "raw_items: "+err.Error())
	}
	if err := ensureStockItems(ctx, db); err != nil {
		problems = append(problems, "stock_items: "+err.Error())
	}
	if err := ensureWorkOrders(ctx, db); err != nil {
		problems = append(problems, "work_orders: "+err.Error())
	}
	if err := ensureAuditEvents(ctx, db); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func create(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	opts := options.CreateIndexes().SetMaxTime(20 * time.Second)
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, models, opts)
	return err
}

// One ledger document per UTC day.
func ensureTrackingLedgers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "tracking_ledgers", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("uniq_date").SetUnique(true),
		},
	})
}

// One planning record per work order.
func ensurePlannings(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "plannings", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "work_order_id", Value: 1}},
			Options: options.Index().SetName("uniq_work_order_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
	})
}

func ensureMachines(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "machines", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code_ci", Value: 1}},
			Options: options.Index().SetName("uniq_code_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetName("status_type"),
		},
	})
}

func ensureOperators(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "operators", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}},
			Options: options.Index().SetName("full_name_ci"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
	})
}

func ensureRawItems(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "raw_items", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_name_ci").SetUnique(true),
		},
	})
}

func ensureStockItems(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "stock_items", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_name_ci").SetUnique(true),
		},
	})
}

func ensureWorkOrders(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "work_orders", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "work_order_id", Value: 1}},
			Options: options.Index().SetName("uniq_work_order_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "audit_events", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "event_type", Value: 1}},
			Options: options.Index().SetName("category_event_type"),
		},
	})
}
