// Package txn wraps multi-document work in a MongoDB transaction.
//
// Run executes fn inside a session transaction so that either every write
// commits or none do. Standalone mongod instances (and some hosted
// document-database variants) do not support transactions; in that case Run
// detects the condition via IsNotSupported and re-executes fn directly,
// logging the downgrade. Callers structure fn so the conditional writes
// themselves guard invariants (e.g. $gte filters on quantity deductions).
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn within a transaction on db's client, falling back to a
// plain (non-transactional) execution when the server does not support
// transactions. fn must be idempotent-safe for the retry semantics of
// mongo's WithTransaction.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return runWithoutTxn(ctx, log, fn)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return runWithoutTxn(ctx, log, fn)
	}
	return err
}

func runWithoutTxn(ctx context.Context, log *zap.Logger, fn func(ctx context.Context) error) error {
	if log != nil {
		log.Warn("transactions not supported by server; running writes without transaction")
	}
	return fn(ctx)
}

// Server error codes that indicate transactions are unavailable:
// 20 IllegalOperation variants on standalone, 51 and 263 transaction-number
// and API-mismatch errors.
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone deployment, unsupported server).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if ok := asCommandError(err, &cmdErr); ok {
		return notSupportedCodes[cmdErr.Code]
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") ||
			strings.Contains(msg, "session") ||
			strings.Contains(msg, "illegal operation")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}

func asCommandError(err error, target *mongo.CommandError) bool {
	if ce, ok := err.(mongo.CommandError); ok {
		*target = ce
		return true
	}
	return false
}
