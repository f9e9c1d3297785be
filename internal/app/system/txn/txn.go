// Package txn wraps multi-document workflows in a MongoDB transaction when
// the server supports one, and falls back to running the steps sequentially
// against standalones (where sessions/transactions are unavailable).
//
// The join-with-team-allocation and leave-then-join switch workflows touch
// a league, a panel, and one or two team documents; the transaction closes
// the capacity and orphaned-member race windows those sequences otherwise
// accept. The fallback preserves the original best-effort semantics.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTransaction runs fn inside a transaction on client. If the deployment
// does not support sessions or transactions, fn runs once without one.
func WithTransaction(ctx context.Context, client *mongo.Client, logger *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logger.Debug("mongo sessions unavailable, running workflow without transaction", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logger.Debug("mongo transactions unavailable, running workflow without transaction", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions (standalone servers, old wire versions).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if ce, ok := err.(mongo.CommandError); ok {
		cmdErr = ce
	}
	switch cmdErr.Code {
	case 20, 51, 263: // IllegalOperation variants raised for txns on standalones
		return true
	}

	msg := strings.ToLower(err.Error())
	hasTxn := strings.Contains(msg, "transaction")
	hasSession := strings.Contains(msg, "session")
	if !hasTxn && !hasSession {
		return false
	}
	if strings.Contains(msg, "replica set") ||
		strings.Contains(msg, "not supported") ||
		strings.Contains(msg, "illegal operation") {
		return true
	}
	return hasTxn && hasSession
}
