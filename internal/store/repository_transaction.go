package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/models"
)

// transactionRepository is the PostgreSQL-backed implementation of
// [TransactionRepository].
//
// Completion is intentionally a conditional UPDATE keyed on the pending
// status: a payment provider may deliver the same notification several
// times, and only the delivery that actually performs the
// pending → completed transition is allowed to credit the account.
type transactionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTransactionRepository constructs a [TransactionRepository] backed by
// the provided database connection and logger.
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	logger.Debug().Msg("creating transaction repository")
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTransaction persists a new pending transaction created at checkout
// initiation and returns it with server-assigned fields.
func (r *transactionRepository) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTransaction,
		tx.UserID, tx.Amount, tx.Credits, tx.PaymentMethod, tx.PaymentID)

	created, err := scanTransaction(row)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.CreateTransaction").Msg("error creating transaction")
		return models.Transaction{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// SetPaymentID stores the provider-side order reference on an existing
// transaction once the provider order has been created.
func (r *transactionRepository) SetPaymentID(ctx context.Context, id int64, paymentID string) error {
	if _, err := r.db.ExecContext(ctx, setTransactionPaymentID, id, paymentID); err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by internal id.
//
// Returns [ErrNoTransactionWasFound] when no transaction matches.
func (r *transactionRepository) FindTransactionByID(ctx context.Context, id int64) (models.Transaction, error) {
	return r.findOne(ctx, findTransactionByID, id)
}

// FindTransactionByPaymentID retrieves a transaction by the provider-side
// payment reference for the given payment method.
//
// Returns [ErrNoTransactionWasFound] when no transaction matches.
func (r *transactionRepository) FindTransactionByPaymentID(ctx context.Context, method, paymentID string) (models.Transaction, error) {
	return r.findOne(ctx, findTransactionByPaymentID, method, paymentID)
}

func (r *transactionRepository) findOne(ctx context.Context, query string, args ...any) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrNoTransactionWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.findOne").Msg("error scanning transaction")
		return models.Transaction{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return tx, nil
}

// FindTransactionsByUser lists the user's transactions, newest first.
func (r *transactionRepository) FindTransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findTransactionsByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.FindTransactionsByUser").Msg("error querying transactions")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected DB error: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return transactions, nil
}

// CompleteTransaction performs the pending → completed transition for the
// transaction with the given id, stamping the final provider payment id, and
// returns the completed row.
//
// Returns [ErrTransactionNotPending] when the row exists but has already
// left the pending state — the signal that a retried webhook delivery must
// not credit again — and [ErrNoTransactionWasFound] when the id is unknown.
func (r *transactionRepository) CompleteTransaction(ctx context.Context, id int64, paymentID string) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, completeTransaction, id, paymentID)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish "unknown id" from "already processed".
		if _, findErr := r.findOne(ctx, findTransactionByID, id); findErr != nil {
			return models.Transaction{}, findErr
		}
		return models.Transaction{}, ErrTransactionNotPending
	}
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.CompleteTransaction").Int64("id", id).Msg("error completing transaction")
		return models.Transaction{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return tx, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (models.Transaction, error) {
	var tx models.Transaction
	err := s.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Credits, &tx.PaymentMethod,
		&tx.PaymentID, &tx.Status, &tx.CreatedAt, &tx.UpdatedAt)
	return tx, err
}
