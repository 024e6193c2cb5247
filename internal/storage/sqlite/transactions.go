package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/kasir/internal/models"
	"github.com/mmynk/kasir/internal/storage"
)

// AppendTransaction assigns the next ID and persists the transaction with
// its lines in a single database transaction.
func (s *SQLiteStore) AppendTransaction(ctx context.Context, t *models.Transaction) error {
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		"UPDATE ledger_sequence SET value = value + 1 WHERE name = ? RETURNING value",
		transactionSequence,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to assign transaction id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, created_at, total, amount_paid, change_amount, option_1, option_2, option_3, chosen_option)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, t.Timestamp.UnixNano(), t.Total, t.AmountPaid, t.Change,
		t.Options[0], t.Options[1], t.Options[2], t.ChosenOption.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	for i, line := range t.Lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO transaction_lines (transaction_id, position, item_id, name, unit_price, quantity)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, line.ItemID, line.Name, line.UnitPrice, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction line: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sync_status (transaction_id, state) VALUES (?, ?)",
		id, models.SyncPending,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	t.ID = id
	return nil
}

// GetTransaction retrieves a transaction by ID, including its lines.
func (s *SQLiteStore) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, total, amount_paid, change_amount, option_1, option_2, option_3, chosen_option
		 FROM transactions WHERE id = ?`,
		id,
	)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, name, unit_price, quantity FROM transaction_lines
		 WHERE transaction_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(&line.ItemID, &line.Name, &line.UnitPrice, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan transaction line: %w", err)
		}
		t.Lines = append(t.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction lines: %w", err)
	}

	return t, nil
}

// ListTransactions returns every transaction with its lines, in ID order.
func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, total, amount_paid, change_amount, option_1, option_2, option_3, chosen_option
		 FROM transactions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.Transaction
	byID := make(map[int64]*models.Transaction)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	rows.Close()

	lineRows, err := s.db.QueryContext(ctx,
		`SELECT transaction_id, item_id, name, unit_price, quantity FROM transaction_lines
		 ORDER BY transaction_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var txID int64
		var line models.CartLine
		if err := lineRows.Scan(&txID, &line.ItemID, &line.Name, &line.UnitPrice, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan transaction line: %w", err)
		}
		if t, ok := byID[txID]; ok {
			t.Lines = append(t.Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction lines: %w", err)
	}

	return txs, nil
}

// Summary aggregates the ledger.
func (s *SQLiteStore) Summary(ctx context.Context) (*models.SalesSummary, error) {
	summary := &models.SalesSummary{}
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(total), 0) FROM transactions",
	).Scan(&summary.TransactionCount, &summary.Revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(quantity), 0) FROM transaction_lines",
	).Scan(&summary.ItemsSold)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transaction lines: %w", err)
	}

	return summary, nil
}

// RecordSyncStatus stores the latest sync outcome for a transaction.
func (s *SQLiteStore) RecordSyncStatus(ctx context.Context, id int64, status models.SyncStatus) error {
	var attemptedAt int64
	if !status.AttemptedAt.IsZero() {
		attemptedAt = status.AttemptedAt.UnixNano()
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE sync_status SET state = ?, reason = ?, attempted_at = ? WHERE transaction_id = ?",
		status.State, status.Reason, attemptedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to record sync status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record sync status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// GetSyncStatus returns the latest sync outcome for a transaction.
func (s *SQLiteStore) GetSyncStatus(ctx context.Context, id int64) (models.SyncStatus, error) {
	var status models.SyncStatus
	var attemptedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT state, reason, attempted_at FROM sync_status WHERE transaction_id = ?",
		id,
	).Scan(&status.State, &status.Reason, &attemptedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return status, fmt.Errorf("transaction %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return status, fmt.Errorf("failed to get sync status: %w", err)
	}
	if attemptedAt != 0 {
		status.AttemptedAt = time.Unix(0, attemptedAt)
	}
	return status, nil
}

// ListSyncStatuses returns the sync outcome of every transaction.
func (s *SQLiteStore) ListSyncStatuses(ctx context.Context) (map[int64]models.SyncStatus, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT transaction_id, state, reason, attempted_at FROM sync_status")
	if err != nil {
		return nil, fmt.Errorf("failed to list sync statuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[int64]models.SyncStatus)
	for rows.Next() {
		var id, attemptedAt int64
		var status models.SyncStatus
		if err := rows.Scan(&id, &status.State, &status.Reason, &attemptedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sync status: %w", err)
		}
		if attemptedAt != 0 {
			status.AttemptedAt = time.Unix(0, attemptedAt)
		}
		statuses[id] = status
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync statuses: %w", err)
	}
	return statuses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	var createdAt int64
	var chosen string
	err := row.Scan(&t.ID, &createdAt, &t.Total, &t.AmountPaid, &t.Change,
		&t.Options[0], &t.Options[1], &t.Options[2], &chosen)
	if err != nil {
		return nil, err
	}
	t.Timestamp = time.Unix(0, createdAt)
	t.ChosenOption = models.ParseChosenOption(chosen)
	return t, nil
}
