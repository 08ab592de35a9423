package sqlite

import (
	"context"
	"database/sql"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type queries struct {
	db dbtx
}

func newQueries(db dbtx) *queries {
	return &queries{db: db}
}

type clientRow struct {
	ID           string
	Name         string
	Email        string
	BusinessName string
	CreatedAt    int64
}

const createClient = `-- name: CreateClient :exec
INSERT INTO clients (id, name, email, business_name, created_at)
VALUES (?, ?, ?, ?, ?)`

func (q *queries) CreateClient(ctx context.Context, r clientRow) error {
	_, err := q.db.ExecContext(ctx, createClient, r.ID, r.Name, r.Email, r.BusinessName, r.CreatedAt)
	return err
}

const listClients = `-- name: ListClients :many
SELECT id, name, email, business_name, created_at
FROM clients
ORDER BY created_at DESC, id DESC`

func (q *queries) ListClients(ctx context.Context) ([]clientRow, error) {
	rows, err := q.db.QueryContext(ctx, listClients)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []clientRow
	for rows.Next() {
		var i clientRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.BusinessName, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const clientEmailExists = `-- name: ClientEmailExists :one
SELECT EXISTS (SELECT 1 FROM clients WHERE email = ?)`

func (q *queries) ClientEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, clientEmailExists, email).Scan(&exists)
	return exists, err
}

const countClients = `-- name: CountClients :one
SELECT COUNT(*) FROM clients`

func (q *queries) CountClients(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countClients).Scan(&n)
	return n, err
}

type operatorRow struct {
	ID           string
	Email        string
	PasswordHash string
	ConfirmedAt  sql.NullInt64
	CreatedAt    int64
	UpdatedAt    int64
}

const operatorColumns = `id, email, password_hash, confirmed_at, created_at, updated_at`

func scanOperator(row *sql.Row) (operatorRow, error) {
	var i operatorRow
	err := row.Scan(&i.ID, &i.Email, &i.PasswordHash, &i.ConfirmedAt, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getOperatorByID = `-- name: GetOperatorByID :one
SELECT ` + operatorColumns + ` FROM operators WHERE id = ?`

func (q *queries) GetOperatorByID(ctx context.Context, id string) (operatorRow, error) {
	return scanOperator(q.db.QueryRowContext(ctx, getOperatorByID, id))
}

const getOperatorByEmail = `-- name: GetOperatorByEmail :one
SELECT ` + operatorColumns + ` FROM operators WHERE email = ?`

func (q *queries) GetOperatorByEmail(ctx context.Context, email string) (operatorRow, error) {
	return scanOperator(q.db.QueryRowContext(ctx, getOperatorByEmail, email))
}

const createOperator = `-- name: CreateOperator :exec
INSERT INTO operators (id, email, password_hash, confirmed_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`

func (q *queries) CreateOperator(ctx context.Context, r operatorRow) error {
	_, err := q.db.ExecContext(ctx, createOperator,
		r.ID, r.Email, r.PasswordHash, r.ConfirmedAt, r.CreatedAt, r.UpdatedAt)
	return err
}

const markOperatorConfirmed = `-- name: MarkOperatorConfirmed :execrows
UPDATE operators SET confirmed_at = ?, updated_at = ? WHERE id = ?`

func (q *queries) MarkOperatorConfirmed(ctx context.Context, id string, at int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, markOperatorConfirmed, at, at, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type confirmationRow struct {
	ID         string
	OperatorID string
	TokenHash  string
	ExpiresAt  int64
	CreatedAt  int64
}

const createConfirmation = `-- name: CreateConfirmation :exec
INSERT INTO confirmations (id, operator_id, token_hash, expires_at, created_at)
VALUES (?, ?, ?, ?, ?)`

func (q *queries) CreateConfirmation(ctx context.Context, r confirmationRow) error {
	_, err := q.db.ExecContext(ctx, createConfirmation,
		r.ID, r.OperatorID, r.TokenHash, r.ExpiresAt, r.CreatedAt)
	return err
}

const getConfirmationByTokenHash = `-- name: GetConfirmationByTokenHash :one
SELECT id, operator_id, token_hash, expires_at, created_at
FROM confirmations WHERE token_hash = ?`

func (q *queries) GetConfirmationByTokenHash(ctx context.Context, hash string) (confirmationRow, error) {
	var i confirmationRow
	err := q.db.QueryRowContext(ctx, getConfirmationByTokenHash, hash).
		Scan(&i.ID, &i.OperatorID, &i.TokenHash, &i.ExpiresAt, &i.CreatedAt)
	return i, err
}

const deleteConfirmationsForOperator = `-- name: DeleteConfirmationsForOperator :exec
DELETE FROM confirmations WHERE operator_id = ?`

func (q *queries) DeleteConfirmationsForOperator(ctx context.Context, operatorID string) error {
	_, err := q.db.ExecContext(ctx, deleteConfirmationsForOperator, operatorID)
	return err
}

const deleteExpiredConfirmations = `-- name: DeleteExpiredConfirmations :execrows
DELETE FROM confirmations WHERE expires_at <= ?`

func (q *queries) DeleteExpiredConfirmations(ctx context.Context, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredConfirmations, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
