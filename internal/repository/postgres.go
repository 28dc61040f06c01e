package repository

import (
	"context"
	"errors"

	"rentpay-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMerchantLinkRepository persists merchant links. See schema.sql for
// the expected tables.
type PostgresMerchantLinkRepository struct {
	db *pgxpool.Pool
}

var _ MerchantLinkRepository = (*PostgresMerchantLinkRepository)(nil)

func NewPostgresMerchantLinkRepository(db *pgxpool.Pool) *PostgresMerchantLinkRepository {
	return &PostgresMerchantLinkRepository{db: db}
}

func (r *PostgresMerchantLinkRepository) Upsert(ctx context.Context, link *domain.MerchantLink) error {
	query := `
		INSERT INTO merchant_links (user_id, merchant_account_id, setup_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET merchant_account_id = EXCLUDED.merchant_account_id,
		    setup_at = EXCLUDED.setup_at
	`

	_, err := r.db.Exec(ctx, query, link.UserID, link.MerchantAccountID, link.SetupAt)
	return err
}

func (r *PostgresMerchantLinkRepository) GetByUserID(ctx context.Context, userID string) (*domain.MerchantLink, error) {
	query := `
		SELECT user_id, merchant_account_id, setup_at
		FROM merchant_links
		WHERE user_id = $1
	`

	var link domain.MerchantLink
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&link.UserID,
		&link.MerchantAccountID,
		&link.SetupAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMerchantLinkNotFound
	}
	if err != nil {
		return nil, err
	}

	return &link, nil
}

// PostgresPaymentRepository persists payment records.
type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

var _ PaymentRepository = (*PostgresPaymentRepository)(nil)

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

func (r *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, user_id, tenant_id, property_id, amount_minor, amount,
			payment_method, description, due_date, payment_date,
			status, processor_payment_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.UserID,
		payment.TenantID,
		payment.PropertyID,
		payment.AmountMinor,
		payment.Amount,
		payment.PaymentMethod,
		payment.Description,
		payment.DueDate,
		payment.PaymentDate,
		payment.Status,
		payment.ProcessorPaymentID,
		payment.CreatedAt,
	)
	return err
}

func (r *PostgresPaymentRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Payment, error) {
	// seq is a bigserial assigned at insert; it breaks created_at ties in
	// insertion order.
	query := `
		SELECT
			id, user_id, tenant_id, property_id, amount_minor, amount,
			payment_method, description, due_date, payment_date,
			status, processor_payment_id, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC, seq ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.TenantID,
			&p.PropertyID,
			&p.AmountMinor,
			&p.Amount,
			&p.PaymentMethod,
			&p.Description,
			&p.DueDate,
			&p.PaymentDate,
			&p.Status,
			&p.ProcessorPaymentID,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}

	return payments, rows.Err()
}
