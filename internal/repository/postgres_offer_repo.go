package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/minimarket/internal/model"
)

// PostgresOfferRepo はPostgreSQLを使用したオファーリポジトリ。
type PostgresOfferRepo struct {
	db *sql.DB
}

// NewPostgresOfferRepo はPostgresOfferRepoを生成する。
func NewPostgresOfferRepo(db *sql.DB) *PostgresOfferRepo {
	return &PostgresOfferRepo{db: db}
}

// FindByID は指定IDのオファーを取得する。見つからない場合はnilを返す。
func (r *PostgresOfferRepo) FindByID(ctx context.Context, id int) (*model.Offer, error) {
	o := &model.Offer{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, old_price, new_price, product_id, is_active
		 FROM offers WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.Title, &o.Description, &o.OldPrice, &o.NewPrice, &o.ProductID, &o.IsActive)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}

	return o, nil
}

// List はオファー一覧を返す。
func (r *PostgresOfferRepo) List(ctx context.Context, includeInactive bool) ([]*model.Offer, error) {
	query := `SELECT id, title, description, old_price, new_price, product_id, is_active
	          FROM offers
	          WHERE ($1 = TRUE OR is_active)
	          ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []*model.Offer
	for rows.Next() {
		o := &model.Offer{}
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.OldPrice, &o.NewPrice, &o.ProductID, &o.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offers: %w", err)
	}

	return offers, nil
}

// compile-time interface check
var _ OfferRepository = (*PostgresOfferRepo)(nil)
