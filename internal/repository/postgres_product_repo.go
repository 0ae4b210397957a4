package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/minimarket/internal/model"
)

// PostgresProductRepo はPostgreSQLを使用した商品リポジトリ。
type PostgresProductRepo struct {
	db *sql.DB
}

// NewPostgresProductRepo はPostgresProductRepoを生成する。
func NewPostgresProductRepo(db *sql.DB) *PostgresProductRepo {
	return &PostgresProductRepo{db: db}
}

// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
func (r *PostgresProductRepo) FindByID(ctx context.Context, id int) (*model.Product, error) {
	p := &model.Product{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, price, unit, category, is_available
		 FROM products WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Unit, &p.Category, &p.IsAvailable)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return p, nil
}

// List は商品一覧を返す。カテゴリは大文字小文字を区別せず照合する。
func (r *PostgresProductRepo) List(ctx context.Context, category string, availableOnly bool) ([]*model.Product, error) {
	query := `SELECT id, name, description, price, unit, category, is_available
	          FROM products
	          WHERE ($1 = '' OR lower(category) = lower($1))
	            AND ($2 = FALSE OR is_available)
	          ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, category, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p := &model.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Unit, &p.Category, &p.IsAvailable); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// compile-time interface check
var _ ProductRepository = (*PostgresProductRepo)(nil)
