package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/minimarket/internal/model"
)

// PostgresCartRepo はPostgreSQLを使用したカートリポジトリ。
type PostgresCartRepo struct {
	db *sql.DB
}

// NewPostgresCartRepo はPostgresCartRepoを生成する。
func NewPostgresCartRepo(db *sql.DB) *PostgresCartRepo {
	return &PostgresCartRepo{db: db}
}

// ListByUserID はユーザーのカート内商品一覧を返す。
func (r *PostgresCartRepo) ListByUserID(ctx context.Context, userID string) ([]*model.CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, product_id, quantity, updated_at
		 FROM cart_items WHERE user_id = $1 ORDER BY product_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []*model.CartItem
	for rows.Next() {
		item := &model.CartItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return items, nil
}

// Add はカートに商品を追加する。
// 同一(user_id, product_id)の行が既にある場合はON CONFLICTで数量を加算し、
// 判定と書き込みをデータベース側でアトミックに行う。
func (r *PostgresCartRepo) Add(ctx context.Context, item *model.CartItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_items (id, user_id, product_id, quantity, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT ON CONSTRAINT uq_cart_user_product
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		               updated_at = EXCLUDED.updated_at`,
		item.ID, item.UserID, item.ProductID, item.Quantity, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

// SetQuantity はカート内商品の数量を上書きする。該当行が存在しない場合はfalseを返す。
func (r *PostgresCartRepo) SetQuantity(ctx context.Context, userID string, productID, quantity int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now()
		 WHERE user_id = $1 AND product_id = $2`,
		userID, productID, quantity,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update cart item quantity: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Remove はカートから商品を削除する。該当行が存在しない場合はfalseを返す。
func (r *PostgresCartRepo) Remove(ctx context.Context, userID string, productID int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteByUserID はユーザーの全カート商品を削除する。
func (r *PostgresCartRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user cart items: %w", err)
	}
	return nil
}

// compile-time interface check
var _ CartRepository = (*PostgresCartRepo)(nil)
