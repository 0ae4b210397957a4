// Package repository はデータ永続化のインターフェースを定義する。
// バックエンドは起動時の設定でPostgreSQL実装とインメモリ実装を切り替える。
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hitoshi/minimarket/internal/model"
)

// ErrDuplicateUsername はユーザー名の一意制約違反を表す。
// Createの呼び出し元はこのエラーで登録の重複を判定する。
var ErrDuplicateUsername = errors.New("username already taken")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。ユーザー名の重複判定と挿入は
	// アトミックに行い、重複時はErrDuplicateUsernameを返す。
	// 重複判定は大文字小文字を区別しない。
	Create(ctx context.Context, user *model.User) error

	// FindByUsername はユーザー名の完全一致でユーザーを取得する。
	// 見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// ExistsByID は指定IDのユーザーが存在するか判定する。
	// トークン検証後のアカウント存在チェックに使用する。
	ExistsByID(ctx context.Context, id string) (bool, error)

	// DeleteByID は指定IDのユーザーを削除する。
	// 見つからない場合はエラーを返す。
	DeleteByID(ctx context.Context, id string) error
}

// ProductRepository は商品データの永続化インターフェース。
type ProductRepository interface {
	// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int) (*model.Product, error)

	// List は商品一覧を返す。categoryが空でない場合は大文字小文字を
	// 区別せずカテゴリで絞り込み、availableOnlyの場合は在庫ありのみ返す。
	List(ctx context.Context, category string, availableOnly bool) ([]*model.Product, error)
}

// OfferRepository はオファーデータの永続化インターフェース。
type OfferRepository interface {
	// FindByID は指定IDのオファーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int) (*model.Offer, error)

	// List はオファー一覧を返す。includeInactiveでない場合は有効なもののみ返す。
	List(ctx context.Context, includeInactive bool) ([]*model.Offer, error)
}

// CartRepository はカートデータの永続化インターフェース。
// (user_id, product_id)ごとに1行のみ保持する。
type CartRepository interface {
	// ListByUserID はユーザーのカート内商品一覧を返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.CartItem, error)

	// Add はカートに商品を追加する。同一商品が既にある場合は数量を加算する。
	// 判定と書き込みはアトミックに行う。
	Add(ctx context.Context, item *model.CartItem) error

	// SetQuantity はカート内商品の数量を上書きする。
	// 該当行が存在しない場合はfalseを返す。
	SetQuantity(ctx context.Context, userID string, productID, quantity int) (bool, error)

	// Remove はカートから商品を削除する。
	// 該当行が存在しない場合はfalseを返す。
	Remove(ctx context.Context, userID string, productID int) (bool, error)

	// DeleteByUserID はユーザーの全カート商品を削除する。退会処理用。
	DeleteByUserID(ctx context.Context, userID string) error
}

// ContactRepository はお問い合わせメッセージの永続化インターフェース。
type ContactRepository interface {
	// Create はお問い合わせメッセージを保存する。
	Create(ctx context.Context, msg *model.ContactMessage) error

	// DeleteReceivedBefore は指定時刻より前に受信したメッセージを削除し、
	// 削除件数を返す。保持期間超過分の日次パージに使用する。
	DeleteReceivedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
