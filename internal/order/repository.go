// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/mpke-dev/beatstore/internal/core"
)

// ErrEmptyCart aborts a checkout with nothing to buy; no order row is
// created.
var ErrEmptyCart = errors.New("cart is empty")

type Repository interface {
	FindDiscount(ctx context.Context, code string) (*DiscountCode, error)
	CreateFromCart(
		ctx context.Context,
		userID int64,
		discount *DiscountCode,
	) (*Order, error)
	ListForUser(ctx context.Context, userID int64) ([]Order, error)
	GetForUser(ctx context.Context, orderID, userID int64) (*Order, error)
	ListItems(ctx context.Context, orderID int64) ([]Item, error)
	MarkPaid(ctx context.Context, orderID, userID int64) (*Order, error)
	DownloadLines(ctx context.Context, orderID int64) ([]DownloadLine, error)
	BuyerForOrder(ctx context.Context, orderID int64) (*Buyer, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindDiscount(
	ctx context.Context,
	code string,
) (*DiscountCode, error) {
	query := `
		SELECT id, code, discount_percentage, is_active, expires_at
		FROM discount_codes
		WHERE code = $1
		  AND is_active = TRUE
		  AND (expires_at IS NULL OR expires_at > NOW())`

	var dc DiscountCode
	err := r.db.GetContext(ctx, &dc, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find discount code: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find discount code: %w", err)
	}

	return &dc, nil
}

// CreateFromCart runs the whole checkout in one transaction. The FOR UPDATE
// on the caller's active cart rows serializes concurrent checkouts for the
// same user: the loser of the race re-reads an empty cart and aborts instead
// of double-charging.
func (r *repository) CreateFromCart(
	ctx context.Context,
	userID int64,
	discount *DiscountCode,
) (*Order, error) {
	var created Order

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		lockQuery := `
			SELECT c.id AS cart_id, l.price AS license_price
			FROM carts c
			JOIN licenses l ON c.license_id = l.id
			WHERE c.user_id = $1 AND c.order_id IS NULL
			FOR UPDATE OF c`

		var lines []struct {
			CartID int64           `db:"cart_id"`
			Price  decimal.Decimal `db:"license_price"`
		}
		if err := tx.SelectContext(ctx, &lines, lockQuery, userID); err != nil {
			return fmt.Errorf("lock cart rows: %w", err)
		}

		if len(lines) == 0 {
			return ErrEmptyCart
		}

		prices := make([]decimal.Decimal, 0, len(lines))
		for _, line := range lines {
			prices = append(prices, line.Price)
		}

		var discountPct *decimal.Decimal
		var discountID *int64
		if discount != nil {
			discountPct = &discount.DiscountPercentage
			discountID = &discount.ID
		}

		total := ComputeTotal(prices, discountPct)

		insertQuery := `
			INSERT INTO orders (user_id, total_price, discount_code_id)
			VALUES ($1, $2, $3)
			RETURNING id, user_id, total_price, discount_code_id,
			          is_paid, paid_at, created_at`

		if err := tx.GetContext(ctx, &created, insertQuery,
			userID,
			total,
			discountID,
		); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		claimQuery := `
			UPDATE carts
			SET order_id = $1
			WHERE user_id = $2 AND order_id IS NULL`

		if _, err := tx.ExecContext(ctx, claimQuery, created.ID, userID); err != nil {
			return fmt.Errorf("claim cart rows: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &created, nil
}

func (r *repository) ListForUser(
	ctx context.Context,
	userID int64,
) ([]Order, error) {
	query := `
		SELECT id, user_id, total_price, discount_code_id,
		       is_paid, paid_at, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

func (r *repository) GetForUser(
	ctx context.Context,
	orderID, userID int64,
) (*Order, error) {
	query := `
		SELECT id, user_id, total_price, discount_code_id,
		       is_paid, paid_at, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2`

	var o Order
	err := r.db.GetContext(ctx, &o, query, orderID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &o, nil
}

func (r *repository) ListItems(
	ctx context.Context,
	orderID int64,
) ([]Item, error) {
	query := `
		SELECT c.id AS cart_id,
		       b.id AS beat_id,
		       b.title,
		       b.bpm,
		       b.musical_key,
		       b.image_url,
		       b.mp3_url
		FROM carts c
		JOIN beats b ON c.beat_id = b.id
		WHERE c.order_id = $1
		ORDER BY c.id`

	var items []Item
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	return items, nil
}

// MarkPaid is owner-scoped and flips is_paid at most once; a foreign,
// missing, or already-paid order is the same 0-row outcome, so paid_at is
// never rewritten.
func (r *repository) MarkPaid(
	ctx context.Context,
	orderID, userID int64,
) (*Order, error) {
	query := `
		UPDATE orders
		SET is_paid = TRUE, paid_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_paid = FALSE
		RETURNING id, user_id, total_price, discount_code_id,
		          is_paid, paid_at, created_at`

	var o Order
	err := r.db.GetContext(ctx, &o, query, orderID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("mark order paid: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("mark order paid: %w", err)
	}

	return &o, nil
}

func (r *repository) DownloadLines(
	ctx context.Context,
	orderID int64,
) ([]DownloadLine, error) {
	query := `
		SELECT b.id AS beat_id,
		       b.title,
		       b.mp3_url,
		       f.file_url AS archive_url
		FROM carts c
		JOIN beats b ON c.beat_id = b.id
		LEFT JOIN files f ON f.beat_id = b.id
		WHERE c.order_id = $1
		ORDER BY c.id`

	var lines []DownloadLine
	if err := r.db.SelectContext(ctx, &lines, query, orderID); err != nil {
		return nil, fmt.Errorf("list download lines: %w", err)
	}

	return lines, nil
}

func (r *repository) BuyerForOrder(
	ctx context.Context,
	orderID int64,
) (*Buyer, error) {
	query := `
		SELECT u.email, u.name
		FROM orders o
		JOIN users u ON o.user_id = u.id
		WHERE o.id = $1`

	var buyer Buyer
	err := r.db.GetContext(ctx, &buyer, query, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get buyer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get buyer: %w", err)
	}

	return &buyer, nil
}
