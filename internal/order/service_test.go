// AngelaMos | 2026
// service_test.go

package order_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpke-dev/beatstore/internal/config"
	"github.com/mpke-dev/beatstore/internal/core"
	"github.com/mpke-dev/beatstore/internal/order"
)

type fakeRepo struct {
	discounts map[string]*order.DiscountCode
	orders    map[int64]*order.Order
	items     []order.Item
	lines     []order.DownloadLine
	buyer     *order.Buyer

	createCalls    int
	createDiscount *order.DiscountCode
	emptyCart      bool
}

func (f *fakeRepo) FindDiscount(
	ctx context.Context,
	code string,
) (*order.DiscountCode, error) {
	dc, ok := f.discounts[code]
	if !ok {
		return nil, core.ErrNotFound
	}
	return dc, nil
}

func (f *fakeRepo) CreateFromCart(
	ctx context.Context,
	userID int64,
	discount *order.DiscountCode,
) (*order.Order, error) {
	f.createCalls++
	f.createDiscount = discount

	if f.emptyCart {
		return nil, order.ErrEmptyCart
	}

	return &order.Order{ID: 42, UserID: userID}, nil
}

func (f *fakeRepo) ListForUser(
	ctx context.Context,
	userID int64,
) ([]order.Order, error) {
	return nil, nil
}

func (f *fakeRepo) GetForUser(
	ctx context.Context,
	orderID, userID int64,
) (*order.Order, error) {
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, core.ErrNotFound
	}
	return o, nil
}

func (f *fakeRepo) ListItems(
	ctx context.Context,
	orderID int64,
) ([]order.Item, error) {
	return f.items, nil
}

func (f *fakeRepo) MarkPaid(
	ctx context.Context,
	orderID, userID int64,
) (*order.Order, error) {
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID || o.IsPaid {
		return nil, core.ErrNotFound
	}
	o.IsPaid = true
	return o, nil
}

func (f *fakeRepo) DownloadLines(
	ctx context.Context,
	orderID int64,
) ([]order.DownloadLine, error) {
	return f.lines, nil
}

func (f *fakeRepo) BuyerForOrder(
	ctx context.Context,
	orderID int64,
) (*order.Buyer, error) {
	return f.buyer, nil
}

type fakePresigner struct{}

func (fakePresigner) PresignURL(
	ctx context.Context,
	prefix, storedURL string,
) (string, error) {
	return "https://signed.example/" + prefix + storedURL, nil
}

type fakeMailer struct {
	to      string
	subject string
	body    string
	calls   int
}

func (f *fakeMailer) Send(
	ctx context.Context,
	to, subject, body string,
) error {
	f.calls++
	f.to = to
	f.subject = subject
	f.body = body
	return nil
}

func storageCfg() config.StorageConfig {
	return config.StorageConfig{
		ImagePrefix:   "images/",
		AudioPrefix:   "mp3/",
		ArchivePrefix: "files/",
	}
}

func TestCheckoutInvalidDiscountCreatesNoOrder(t *testing.T) {
	repo := &fakeRepo{discounts: map[string]*order.DiscountCode{}}
	svc := order.NewService(repo, fakePresigner{}, &fakeMailer{}, storageCfg())

	_, err := svc.Checkout(context.Background(), 1, "EXPIRED")

	require.ErrorIs(t, err, order.ErrInvalidDiscount)
	assert.Zero(t, repo.createCalls, "no order may be created")
}

func TestCheckoutEmptyCart(t *testing.T) {
	repo := &fakeRepo{emptyCart: true}
	svc := order.NewService(repo, fakePresigner{}, &fakeMailer{}, storageCfg())

	_, err := svc.Checkout(context.Background(), 1, "")

	require.ErrorIs(t, err, order.ErrEmptyCart)
}

func TestCheckoutPassesDiscountThrough(t *testing.T) {
	pct := decimal.NewFromInt(10)
	repo := &fakeRepo{
		discounts: map[string]*order.DiscountCode{
			"SAVE10": {ID: 7, Code: "SAVE10", DiscountPercentage: pct},
		},
	}
	svc := order.NewService(repo, fakePresigner{}, &fakeMailer{}, storageCfg())

	created, err := svc.Checkout(context.Background(), 1, "SAVE10")

	require.NoError(t, err)
	assert.EqualValues(t, 42, created.ID)
	require.NotNil(t, repo.createDiscount)
	assert.EqualValues(t, 7, repo.createDiscount.ID)
}

func TestCheckoutWithoutDiscount(t *testing.T) {
	repo := &fakeRepo{}
	svc := order.NewService(repo, fakePresigner{}, &fakeMailer{}, storageCfg())

	_, err := svc.Checkout(context.Background(), 1, "")

	require.NoError(t, err)
	assert.Nil(t, repo.createDiscount)
}

func TestMarkPaidOnlyOnce(t *testing.T) {
	repo := &fakeRepo{
		orders: map[int64]*order.Order{
			5: {ID: 5, UserID: 1},
		},
	}
	svc := order.NewService(repo, fakePresigner{}, &fakeMailer{}, storageCfg())

	paid, err := svc.MarkPaid(context.Background(), 5, 1)

	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	_, err = svc.MarkPaid(context.Background(), 5, 1)

	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetSignsItemImageURLs(t *testing.T) {
	repo := &fakeRepo{
		orders: map[int64]*order.Order{
			5: {ID: 5, UserID: 1},
		},
		items: []order.Item{
			{CartID: 1, ImageURL: "cover.png"},
		},
	}
	svc := order.NewService(repo, fakePresigner{}, &fakeMailer{}, storageCfg())

	detail, err := svc.Get(context.Background(), 5, 1)

	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(
		t,
		"https://signed.example/images/cover.png",
		detail.Items[0].ImageURL,
	)
}

func TestGetForeignOrderNotFound(t *testing.T) {
	repo := &fakeRepo{
		orders: map[int64]*order.Order{
			5: {ID: 5, UserID: 2},
		},
	}
	svc := order.NewService(repo, fakePresigner{}, &fakeMailer{}, storageCfg())

	_, err := svc.Get(context.Background(), 5, 1)

	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestSendFilesForeignOrderSendsNothing(t *testing.T) {
	mailer := &fakeMailer{}
	repo := &fakeRepo{
		orders: map[int64]*order.Order{
			5: {ID: 5, UserID: 2},
		},
	}
	svc := order.NewService(repo, fakePresigner{}, mailer, storageCfg())

	err := svc.SendFiles(context.Background(), 5, 1)

	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Zero(t, mailer.calls)
}

func TestSendFilesBuildsSignedLinks(t *testing.T) {
	archive := "stems.zip"
	mailer := &fakeMailer{}
	repo := &fakeRepo{
		orders: map[int64]*order.Order{
			5: {ID: 5, UserID: 1},
		},
		buyer: &order.Buyer{Email: "buyer@example.com", Name: "Mo"},
		lines: []order.DownloadLine{
			{BeatID: 9, Title: "Night Drive", MP3URL: "night-drive.mp3"},
			{
				BeatID:     10,
				Title:      "Cold Keys",
				MP3URL:     "cold-keys.mp3",
				ArchiveURL: &archive,
			},
		},
	}
	svc := order.NewService(repo, fakePresigner{}, mailer, storageCfg())

	err := svc.SendFiles(context.Background(), 5, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, "buyer@example.com", mailer.to)
	assert.Contains(t, mailer.subject, "#5")
	assert.Contains(
		t,
		mailer.body,
		"https://signed.example/mp3/night-drive.mp3",
	)
	assert.Contains(
		t,
		mailer.body,
		"https://signed.example/files/stems.zip",
	)
	assert.True(t, strings.Contains(mailer.body, "Night Drive"))
	assert.True(t, strings.Contains(mailer.body, "Cold Keys"))
}
