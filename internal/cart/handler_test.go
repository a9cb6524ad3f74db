// AngelaMos | 2026
// handler_test.go

package cart_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpke-dev/beatstore/internal/cart"
	"github.com/mpke-dev/beatstore/internal/core"
	"github.com/mpke-dev/beatstore/internal/middleware"
)

type fakeRepo struct {
	addErr    error
	deleteErr error
	items     []cart.Item

	added   [][3]int64
	deleted [][2]int64
}

func (f *fakeRepo) Add(
	ctx context.Context,
	userID, beatID, licenseID int64,
) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, [3]int64{userID, beatID, licenseID})
	return nil
}

func (f *fakeRepo) ListActive(
	ctx context.Context,
	userID int64,
) ([]cart.Item, error) {
	return f.items, nil
}

func (f *fakeRepo) Delete(ctx context.Context, cartID, userID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, [2]int64{cartID, userID})
	return nil
}

type fakeVerifier struct{}

func (fakeVerifier) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	return &middleware.AccessTokenClaims{
		UserID: 7,
		Email:  "mo@example.com",
		Name:   "Mo",
	}, nil
}

type fakeRoles struct{}

func (fakeRoles) RoleForUser(
	ctx context.Context,
	userID int64,
) (string, error) {
	return "user", nil
}

func newRouter(repo *fakeRepo) chi.Router {
	handler := cart.NewHandler(cart.NewService(repo))

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(fakeVerifier{}, fakeRoles{}))
		handler.RegisterRoutes(r)
	})
	return r
}

func doRequest(
	t *testing.T,
	router chi.Router,
	method, path, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestNewRepositoryAcceptsTransaction(t *testing.T) {
	var tx *sqlx.Tx
	assert.NotNil(t, cart.NewRepository(tx))
}

func TestAddItem(t *testing.T) {
	repo := &fakeRepo{}
	router := newRouter(repo)

	rec := doRequest(
		t,
		router,
		http.MethodPost,
		"/carts",
		`{"beat_id": 5, "license_id": 2}`,
	)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.added, 1)
	assert.Equal(t, [3]int64{7, 5, 2}, repo.added[0])
}

func TestAddItemMissingFields(t *testing.T) {
	repo := &fakeRepo{}
	router := newRouter(repo)

	rec := doRequest(
		t,
		router,
		http.MethodPost,
		"/carts",
		`{"beat_id": 5}`,
	)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.added)
}

func TestAddDuplicateConflict(t *testing.T) {
	repo := &fakeRepo{addErr: core.ErrDuplicateKey}
	router := newRouter(repo)

	rec := doRequest(
		t,
		router,
		http.MethodPost,
		"/carts",
		`{"beat_id": 5, "license_id": 2}`,
	)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "this item is already in your cart", payload["error"])
}

func TestListItems(t *testing.T) {
	repo := &fakeRepo{
		items: []cart.Item{
			{CartID: 1, BeatID: 5, BeatTitle: "Night Drive"},
		},
	}
	router := newRouter(repo)

	rec := doRequest(t, router, http.MethodGet, "/carts", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var items []cart.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Night Drive", items[0].BeatTitle)
}

func TestListEmptyCartIsEmptyArray(t *testing.T) {
	router := newRouter(&fakeRepo{})

	rec := doRequest(t, router, http.MethodGet, "/carts", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestRemoveForeignItemNotFound(t *testing.T) {
	repo := &fakeRepo{deleteErr: core.ErrNotFound}
	router := newRouter(repo)

	rec := doRequest(t, router, http.MethodDelete, "/carts/3", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveItem(t *testing.T) {
	repo := &fakeRepo{}
	router := newRouter(repo)

	rec := doRequest(t, router, http.MethodDelete, "/carts/3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, [2]int64{3, 7}, repo.deleted[0])
}
