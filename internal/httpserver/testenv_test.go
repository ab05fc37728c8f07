package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/labstack/echo/v4"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/hash"
	"storefront/internal/models"
	"storefront/internal/repo"
	"storefront/internal/service"
)

// fakePublisher records queued notification events instead of talking to a
// broker.
type fakePublisher struct {
	topics []string
	events []interface{}
}

func (p *fakePublisher) PublishEvent(ctx context.Context, topic, key string, event interface{}) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	Store     *repo.Store
	DB        *gorm.DB
	Bus       *events.Bus
	Publisher *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	store := repo.New(db)
	bus := events.NewBus()
	jwtSecret := []byte("test_jwt_secret")
	refreshSecret := []byte("test_refresh_secret")

	authSvc := &service.AuthService{Store: store, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	pub := &fakePublisher{}

	e := echo.New()
	Register(e, &Deps{
		Auth:      &AuthHTTP{Svc: authSvc},
		Catalog:   &CatalogHTTP{Svc: &service.CatalogService{Store: store}},
		Cart:      &CartHTTP{Svc: &service.CartService{Store: store}},
		Order:     &OrderHTTP{Svc: &service.OrderService{Store: store, Bus: bus}},
		Customer:  &CustomerHTTP{Svc: &service.CustomerService{Store: store}},
		Notify:    &NotifyHTTP{Producer: pub},
		JWTSecret: jwtSecret,
	})

	return &testEnv{T: t, E: e, Store: store, DB: db, Bus: bus, Publisher: pub}
}

// doJSON runs the request through the full router so middleware chains are
// part of what gets tested.
func (env *testEnv) doJSON(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder, out interface{}) {
	env.T.Helper()
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), out))
}

// login registers a fresh account and logs it in, returning the access token
// cookie the router's auth middleware expects.
func login(t *testing.T, env *testEnv, username string) *http.Cookie {
	t.Helper()

	creds := map[string]string{"username": username, "password": "password"}
	rec := env.doJSON(http.MethodPost, "/auth/register", creds)
	require.Equal(t, http.StatusCreated, rec.Code)

	return loginExisting(t, env, username, "password")
}

// loginAdmin seeds an admin account directly and logs it in. Registration
// never produces admins.
func loginAdmin(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()

	pwHash, err := hash.HashPassword("admin_password")
	require.NoError(t, err)
	admin := models.User{Username: "admin", PasswordHash: pwHash, Role: models.RoleAdmin}
	require.NoError(t, env.DB.Create(&admin).Error)

	return loginExisting(t, env, "admin", "admin_password")
}

func loginExisting(t *testing.T, env *testEnv, username, password string) *http.Cookie {
	t.Helper()

	rec := env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	return &http.Cookie{Name: "accessToken", Value: resp.AccessToken, Path: "/"}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func seedCollection(t *testing.T, env *testEnv, title string) *models.Collection {
	t.Helper()
	c := &models.Collection{Title: title}
	require.NoError(t, env.DB.Create(c).Error)
	return c
}

func seedProduct(t *testing.T, env *testEnv, collectionID uint, title, price string, inventory int) *models.Product {
	t.Helper()
	p := &models.Product{
		Title:        title,
		UnitPrice:    mustDecimal(t, price),
		Inventory:    inventory,
		CollectionID: collectionID,
	}
	require.NoError(t, env.DB.Create(p).Error)
	return p
}
