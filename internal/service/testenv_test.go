package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repo"
)

func newTestStore(t *testing.T) *repo.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One in-memory database per test; a second pooled connection would see
	// an empty schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return repo.New(db)
}

func seedCollection(t *testing.T, store *repo.Store, title string) *models.Collection {
	t.Helper()
	c := &models.Collection{Title: title}
	require.NoError(t, store.CreateCollection(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, store *repo.Store, collectionID uint, title string, price string, inventory int) *models.Product {
	t.Helper()
	p := &models.Product{
		Title:        title,
		UnitPrice:    decimal.RequireFromString(price),
		Inventory:    inventory,
		CollectionID: collectionID,
	}
	require.NoError(t, store.CreateProduct(context.Background(), p))
	return p
}

func seedCustomer(t *testing.T, store *repo.Store, username string) (*models.User, *models.Customer) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Username: username, PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, store.CreateUser(ctx, user))

	customer := &models.Customer{UserID: user.ID, Membership: models.MembershipBronze}
	require.NoError(t, store.CreateCustomer(ctx, customer))
	return user, customer
}

func seedCart(t *testing.T, store *repo.Store) *models.Cart {
	t.Helper()
	cart := &models.Cart{}
	require.NoError(t, store.CreateCart(context.Background(), cart))
	return cart
}

func newOrderService(store *repo.Store) *OrderService {
	return &OrderService{Store: store, Bus: events.NewBus()}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
