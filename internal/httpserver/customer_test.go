package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/mykafka"
	"storefront/internal/transport"
)

func TestCustomersMe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/store/customers/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	user := login(t, env, "user@example.com")
	rec = env.doJSON(http.MethodGet, "/store/customers/me", nil, user)
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.Customer
	env.decode(rec, &me)
	require.Equal(t, models.MembershipBronze, me.Membership)
}

func TestUpdateMe(t *testing.T) {
	env := newTestEnv(t)
	user := login(t, env, "user@example.com")

	rec := env.doJSON(http.MethodPut, "/store/customers/me", map[string]string{"phone": "555-0100"}, user)
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.Customer
	env.decode(rec, &me)
	require.Equal(t, "555-0100", me.Phone)
}

func TestListCustomersAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	user := login(t, env, "user@example.com")
	admin := loginAdmin(t, env)

	rec := env.doJSON(http.MethodGet, "/store/customers", nil, user)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(http.MethodGet, "/store/customers", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var customers []models.Customer
	env.decode(rec, &customers)
	require.Len(t, customers, 1)
}

func TestUpdateMembership(t *testing.T) {
	env := newTestEnv(t)
	login(t, env, "user@example.com")
	admin := loginAdmin(t, env)

	rec := env.doJSON(http.MethodPatch, "/store/customers/1", map[string]string{"membership": "platinum"}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(http.MethodPatch, "/store/customers/1", map[string]string{"membership": "gold"}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var customer models.Customer
	env.decode(rec, &customer)
	require.Equal(t, models.MembershipGold, customer.Membership)
}

func TestNotifyQueuesEvent(t *testing.T) {
	env := newTestEnv(t)
	user := login(t, env, "user@example.com")
	admin := loginAdmin(t, env)

	body := map[string]string{"message": "weekend sale"}

	rec := env.doJSON(http.MethodPost, "/store/admin/notify", body, user)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Empty(t, env.Publisher.events)

	rec = env.doJSON(http.MethodPost, "/store/admin/notify", body, admin)
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Len(t, env.Publisher.events, 1)
	require.Equal(t, mykafka.TopicNotificationEvents, env.Publisher.topics[0])
	req, ok := env.Publisher.events[0].(transport.NotifyRequest)
	require.True(t, ok)
	require.Equal(t, "weekend sale", req.Message)
}

func TestNotifyEmptyMessage(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	rec := env.doJSON(http.MethodPost, "/store/admin/notify", map[string]string{"message": ""}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, env.Publisher.events)
}
