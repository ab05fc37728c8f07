package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimulatedSendHonorsCancellation(t *testing.T) {
	m := &Mailer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.NotifyCustomers(ctx, "subject", "message", []string{"a@example.com"})
	require.ErrorIs(t, err, context.Canceled)
}
