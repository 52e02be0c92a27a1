package impersonation_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-tenant-authz/impersonation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRunSweeper(t *testing.T) {
	clock := newFakeClock()
	store := impersonation.NewInMemoryStore(time.Minute, impersonation.WithNowTime(clock.Now))

	_, err := store.Start(testOperatorID, testTenantID)
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go impersonation.RunSweeper(ctx, store, 5*time.Millisecond, zerolog.Nop())

	require.Eventually(t, func() bool {
		return store.Count() == 0
	}, time.Second, 5*time.Millisecond, "sweeper should evict the expired session")
}
