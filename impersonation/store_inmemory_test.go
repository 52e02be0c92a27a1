package impersonation_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-tenant-authz/impersonation"
	"github.com/jrsteele09/go-tenant-authz/internal/errors"
	"github.com/stretchr/testify/require"
)

const (
	testOperatorID = "operator-1"
	testTenantID   = "tenant-x"
)

// fakeClock provides a controllable nowTime for expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestInMemoryStore_Start(t *testing.T) {
	t.Run("start then immediate validate", func(t *testing.T) {
		store := impersonation.NewInMemoryStore(4 * time.Hour)

		session, err := store.Start(testOperatorID, testTenantID)
		require.NoError(t, err)
		require.NotEmpty(t, session.Token)
		require.Equal(t, session.CreatedAt.Add(4*time.Hour), session.ExpiresAt)

		validated, ok := store.Validate(session.Token)
		require.True(t, ok)
		require.Equal(t, testTenantID, validated.TenantID)
		require.Equal(t, testOperatorID, validated.OperatorID)
	})

	t.Run("missing tenant is rejected", func(t *testing.T) {
		store := impersonation.NewInMemoryStore(4 * time.Hour)

		_, err := store.Start(testOperatorID, "")
		require.ErrorIs(t, err, errors.ErrMissingTenant)
		require.Zero(t, store.Count())
	})

	t.Run("no deduplication for the same pair", func(t *testing.T) {
		store := impersonation.NewInMemoryStore(4 * time.Hour)

		first, err := store.Start(testOperatorID, testTenantID)
		require.NoError(t, err)
		second, err := store.Start(testOperatorID, testTenantID)
		require.NoError(t, err)

		require.NotEqual(t, first.Token, second.Token)
		require.Equal(t, 2, store.Count())

		_, ok := store.Validate(first.Token)
		require.True(t, ok)
		_, ok = store.Validate(second.Token)
		require.True(t, ok)
	})

	t.Run("tokens have URL-safe 256-bit encoding", func(t *testing.T) {
		store := impersonation.NewInMemoryStore(4 * time.Hour)

		session, err := store.Start(testOperatorID, testTenantID)
		require.NoError(t, err)
		// 32 bytes base64url without padding
		require.Len(t, session.Token, 43)
	})
}

func TestInMemoryStore_End(t *testing.T) {
	t.Run("validate after end returns none", func(t *testing.T) {
		store := impersonation.NewInMemoryStore(4 * time.Hour)

		session, err := store.Start(testOperatorID, testTenantID)
		require.NoError(t, err)

		require.True(t, store.End(session.Token))
		_, ok := store.Validate(session.Token)
		require.False(t, ok)
	})

	t.Run("ending is idempotent", func(t *testing.T) {
		store := impersonation.NewInMemoryStore(4 * time.Hour)

		session, err := store.Start(testOperatorID, testTenantID)
		require.NoError(t, err)

		require.True(t, store.End(session.Token))
		require.False(t, store.End(session.Token))
		require.False(t, store.End("never-issued"))
	})
}

func TestInMemoryStore_Expiry(t *testing.T) {
	t.Run("validate evicts an expired session", func(t *testing.T) {
		clock := newFakeClock()
		store := impersonation.NewInMemoryStore(1*time.Second, impersonation.WithNowTime(clock.Now))

		session, err := store.Start(testOperatorID, testTenantID)
		require.NoError(t, err)
		require.Equal(t, 1, store.Count())

		clock.Advance(2 * time.Second)

		_, ok := store.Validate(session.Token)
		require.False(t, ok)
		require.Zero(t, store.Count(), "lazy eviction removes the session")
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		clock := newFakeClock()
		store := impersonation.NewInMemoryStore(time.Hour, impersonation.WithNowTime(clock.Now))

		session, err := store.Start(testOperatorID, testTenantID)
		require.NoError(t, err)

		clock.Advance(time.Hour - time.Nanosecond)
		_, ok := store.Validate(session.Token)
		require.True(t, ok, "just before expiry is still valid")

		clock.Advance(time.Nanosecond)
		_, ok = store.Validate(session.Token)
		require.False(t, ok, "now == expiresAt is expired")
	})

	t.Run("sweep removes only expired sessions", func(t *testing.T) {
		clock := newFakeClock()
		store := impersonation.NewInMemoryStore(time.Hour, impersonation.WithNowTime(clock.Now))

		expired, err := store.Start(testOperatorID, "tenant-a")
		require.NoError(t, err)

		clock.Advance(30 * time.Minute)
		fresh, err := store.Start(testOperatorID, "tenant-b")
		require.NoError(t, err)

		clock.Advance(45 * time.Minute) // first is past its hour, second is not
		require.Equal(t, 1, store.SweepExpired())

		_, ok := store.Validate(expired.Token)
		require.False(t, ok)
		_, ok = store.Validate(fresh.Token)
		require.True(t, ok)
	})

	t.Run("start opportunistically sweeps", func(t *testing.T) {
		clock := newFakeClock()
		store := impersonation.NewInMemoryStore(time.Hour, impersonation.WithNowTime(clock.Now))

		_, err := store.Start(testOperatorID, "tenant-a")
		require.NoError(t, err)

		clock.Advance(2 * time.Hour)
		_, err = store.Start(testOperatorID, "tenant-b")
		require.NoError(t, err)

		require.Equal(t, 1, store.Count(), "expired session evicted during start")
	})
}

func TestInMemoryStore_Concurrency(t *testing.T) {
	t.Run("concurrent starts yield distinct valid tokens", func(t *testing.T) {
		store := impersonation.NewInMemoryStore(4 * time.Hour)

		const n = 100
		tokens := make([]string, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				session, err := store.Start(testOperatorID, testTenantID)
				require.NoError(t, err)
				tokens[i] = session.Token
			}(i)
		}
		wg.Wait()

		seen := make(map[string]struct{}, n)
		for _, token := range tokens {
			_, dup := seen[token]
			require.False(t, dup, "token issued twice")
			seen[token] = struct{}{}

			session, ok := store.Validate(token)
			require.True(t, ok)
			require.Equal(t, testTenantID, session.TenantID)
		}
		require.Equal(t, n, store.Count())
	})

	t.Run("concurrent validates on an active token all succeed", func(t *testing.T) {
		store := impersonation.NewInMemoryStore(4 * time.Hour)

		session, err := store.Start(testOperatorID, testTenantID)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				validated, ok := store.Validate(session.Token)
				require.True(t, ok)
				require.Equal(t, session.ID, validated.ID)
			}()
		}
		wg.Wait()
	})

	t.Run("validate racing end never returns a foreign session", func(t *testing.T) {
		store := impersonation.NewInMemoryStore(4 * time.Hour)

		for i := 0; i < 50; i++ {
			session, err := store.Start(testOperatorID, testTenantID)
			require.NoError(t, err)

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				store.End(session.Token)
			}()
			go func() {
				defer wg.Done()
				if validated, ok := store.Validate(session.Token); ok {
					// Racing a concurrent end may still win, but it must be
					// this token's own session, never another's.
					require.Equal(t, session.ID, validated.ID)
					require.Equal(t, session.Token, validated.Token)
				}
			}()
			wg.Wait()

			_, ok := store.Validate(session.Token)
			require.False(t, ok, "session must stay gone after end")
		}
	})

	t.Run("concurrent sweeps and validates", func(t *testing.T) {
		clock := newFakeClock()
		store := impersonation.NewInMemoryStore(time.Millisecond, impersonation.WithNowTime(clock.Now))

		sessions := make([]impersonation.Session, 20)
		for i := range sessions {
			session, err := store.Start(testOperatorID, testTenantID)
			require.NoError(t, err)
			sessions[i] = session
		}
		clock.Advance(time.Second)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				store.SweepExpired()
			}()
			go func(i int) {
				defer wg.Done()
				_, ok := store.Validate(sessions[i].Token)
				require.False(t, ok)
			}(i)
		}
		wg.Wait()
		require.Zero(t, store.Count())
	})
}
