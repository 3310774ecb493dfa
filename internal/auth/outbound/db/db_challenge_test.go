package db

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolist/schoolist/internal/auth/entity"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/schoolist/schoolist/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const schemaDDL = `
CREATE TABLE user_otps (
	email       text PRIMARY KEY,
	otp         text NOT NULL,
	expiry_time timestamptz NOT NULL,
	is_used     boolean NOT NULL DEFAULT false
);

CREATE TABLE users (
	email     text PRIMARY KEY,
	user_name text NOT NULL,
	is_auth   boolean NOT NULL DEFAULT false
);`

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("requires docker")
	}

	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("schoolist"),
		postgres.WithUsername("schoolist"),
		postgres.WithPassword("schoolist"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, schemaDDL)
	require.NoError(t, err)

	return pool
}

func TestRedeemChallenge(t *testing.T) {
	pool := startPostgres(t)
	repo := NewDB(pool, instrument.NewNoop())
	ctx := context.Background()
	now := time.Now()

	save := func(t *testing.T, email string) {
		t.Helper()
		require.NoError(t, repo.SaveChallenge(ctx, entity.Challenge{
			Email:      email,
			CodeDigest: "digest-" + email,
			ExpiresAt:  now.Add(10 * time.Minute),
		}))
	}
	matchFor := func(email string) func(string) bool {
		return func(digest string) bool { return digest == "digest-"+email }
	}

	// The row lock serializes concurrent redeems of the same challenge, so
	// exactly one caller wins; the rest observe is_used and are turned away.
	t.Run("concurrent redeems yield one success", func(t *testing.T) {
		save(t, "race@x.com")

		const attempts = 8
		errs := make([]error, attempts)
		start := make(chan struct{})

		var wg sync.WaitGroup
		for i := range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, errs[i] = repo.RedeemChallenge(ctx, "race@x.com", "Alice", now, matchFor("race@x.com"))
			}()
		}
		close(start)
		wg.Wait()

		var succeeded, rejected int
		for _, err := range errs {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, goerror.ErrNotFound):
				rejected++
			default:
				t.Fatalf("unexpected redeem error: %v", err)
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, attempts-1, rejected)

		var isAuth bool
		require.NoError(t, pool.QueryRow(ctx, "SELECT is_auth FROM users WHERE email = $1", "race@x.com").Scan(&isAuth))
		assert.True(t, isAuth)
	})

	t.Run("redeemed challenge cannot be reused", func(t *testing.T) {
		save(t, "reuse@x.com")

		_, err := repo.RedeemChallenge(ctx, "reuse@x.com", "Alice", now, matchFor("reuse@x.com"))
		require.NoError(t, err)

		_, err = repo.RedeemChallenge(ctx, "reuse@x.com", "Alice", now, matchFor("reuse@x.com"))
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("expired challenge is rejected", func(t *testing.T) {
		save(t, "expired@x.com")

		_, err := repo.RedeemChallenge(ctx, "expired@x.com", "Alice", now.Add(11*time.Minute), matchFor("expired@x.com"))
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("digest mismatch keeps challenge live", func(t *testing.T) {
		save(t, "retry@x.com")

		_, err := repo.RedeemChallenge(ctx, "retry@x.com", "Alice", now, func(string) bool { return false })
		assert.ErrorIs(t, err, entity.ErrCodeMismatch)

		acct, err := repo.RedeemChallenge(ctx, "retry@x.com", "Alice", now, matchFor("retry@x.com"))
		require.NoError(t, err)
		assert.True(t, acct.IsAuth)
	})

	t.Run("reissue overwrites previous challenge", func(t *testing.T) {
		save(t, "reissue@x.com")

		require.NoError(t, repo.SaveChallenge(ctx, entity.Challenge{
			Email:      "reissue@x.com",
			CodeDigest: "digest-second",
			ExpiresAt:  now.Add(10 * time.Minute),
		}))

		_, err := repo.RedeemChallenge(ctx, "reissue@x.com", "Alice", now, matchFor("reissue@x.com"))
		assert.ErrorIs(t, err, entity.ErrCodeMismatch)

		acct, err := repo.RedeemChallenge(ctx, "reissue@x.com", "Alice", now, func(digest string) bool {
			return digest == "digest-second"
		})
		require.NoError(t, err)
		assert.Equal(t, "reissue@x.com", acct.Email)
	})
}
