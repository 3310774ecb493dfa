package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/schoolist/schoolist/internal/auth/entity"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
)

const saveChallengeSQL = `
INSERT INTO user_otps (email, otp, expiry_time, is_used)
VALUES ($1, $2, $3, false)
ON CONFLICT (email) DO UPDATE
SET otp = EXCLUDED.otp, expiry_time = EXCLUDED.expiry_time, is_used = false`

const getChallengeForUpdateSQL = `
SELECT otp, expiry_time, is_used
FROM user_otps
WHERE email = $1
FOR UPDATE`

const markChallengeUsedSQL = `
UPDATE user_otps SET is_used = true WHERE email = $1`

const upsertAccountSQL = `
INSERT INTO users (email, user_name, is_auth)
VALUES ($1, $2, true)
ON CONFLICT (email) DO UPDATE
SET user_name = EXCLUDED.user_name, is_auth = true`

// SaveChallenge keeps at most one challenge row per email: a new issuance
// overwrites the previous digest, expiry and used flag.
func (s *DB) SaveChallenge(ctx context.Context, ch entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "SaveChallenge")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, saveChallengeSQL, ch.Email, ch.CodeDigest, ch.ExpiresAt)
	err = s.mapError(err)
	return err
}

// RedeemChallenge runs the read-check-mark-upsert sequence in one transaction
// with a row lock, so at most one concurrent verify of the same code succeeds.
func (s *DB) RedeemChallenge(ctx context.Context, email, userName string, now time.Time, match func(digest string) bool) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "RedeemChallenge")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	var (
		digest    string
		expiresAt time.Time
		used      bool
	)
	if err = tx.QueryRow(ctx, getChallengeForUpdateSQL, email).Scan(&digest, &expiresAt, &used); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	if used || now.After(expiresAt) {
		err = goerror.ErrNotFound
		return nil, err
	}

	if !match(digest) {
		err = entity.ErrCodeMismatch
		return nil, err
	}

	if _, err = tx.Exec(ctx, markChallengeUsedSQL, email); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	if _, err = tx.Exec(ctx, upsertAccountSQL, email, userName); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &entity.Account{Email: email, UserName: userName, IsAuth: true}, nil
}
