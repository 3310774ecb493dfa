package db

import (
	"context"

	"github.com/schoolist/schoolist/internal/auth/entity"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
)

const getAccountSQL = `
SELECT email, user_name, is_auth FROM users WHERE email = $1`

const clearAccountAuthSQL = `
UPDATE users SET is_auth = false WHERE email = $1`

func (s *DB) GetAccount(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccount")
	defer func() { s.endSpan(span, err) }()

	var acct entity.Account
	if err = s.conn.QueryRow(ctx, getAccountSQL, email).Scan(&acct.Email, &acct.UserName, &acct.IsAuth); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &acct, nil
}

func (s *DB) ClearAccountAuth(ctx context.Context, email string) (err error) {
	ctx, span := s.startSpan(ctx, "ClearAccountAuth")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, clearAccountAuthSQL, email)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
