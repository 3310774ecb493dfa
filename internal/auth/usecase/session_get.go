package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/schoolist/schoolist/internal/pkg/goerror"
)

type SessionInput struct {
	Email string `validate:"required,email"`
}

type SessionOutput struct {
	Email    string
	UserName string
	IsAuth   bool
}

// Session returns the account state for an email. Clients cache the
// authenticated flag locally; this read is the authoritative copy.
func (s *Usecase) Session(ctx context.Context, in SessionInput) (*SessionOutput, error) {
	ctx, span := s.startSpan(ctx, "Session")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acct, err := s.repoDB.GetAccount(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SessionOutput{
		Email:    acct.Email,
		UserName: acct.UserName,
		IsAuth:   acct.IsAuth,
	}, nil
}
