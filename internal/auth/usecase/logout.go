package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/schoolist/schoolist/internal/pkg/goerror"
)

type LogoutInput struct {
	Email string `validate:"required,email"`
}

// Logout clears the authenticated flag. Logging out an already logged-out
// account succeeds; an unknown email is NotFound. An outstanding challenge
// for the email stays valid.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.ClearAccountAuth(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo clear account auth", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	s.publishAuthEvent(ctx, in.Email, "logged_out")

	return nil
}
