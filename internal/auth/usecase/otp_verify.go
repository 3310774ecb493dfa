package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/schoolist/schoolist/internal/auth/entity"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
)

type OTPVerifyInput struct {
	Email    string `validate:"required,email"`
	Code     string `validate:"required,len=6,numeric"`
	UserName string `validate:"required,min=2,max=100"`
}

type OTPVerifyOutput struct {
	Email    string
	UserName string
	IsAuth   bool
}

// OTPVerify redeems the live challenge for the email. The mark-used and
// account upsert happen in one transaction, so two concurrent verifies of the
// same code cannot both succeed. A digest mismatch leaves the challenge
// usable for another attempt.
func (s *Usecase) OTPVerify(ctx context.Context, in OTPVerifyInput) (*OTPVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPVerify")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.UserName = strings.TrimSpace(in.UserName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	allowed, err := s.verifyLimiter.Allow(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check otp verify limit", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !allowed {
		slog.WarnContext(ctx, "otp verify limit exceeded", "email", in.Email)
		return nil, goerror.NewBusiness("Too many attempts, try again later", goerror.CodeTooManyRequest)
	}

	acct, err := s.repoDB.RedeemChallenge(ctx, in.Email, in.UserName, s.clock.Now(), func(digest string) bool {
		return s.bcrypt.Verify(digest, in.Code)
	})
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no live challenge for email", "email", in.Email)
		return nil, goerror.NewBusiness("Invalid or expired OTP", goerror.CodeUnauthorized)
	}
	if errors.Is(err, entity.ErrCodeMismatch) {
		slog.WarnContext(ctx, "otp code mismatch", "email", in.Email)
		return nil, goerror.NewBusiness("Invalid OTP", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo redeem challenge", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publishAuthEvent(ctx, acct.Email, "verified")

	return &OTPVerifyOutput{
		Email:    acct.Email,
		UserName: acct.UserName,
		IsAuth:   acct.IsAuth,
	}, nil
}
