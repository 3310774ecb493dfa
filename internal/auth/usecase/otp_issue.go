package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/schoolist/schoolist/internal/auth/entity"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/schoolist/schoolist/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
)

type OTPIssueInput struct {
	Email    string `validate:"required,email"`
	UserName string `validate:"required,min=2,max=100"`
}

// OTPIssue generates a 6-digit code, stores its digest with an expiry, and
// delivers the plaintext code by email. Delivery failure fails the whole
// operation so the caller never sees "sent" for an undelivered code.
func (s *Usecase) OTPIssue(ctx context.Context, in OTPIssueInput) error {
	ctx, span := s.startSpan(ctx, "OTPIssue")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.UserName = strings.TrimSpace(in.UserName)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	allowed, err := s.issueLimiter.Allow(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check otp issue limit", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}
	if !allowed {
		slog.WarnContext(ctx, "otp issue limit exceeded", "email", in.Email)
		return goerror.NewBusiness("Too many OTP requests, try again later", goerror.CodeTooManyRequest)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return goerror.NewServer(err)
	}

	digest, err := s.bcrypt.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.auth.otp_ttl_minutes")
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	expiresAt := s.clock.Now().Add(ttl)

	if err := s.repoDB.SaveChallenge(ctx, entity.Challenge{
		Email:      in.Email,
		CodeDigest: string(digest),
		ExpiresAt:  expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo save challenge", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.deliverCode(ctx, in.Email, in.UserName, code, expiresAt); err != nil {
		slog.ErrorContext(ctx, "failed to deliver otp email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) deliverCode(ctx context.Context, email, userName, code string, expiresAt time.Time) error {
	loc, err := time.LoadLocation(s.cfg.GetString("modules.auth.mail_timezone"))
	if err != nil {
		loc = time.UTC
	}

	expiry := expiresAt.In(loc).Format("15:04 MST")
	msg := mail.Message{
		To:       []string{email},
		Subject:  "Your SchooList sign-in code",
		TextBody: fmt.Sprintf("Hi %s,\n\nYour sign-in code is %s. It expires at %s.\n\nIf you did not request this code, you can ignore this email.\n", userName, code, expiry),
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>Your sign-in code is <strong>%s</strong>. It expires at %s.</p><p>If you did not request this code, you can ignore this email.</p>`,
			userName, code, expiry,
		),
	}

	timeout := s.cfg.GetSecond("modules.auth.mail_timeout_seconds")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.mailer.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
