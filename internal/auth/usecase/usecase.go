package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/schoolist/schoolist/internal/auth/entity"
	"github.com/schoolist/schoolist/internal/pkg/clock"
	"github.com/schoolist/schoolist/internal/pkg/config"
	"github.com/schoolist/schoolist/internal/pkg/goroutine"
	"github.com/schoolist/schoolist/internal/pkg/hash"
	"github.com/schoolist/schoolist/internal/pkg/instrument"
	"github.com/schoolist/schoolist/internal/pkg/mail"
	"github.com/schoolist/schoolist/internal/pkg/otp"
	"github.com/schoolist/schoolist/internal/pkg/ratelimit"
	"github.com/schoolist/schoolist/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// AuthEvent is an audit record published after a successful verification or
// logout.
type AuthEvent struct {
	Email      string
	Action     string
	OccurredAt time.Time
}

type repoMessaging interface {
	PublishAuthEvent(ctx context.Context, msg AuthEvent) error
}

type repoDB interface {
	// SaveChallenge upserts the single challenge row for the email.
	SaveChallenge(ctx context.Context, ch entity.Challenge) error
	// RedeemChallenge loads the live challenge for email under a row lock,
	// runs match against the stored digest and, when it matches, marks the
	// challenge used and upserts the account in the same transaction.
	// Returns goerror.ErrNotFound when no live unexpired unused challenge
	// exists and entity.ErrCodeMismatch when match reports false.
	RedeemChallenge(ctx context.Context, email, userName string, now time.Time, match func(digest string) bool) (*entity.Account, error)

	GetAccount(ctx context.Context, email string) (*entity.Account, error)
	// ClearAccountAuth sets is_auth false; goerror.ErrNotFound for an
	// unknown email, a no-op for an already logged-out account.
	ClearAccountAuth(ctx context.Context, email string) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	mailer        mail.Mail
	bcrypt        hash.Hash
	otp           otp.Generator
	clock         clock.Clocker
	issueLimiter  ratelimit.Limiter
	verifyLimiter ratelimit.Limiter
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Mail          mail.Mail
	Bcrypt        hash.Hash
	OTP           otp.Generator
	Clock         clock.Clocker
	IssueLimiter  ratelimit.Limiter
	VerifyLimiter ratelimit.Limiter
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		mailer:        dep.Mail,
		bcrypt:        dep.Bcrypt,
		otp:           dep.OTP,
		clock:         dep.Clock,
		issueLimiter:  dep.IssueLimiter,
		verifyLimiter: dep.VerifyLimiter,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// publishAuthEvent is fire-and-forget: failures are logged, never surfaced.
func (s *Usecase) publishAuthEvent(ctx context.Context, email, action string) {
	now := s.clock.Now()
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		err := s.repoMessaging.PublishAuthEvent(ctx, AuthEvent{
			Email:      email,
			Action:     action,
			OccurredAt: now,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to publish auth event", "email", email, "action", action, "error", err)
		}
		return nil
	})
}
