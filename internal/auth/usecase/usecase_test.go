package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/schoolist/schoolist/internal/auth/entity"
	"github.com/schoolist/schoolist/internal/pkg/config"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/schoolist/schoolist/internal/pkg/goroutine"
	"github.com/schoolist/schoolist/internal/pkg/hash"
	"github.com/schoolist/schoolist/internal/pkg/instrument"
	"github.com/schoolist/schoolist/internal/pkg/mail"
	"github.com/schoolist/schoolist/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu         sync.Mutex
	challenges map[string]entity.Challenge
	accounts   map[string]entity.Account

	saveErr   error
	redeemErr error
	clearErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		challenges: make(map[string]entity.Challenge),
		accounts:   make(map[string]entity.Account),
	}
}

func (r *fakeRepo) SaveChallenge(_ context.Context, ch entity.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}

	ch.Used = false
	r.challenges[ch.Email] = ch

	return nil
}

func (r *fakeRepo) RedeemChallenge(_ context.Context, email, userName string, now time.Time, match func(digest string) bool) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.redeemErr != nil {
		return nil, r.redeemErr
	}

	ch, ok := r.challenges[email]
	if !ok || ch.Used || now.After(ch.ExpiresAt) {
		return nil, goerror.ErrNotFound
	}

	if !match(ch.CodeDigest) {
		return nil, entity.ErrCodeMismatch
	}

	ch.Used = true
	r.challenges[email] = ch

	acct := entity.Account{Email: email, UserName: userName, IsAuth: true}
	r.accounts[email] = acct

	return &acct, nil
}

func (r *fakeRepo) GetAccount(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &acct, nil
}

func (r *fakeRepo) ClearAccountAuth(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clearErr != nil {
		return r.clearErr
	}

	acct, ok := r.accounts[email]
	if !ok {
		return goerror.ErrNotFound
	}

	acct.IsAuth = false
	r.accounts[email] = acct

	return nil
}

func (r *fakeRepo) account(email string) (entity.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[email]

	return acct, ok
}

func (r *fakeRepo) challenge(email string) (entity.Challenge, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.challenges[email]

	return ch, ok
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []AuthEvent
	err    error
}

func (m *fakeMessaging) PublishAuthEvent(_ context.Context, msg AuthEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.events = append(m.events, msg)

	return nil
}

func (m *fakeMessaging) published() []AuthEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]AuthEvent, len(m.events))
	copy(out, m.events)

	return out
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.sent = append(m.sent, msg)

	return nil
}

func (m *fakeMailer) Close() error { return nil }

func (m *fakeMailer) messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]mail.Message, len(m.sent))
	copy(out, m.sent)

	return out
}

type fakeLimiter struct {
	allowed bool
	err     error
}

func (l *fakeLimiter) Allow(context.Context, string) (bool, error) {
	return l.allowed, l.err
}

type fixedOTP struct {
	code string
	err  error
}

func (o *fixedOTP) Generate() (string, error) {
	return o.code, o.err
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

const testConfigYAML = `
modules:
  auth:
    otp_ttl_minutes: 10
    mail_timezone: UTC
    mail_timeout_seconds: 5
`

type fixture struct {
	uc            *Usecase
	repo          *fakeRepo
	mq            *fakeMessaging
	mailer        *fakeMailer
	otp           *fixedOTP
	clock         *fakeClock
	issueLimiter  *fakeLimiter
	verifyLimiter *fakeLimiter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	require.NoError(t, err)

	fx := &fixture{
		repo:          newFakeRepo(),
		mq:            &fakeMessaging{},
		mailer:        &fakeMailer{},
		otp:           &fixedOTP{code: "482193"},
		clock:         &fakeClock{now: time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)},
		issueLimiter:  &fakeLimiter{allowed: true},
		verifyLimiter: &fakeLimiter{allowed: true},
	}

	fx.uc = New(Dependency{
		RepoDB:        fx.repo,
		RepoMessaging: fx.mq,
		Validator:     v,
		Config:        cfg,
		Mail:          fx.mailer,
		Bcrypt:        hash.NewBcrypt(4, "test-pepper"),
		OTP:           fx.otp,
		Clock:         fx.clock,
		IssueLimiter:  fx.issueLimiter,
		VerifyLimiter: fx.verifyLimiter,
		Instrument:    instrument.NewNoop(),
		Goroutine:     goroutine.NewManager(8),
	})

	return fx
}

// issue runs a successful OTPIssue for tests that only need a live challenge.
func (fx *fixture) issue(t *testing.T, email, userName string) {
	t.Helper()

	err := fx.uc.OTPIssue(context.Background(), OTPIssueInput{Email: email, UserName: userName})
	require.NoError(t, err)
}

func (fx *fixture) waitForEvent(t *testing.T, action string) AuthEvent {
	t.Helper()

	var got AuthEvent
	require.Eventually(t, func() bool {
		for _, ev := range fx.mq.published() {
			if ev.Action == action {
				got = ev
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	return got
}

func asGoError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)

	return ge
}
