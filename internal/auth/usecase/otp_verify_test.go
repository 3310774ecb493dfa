package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPVerify(t *testing.T) {
	fx := newFixture(t)
	fx.issue(t, "a@x.com", "Alice")

	out, err := fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "A@x.com", Code: "482193", UserName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", out.Email)
	assert.Equal(t, "Alice", out.UserName)
	assert.True(t, out.IsAuth)

	acct, ok := fx.repo.account("a@x.com")
	require.True(t, ok)
	assert.True(t, acct.IsAuth)

	ev := fx.waitForEvent(t, "verified")
	assert.Equal(t, "a@x.com", ev.Email)
	assert.Equal(t, fx.clock.now, ev.OccurredAt)
}

func TestOTPVerifySingleUse(t *testing.T) {
	fx := newFixture(t)
	fx.issue(t, "a@x.com", "Alice")

	_, err := fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "a@x.com", Code: "482193", UserName: "Alice"})
	require.NoError(t, err)

	_, err = fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "a@x.com", Code: "482193", UserName: "Alice"})
	ge := asGoError(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, ge.Code())
	assert.Equal(t, "Invalid or expired OTP", ge.Msg())
}

func TestOTPVerifyWrongCodeKeepsChallenge(t *testing.T) {
	fx := newFixture(t)
	fx.issue(t, "a@x.com", "Alice")

	_, err := fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "a@x.com", Code: "111111", UserName: "Alice"})
	ge := asGoError(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, ge.Code())
	assert.Equal(t, "Invalid OTP", ge.Msg())

	_, ok := fx.repo.account("a@x.com")
	assert.False(t, ok)

	out, err := fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "a@x.com", Code: "482193", UserName: "Alice"})
	require.NoError(t, err)
	assert.True(t, out.IsAuth)
}

func TestOTPVerifyExpired(t *testing.T) {
	fx := newFixture(t)
	fx.issue(t, "a@x.com", "Alice")

	fx.clock.now = fx.clock.now.Add(11 * time.Minute)

	_, err := fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "a@x.com", Code: "482193", UserName: "Alice"})
	ge := asGoError(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, ge.Code())
	assert.Equal(t, "Invalid or expired OTP", ge.Msg())
}

func TestOTPVerifyWithoutChallenge(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "a@x.com", Code: "482193", UserName: "Alice"})
	ge := asGoError(t, err)
	assert.Equal(t, goerror.CodeUnauthorized, ge.Code())
	assert.Equal(t, "Invalid or expired OTP", ge.Msg())
}

func TestOTPVerifyUpdatesUserName(t *testing.T) {
	fx := newFixture(t)

	fx.issue(t, "a@x.com", "Alice")
	_, err := fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "a@x.com", Code: "482193", UserName: "Alice"})
	require.NoError(t, err)

	fx.issue(t, "a@x.com", "Alice Smith")
	out, err := fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "a@x.com", Code: "482193", UserName: "Alice Smith"})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", out.UserName)

	acct, ok := fx.repo.account("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "Alice Smith", acct.UserName)
}

func TestOTPVerifyRateLimited(t *testing.T) {
	fx := newFixture(t)
	fx.issue(t, "a@x.com", "Alice")
	fx.verifyLimiter.allowed = false

	_, err := fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "a@x.com", Code: "482193", UserName: "Alice"})
	ge := asGoError(t, err)
	assert.Equal(t, goerror.CodeTooManyRequest, ge.Code())
	assert.Equal(t, "Too many attempts, try again later", ge.Msg())
}

func TestOTPVerifyInvalidInput(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name string
		in   OTPVerifyInput
	}{
		{name: "code too short", in: OTPVerifyInput{Email: "a@x.com", Code: "48219", UserName: "Alice"}},
		{name: "code not numeric", in: OTPVerifyInput{Email: "a@x.com", Code: "48219a", UserName: "Alice"}},
		{name: "missing email", in: OTPVerifyInput{Code: "482193", UserName: "Alice"}},
		{name: "missing user name", in: OTPVerifyInput{Email: "a@x.com", Code: "482193"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.uc.OTPVerify(context.Background(), tt.in)
			ge := asGoError(t, err)
			assert.Equal(t, goerror.CodeInvalidInput, ge.Code())
		})
	}
}
