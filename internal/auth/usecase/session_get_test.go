package usecase

import (
	"context"
	"testing"

	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	fx := newFixture(t)
	fx.issue(t, "a@x.com", "Alice")
	_, err := fx.uc.OTPVerify(context.Background(), OTPVerifyInput{Email: "a@x.com", Code: "482193", UserName: "Alice"})
	require.NoError(t, err)

	out, err := fx.uc.Session(context.Background(), SessionInput{Email: " A@X.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", out.Email)
	assert.Equal(t, "Alice", out.UserName)
	assert.True(t, out.IsAuth)
}

func TestSessionUnknownEmail(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Session(context.Background(), SessionInput{Email: "missing@x.com"})
	ge := asGoError(t, err)
	assert.Equal(t, goerror.CodeNotFound, ge.Code())
	assert.Equal(t, "Account not found", ge.Msg())
}

func TestSessionInvalidEmail(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Session(context.Background(), SessionInput{Email: "not-an-email"})
	ge := asGoError(t, err)
	assert.Equal(t, goerror.CodeInvalidInput, ge.Code())
}
