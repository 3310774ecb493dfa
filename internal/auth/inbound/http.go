package inbound

import (
	"context"

	"github.com/schoolist/schoolist/internal/auth/usecase"
	"github.com/schoolist/schoolist/internal/pkg/router"
)

type uc interface {
	OTPIssue(ctx context.Context, in usecase.OTPIssueInput) error
	OTPVerify(ctx context.Context, in usecase.OTPVerifyInput) (*usecase.OTPVerifyOutput, error)
	Session(ctx context.Context, in usecase.SessionInput) (*usecase.SessionOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/auth", end.Auth)
	r.GET("/api/auth", end.Session)
}
