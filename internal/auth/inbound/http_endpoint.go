package inbound

import (
	"github.com/schoolist/schoolist/internal/auth/usecase"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/schoolist/schoolist/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the OTP sign-in workflow.
type HTTPEndpoint struct {
	uc uc
}

// Auth dispatches the POST body on its type field: generate issues a code,
// verify redeems it, logout clears the session flag.
func (h *HTTPEndpoint) Auth(r *router.Request) (any, error) {
	var req AuthRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	switch req.Type {
	case "generate":
		if err := h.uc.OTPIssue(r.Context(), usecase.OTPIssueInput{
			Email:    req.Email,
			UserName: req.UserName,
		}); err != nil {
			return nil, err
		}

		return OTPIssueResponse{}, nil

	case "verify":
		resp, err := h.uc.OTPVerify(r.Context(), usecase.OTPVerifyInput{
			Email:    req.Email,
			Code:     req.OTP,
			UserName: req.UserName,
		})
		if err != nil {
			return nil, err
		}

		return OTPVerifyResponse{User: UserData{
			UserName: resp.UserName,
			Email:    resp.Email,
			IsAuth:   resp.IsAuth,
		}}, nil

	case "logout":
		if err := h.uc.Logout(r.Context(), usecase.LogoutInput{Email: req.Email}); err != nil {
			return nil, err
		}

		return LogoutResponse{}, nil

	default:
		return nil, goerror.NewInvalidFormat("Invalid request type")
	}
}

// Session returns the account state for the email query parameter.
func (h *HTTPEndpoint) Session(r *router.Request) (any, error) {
	resp, err := h.uc.Session(r.Context(), usecase.SessionInput{Email: r.GetQuery("email")})
	if err != nil {
		return nil, err
	}

	return SessionResponse{User: UserData{
		UserName: resp.UserName,
		Email:    resp.Email,
		IsAuth:   resp.IsAuth,
	}}, nil
}
