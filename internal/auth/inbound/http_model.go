package inbound

// AuthRequest is the single POST /api/auth body; Type selects the operation.
type AuthRequest struct {
	Type     string `json:"type"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
	OTP      string `json:"otp"`
}

// UserData mirrors the wire shape expected by clients.
type UserData struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	IsAuth   bool   `json:"isAuth"`
}

type OTPIssueResponse struct{}

func (OTPIssueResponse) Message() string {
	return "OTP sent to your email"
}

type OTPVerifyResponse struct {
	User UserData
}

func (OTPVerifyResponse) Message() string {
	return "OTP verified successfully"
}

func (r OTPVerifyResponse) Payload() map[string]any {
	return map[string]any{"user": r.User}
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Logged out successfully"
}

type SessionResponse struct {
	User UserData
}

func (r SessionResponse) Payload() map[string]any {
	return map[string]any{"user": r.User}
}
