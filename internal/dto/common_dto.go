package dto

// Error codes the client branches on. Everything else is a plain message.
const (
	CodeEmailNotVerified   = "EMAIL_NOT_VERIFIED"
	CodeProfileSetupFailed = "PROFILE_SETUP_FAILED"
	CodeRateLimited        = "RATE_LIMITED"
)

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
