package types

// SuccessEnvelope is the standard wrapper for API payloads.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps APIError for transport.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// SendReceipt is the response shape of the SMS trigger endpoints. These
// endpoints predate the data envelope and keep their original contract.
type SendReceipt struct {
	Success    bool   `json:"success"`
	MessageSID string `json:"messageSid,omitempty"`
}

// SendFailure mirrors the legacy error body of the SMS trigger endpoints.
type SendFailure struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
