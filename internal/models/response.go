package models

// Response is the JSON envelope shared by every endpoint, success or failure.
// Error carries a stable machine-readable code; Message is display text. Token
// is top-level, not nested under Data, which is what clients read after
// register/login.
type Response struct {
	Success bool        `json:"success"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Help    string      `json:"help,omitempty"`
}
