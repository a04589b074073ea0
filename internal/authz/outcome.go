package authz

// Outcome is the uniform result of a state-changing operation.  Navigation
// is data: when a flow has a follow-up location (sign-in, sign-up, sign-out)
// it is reported in Next and the client decides how to act on it.
type Outcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Next    string `json:"next,omitempty"`
}

// OK returns a bare success outcome.
func OK() Outcome { return Outcome{Success: true} }

// OKNext returns a success outcome pointing the caller at its next location.
func OKNext(next string) Outcome { return Outcome{Success: true, Next: next} }

// OKMessage returns a success outcome with an informational message.
func OKMessage(msg string) Outcome { return Outcome{Success: true, Message: msg} }

// Failed returns a failure outcome with a user-safe error message.
func Failed(msg string) Outcome { return Outcome{Error: msg} }
