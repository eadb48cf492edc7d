package models

// Action is the closed set of operations the auth endpoint dispatches on.
// Parsing the request's free-form action string into one of these up front
// means the controller switch is exhaustive and an unrecognized action is
// rejected at the boundary rather than falling through string comparisons.
type Action string

const (
	ActionRegister      Action = "register"
	ActionLogin         Action = "login"
	ActionGetUserData   Action = "getUserData"
	ActionUpdateBalance Action = "updateBalance"
)

// ParseAction maps the raw action string to a known Action. The boolean is
// false for anything outside the closed set.
func ParseAction(raw string) (Action, bool) {
	switch Action(raw) {
	case ActionRegister, ActionLogin, ActionGetUserData, ActionUpdateBalance:
		return Action(raw), true
	default:
		return "", false
	}
}

// AuthRequest is the request body for the action-dispatched auth endpoint.
// Every field except Action is operation-specific, so none carry binding
// tags; each operation validates its own inputs.
type AuthRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	UserID   string `json:"userId"`
	// Pointer distinguishes "balance absent" from a legitimate zero balance.
	Balance *float64 `json:"balance"`
}
