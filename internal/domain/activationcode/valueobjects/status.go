package valueobjects

import "fmt"

// Status is the lifecycle state of an activation code.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusActivated Status = "activated"
)

// Action names a lifecycle transition.
type Action string

const (
	ActionMarkSold Action = "mark_sold"
	ActionRedeem   Action = "redeem"
)

// transitions is the complete set of legal moves: available -> sold -> activated.
// Nothing leaves activated.
var transitions = map[Action]struct{ from, to Status }{
	ActionMarkSold: {from: StatusAvailable, to: StatusSold},
	ActionRedeem:   {from: StatusSold, to: StatusActivated},
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid activation code status: %s", s)
	}
	return st, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusActivated:
		return true
	}
	return false
}

// Apply returns the state reached by action, or false when action is not legal from s.
func (s Status) Apply(action Action) (Status, bool) {
	t, ok := transitions[action]
	if !ok || t.from != s {
		return s, false
	}
	return t.to, true
}

// RequiredFor returns the only status action may start from.
func RequiredFor(action Action) Status {
	return transitions[action].from
}

func (s Status) IsFinal() bool {
	return s == StatusActivated
}

// HasBeenSold reports whether a sale has happened (sold or activated).
func (s Status) HasBeenSold() bool {
	return s == StatusSold || s == StatusActivated
}

func (s Status) String() string {
	return string(s)
}
