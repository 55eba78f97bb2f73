package valueobjects

import "fmt"

// Status is a card's publication state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActivated Status = "activated"
)

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if st != StatusPending && st != StatusActivated {
		return "", fmt.Errorf("invalid card status: %s", s)
	}
	return st, nil
}

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusActivated
}

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusActivated {
		return StatusPending
	}
	return StatusActivated
}

func (s Status) IsActivated() bool {
	return s == StatusActivated
}

func (s Status) String() string {
	return string(s)
}
