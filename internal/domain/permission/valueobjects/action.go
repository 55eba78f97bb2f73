package valueobjects

import "fmt"

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
	ActionExport Action = "export"
	// ActionToggle flips an active/inactive style flag.
	ActionToggle Action = "toggle"
	ActionBulk   Action = "bulk"
	ActionSell   Action = "sell"
)

var validActions = map[Action]bool{
	ActionCreate: true,
	ActionRead:   true,
	ActionUpdate: true,
	ActionDelete: true,
	ActionList:   true,
	ActionExport: true,
	ActionToggle: true,
	ActionBulk:   true,
	ActionSell:   true,
}

func NewAction(action string) (Action, error) {
	if action == "" {
		return "", fmt.Errorf("action cannot be empty")
	}

	a := Action(action)
	if !validActions[a] {
		return "", fmt.Errorf("invalid action: %s", action)
	}

	return a, nil
}

func (a Action) String() string {
	return string(a)
}
