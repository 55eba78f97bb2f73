package activationcode

import (
	"fmt"

	vo "cardly/internal/domain/activationcode/valueobjects"
	"cardly/internal/shared/errors"
)

// NewInvalidTransitionError reports an action attempted from the wrong status.
func NewInvalidTransitionError(code string, current vo.Status, action vo.Action) *errors.AppError {
	return errors.NewInvalidStateError(
		fmt.Sprintf("activation code cannot %s", action),
		fmt.Sprintf("code %s is %s, expected %s", code, current, vo.RequiredFor(action)),
	)
}

func NewCodeNotFoundError(code string) *errors.AppError {
	return errors.NewNotFoundError("activation code not found", code)
}
