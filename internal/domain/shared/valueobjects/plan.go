package valueobjects

import "fmt"

// Plan is the commercial tier attached to codes and cards.
type Plan string

const (
	PlanBasic    Plan = "basic"
	PlanPremium  Plan = "premium"
	PlanBusiness Plan = "business"
)

var validPlans = map[Plan]bool{
	PlanBasic:    true,
	PlanPremium:  true,
	PlanBusiness: true,
}

func NewPlan(s string) (Plan, error) {
	p := Plan(s)
	if !validPlans[p] {
		return "", fmt.Errorf("invalid plan: %s", s)
	}
	return p, nil
}

func (p Plan) IsValid() bool {
	return validPlans[p]
}

func (p Plan) String() string {
	return string(p)
}
