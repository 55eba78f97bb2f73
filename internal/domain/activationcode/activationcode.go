package activationcode

import (
	"fmt"
	"strings"
	"time"

	vo "cardly/internal/domain/activationcode/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/errors"
)

// CustomerInfo identifies who bought a code.
type CustomerInfo struct {
	Name  string
	Email string
	Phone string
}

// PaymentInfo describes the completed payment behind a sale.
type PaymentInfo struct {
	Method      string
	ReferenceID string
}

// ActivationCode is the aggregate root of the code ledger.
type ActivationCode struct {
	id          uint
	code        string
	status      vo.Status
	plan        sharedvo.Plan
	amount      sharedvo.Money
	customer    CustomerInfo
	payment     PaymentInfo
	soldAt      *time.Time
	activatedAt *time.Time
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NormalizeCode upper-cases and trims user input before lookups.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewActivationCode creates an available code.
func NewActivationCode(code string, plan sharedvo.Plan, amount sharedvo.Money) (*ActivationCode, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("invalid plan: %s", plan)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	now := biztime.NowUTC()
	return &ActivationCode{
		code:      code,
		status:    vo.StatusAvailable,
		plan:      plan,
		amount:    amount,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructParams carries persisted state.
type ReconstructParams struct {
	ID          uint
	Code        string
	Status      vo.Status
	Plan        sharedvo.Plan
	Amount      sharedvo.Money
	Customer    CustomerInfo
	Payment     PaymentInfo
	SoldAt      *time.Time
	ActivatedAt *time.Time
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReconstructActivationCode rebuilds a code from persistence and rejects rows whose
// timestamps contradict their status.
func ReconstructActivationCode(p ReconstructParams) (*ActivationCode, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("activation code ID cannot be zero")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid activation code status: %s", p.Status)
	}
	c := &ActivationCode{
		id:          p.ID,
		code:        p.Code,
		status:      p.Status,
		plan:        p.Plan,
		amount:      p.Amount,
		customer:    p.Customer,
		payment:     p.Payment,
		soldAt:      p.SoldAt,
		activatedAt: p.ActivatedAt,
		version:     p.Version,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}
	if err := c.checkTimestamps(); err != nil {
		return nil, err
	}
	return c, nil
}

// sold_at is set iff the code has been sold; activated_at iff it is activated.
func (c *ActivationCode) checkTimestamps() error {
	if (c.soldAt != nil) != c.status.HasBeenSold() {
		return fmt.Errorf("activation code %s: sold_at inconsistent with status %s", c.code, c.status)
	}
	if (c.activatedAt != nil) != (c.status == vo.StatusActivated) {
		return fmt.Errorf("activation code %s: activated_at inconsistent with status %s", c.code, c.status)
	}
	return nil
}

func (c *ActivationCode) transition(action vo.Action) error {
	next, ok := c.status.Apply(action)
	if !ok {
		return NewInvalidTransitionError(c.code, c.status, action)
	}
	c.status = next
	return nil
}

// MarkSold records a completed sale. Only available codes can be sold.
func (c *ActivationCode) MarkSold(customer CustomerInfo, payment PaymentInfo) error {
	if err := c.transition(vo.ActionMarkSold); err != nil {
		return err
	}

	now := biztime.NowUTC()
	c.customer = CustomerInfo{
		Name:  strings.TrimSpace(customer.Name),
		Email: strings.TrimSpace(customer.Email),
		Phone: strings.TrimSpace(customer.Phone),
	}
	c.payment = payment
	c.soldAt = &now
	c.updatedAt = now
	c.version++
	return nil
}

// Redeem consumes a sold code.
func (c *ActivationCode) Redeem() error {
	if err := c.transition(vo.ActionRedeem); err != nil {
		return err
	}

	now := biztime.NowUTC()
	c.activatedAt = &now
	c.updatedAt = now
	c.version++
	return nil
}

// ValidateCustomer checks the minimum customer data a sale needs.
func ValidateCustomer(customer CustomerInfo) error {
	if strings.TrimSpace(customer.Name) == "" {
		return errors.NewValidationError("customer name is required")
	}
	if strings.TrimSpace(customer.Email) == "" {
		return errors.NewValidationError("customer email is required")
	}
	return nil
}

func (c *ActivationCode) ID() uint                { return c.id }
func (c *ActivationCode) Code() string            { return c.code }
func (c *ActivationCode) Status() vo.Status       { return c.status }
func (c *ActivationCode) Plan() sharedvo.Plan     { return c.plan }
func (c *ActivationCode) Amount() sharedvo.Money  { return c.amount }
func (c *ActivationCode) Customer() CustomerInfo  { return c.customer }
func (c *ActivationCode) Payment() PaymentInfo    { return c.payment }
func (c *ActivationCode) SoldAt() *time.Time      { return c.soldAt }
func (c *ActivationCode) ActivatedAt() *time.Time { return c.activatedAt }
func (c *ActivationCode) Version() int            { return c.version }
func (c *ActivationCode) CreatedAt() time.Time    { return c.createdAt }
func (c *ActivationCode) UpdatedAt() time.Time    { return c.updatedAt }

// SetID sets the ID (only for persistence layer use)
func (c *ActivationCode) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("activation code ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("activation code ID cannot be zero")
	}
	c.id = id
	return nil
}
