// Package testutil wires use cases against an in-memory database for tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cardly/internal/domain/activationcode"
	"cardly/internal/domain/activationevent"
	"cardly/internal/domain/card"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/domain/setting"
	"cardly/internal/domain/user"
	"cardly/internal/infrastructure/permission"
	"cardly/internal/infrastructure/persistence/testdb"
	"cardly/internal/infrastructure/repository"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/db"
	"cardly/internal/shared/logger"
)

var seq atomic.Int64

// Env bundles real repositories over one sqlite database.
type Env struct {
	DB       *gorm.DB
	Tx       *db.TransactionManager
	Users    user.Repository
	Cards    card.Repository
	Codes    activationcode.Repository
	Events   activationevent.Repository
	Settings setting.Repository
	Enforcer *permission.Enforcer
	Logger   logger.Interface
}

func NewEnv(t *testing.T) *Env {
	t.Helper()
	gdb := testdb.New(t)
	log := logger.NewNopLogger()

	enforcer, err := permission.NewEnforcer(gdb, log)
	require.NoError(t, err)
	require.NoError(t, enforcer.InitDefaultPolicies())

	return &Env{
		DB:       gdb,
		Tx:       db.NewTransactionManager(gdb),
		Users:    repository.NewUserRepository(gdb, log),
		Cards:    repository.NewCardRepository(gdb, log),
		Codes:    repository.NewActivationCodeRepository(gdb, log),
		Events:   repository.NewActivationEventRepository(gdb, log),
		Settings: repository.NewSystemSettingRepository(gdb, log),
		Enforcer: enforcer,
		Logger:   log,
	}
}

// SteppedClock makes biztime.NowUTC advance one minute per call from start.
func SteppedClock(t *testing.T, start time.Time) {
	var n atomic.Int64
	restore := biztime.SetNowFunc(func() time.Time {
		return start.Add(time.Duration(n.Add(1)) * time.Minute)
	})
	t.Cleanup(restore)
}

// FixedClock pins biztime.NowUTC to at.
func FixedClock(t *testing.T, at time.Time) {
	t.Cleanup(biztime.SetNowFunc(func() time.Time { return at }))
}

func ActorFor(u *user.User) authorization.Actor {
	return authorization.Actor{UserID: u.ID(), Role: u.Role()}
}

func (e *Env) CreateUser(t *testing.T, name string, role authorization.UserRole) *user.User {
	t.Helper()
	u, err := user.NewUser(name, fmt.Sprintf("%s.%d@example.com", name, seq.Add(1)), "hash", role)
	require.NoError(t, err)
	require.NoError(t, e.Users.Create(context.Background(), u))
	return u
}

func (e *Env) CreateAdmin(t *testing.T) (*user.User, authorization.Actor) {
	t.Helper()
	u := e.CreateUser(t, "admin", authorization.RoleAdmin)
	return u, ActorFor(u)
}

// CreateCard inserts a card directly, bypassing the create use case.
func (e *Env) CreateCard(t *testing.T, ownerID *uint, name string, activated bool) *card.Card {
	t.Helper()
	n := seq.Add(1)
	c, err := card.NewCard(ownerID, name, card.Profile{Company: "Acme"}, sharedvo.PlanBasic,
		card.BuildSlug(name, fmt.Sprintf("t%05d", n)), fmt.Sprintf("%08d", 20000000+n))
	require.NoError(t, err)
	if activated {
		c.Activate()
	}
	require.NoError(t, e.Cards.Create(context.Background(), c))
	return c
}

// AppendEvents logs views without touching click_count.
func (e *Env) AppendEvents(t *testing.T, cardID uint, userAgents ...string) {
	t.Helper()
	for _, ua := range userAgents {
		ev, err := activationevent.NewActivationEvent(cardID, activationevent.RequestMeta{IP: "10.0.0.1", UserAgent: ua})
		require.NoError(t, err)
		require.NoError(t, e.Events.Append(context.Background(), ev))
	}
}

// AddViews bumps click_count and logs one matching event per view.
func (e *Env) AddViews(t *testing.T, cardID uint, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		require.NoError(t, e.Cards.IncrementClickCount(ctx, cardID))
	}
	uas := make([]string, n)
	for i := range uas {
		uas[i] = "Mozilla/5.0 (Windows NT 10.0)"
	}
	e.AppendEvents(t, cardID, uas...)
}

// SeedCode stores a code, optionally already sold to a customer.
func (e *Env) SeedCode(t *testing.T, code string, plan sharedvo.Plan, sold bool) *activationcode.ActivationCode {
	t.Helper()
	ac, err := activationcode.NewActivationCode(code, plan, sharedvo.NewMoney(4990, "BRL"))
	require.NoError(t, err)
	require.NoError(t, e.Codes.Create(context.Background(), ac))
	if sold {
		require.NoError(t, ac.MarkSold(activationcode.CustomerInfo{Name: "Ana", Email: "ana@example.com"}, activationcode.PaymentInfo{Method: "pix", ReferenceID: "ref-" + code}))
		require.NoError(t, e.Codes.Update(context.Background(), ac))
	}
	return ac
}
