package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settingUsecases "cardly/internal/application/setting/usecases"
	"cardly/internal/application/testutil"
	"cardly/internal/domain/activationcode"
	vo "cardly/internal/domain/activationcode/valueobjects"
	"cardly/internal/domain/setting"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
)

type fakeNotifier struct {
	sent chan CodeSoldNotification
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan CodeSoldNotification, 4)}
}

func (n *fakeNotifier) NotifyCodeSold(_ context.Context, msg CodeSoldNotification) error {
	n.sent <- msg
	return nil
}

// takenRepo reports every code as taken.
type takenRepo struct {
	activationcode.Repository
	mu    sync.Mutex
	calls int
}

func (r *takenRepo) ExistsByCode(context.Context, string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return true, nil
}

type fixture struct {
	env      *testutil.Env
	settings *settingUsecases.SettingService
	admin    authorization.Actor
	client   authorization.Actor
}

func newFixture(t *testing.T) *fixture {
	env := testutil.NewEnv(t)
	_, admin := env.CreateAdmin(t)
	client := testutil.ActorFor(env.CreateUser(t, "bia", authorization.RoleClient))
	return &fixture{
		env:      env,
		settings: settingUsecases.NewSettingService(env.Settings, env.Logger),
		admin:    admin,
		client:   client,
	}
}

func (f *fixture) generator() *CodeGenerator {
	return NewCodeGenerator(f.env.Codes, 0, 0, f.env.Logger)
}

func TestCodeGenerator_SpaceExhausted(t *testing.T) {
	f := newFixture(t)
	repo := &takenRepo{}
	gen := NewCodeGenerator(repo, 8, 3, f.env.Logger)

	_, err := gen.Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, repo.calls)
	assert.Equal(t, errors.ErrorTypeInternal, errors.GetAppError(err).Type)
}

func TestCodeGenerator_ReservedCountsAsTaken(t *testing.T) {
	f := newFixture(t)
	gen := f.generator()
	ctx := context.Background()

	first, err := gen.Generate(ctx)
	require.NoError(t, err)
	assert.Len(t, first, DefaultCodeLength)

	reserved := map[string]struct{}{first: {}}
	for i := 0; i < 50; i++ {
		code, err := gen.generate(ctx, reserved)
		require.NoError(t, err)
		_, dup := reserved[code]
		require.False(t, dup)
		reserved[code] = struct{}{}
	}
}

func TestSeedPool(t *testing.T) {
	f := newFixture(t)
	uc := NewSeedPoolUseCase(f.env.Codes, f.generator(), f.env.Tx, f.settings, f.env.Enforcer, f.env.Logger)
	ctx := context.Background()

	t.Run("rejects out of range counts", func(t *testing.T) {
		for _, n := range []int{0, MaxSeedBatch + 1} {
			_, err := uc.Execute(ctx, SeedPoolCommand{Actor: f.admin, Count: n, Plan: "basic"})
			assert.True(t, errors.IsValidationError(err), "count %d", n)
		}
	})

	t.Run("rejects unknown plan", func(t *testing.T) {
		_, err := uc.Execute(ctx, SeedPoolCommand{Actor: f.admin, Count: 1, Plan: "gold"})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("clients cannot seed", func(t *testing.T) {
		_, err := uc.Execute(ctx, SeedPoolCommand{Actor: f.client, Count: 1, Plan: "basic"})
		assert.True(t, errors.IsForbiddenError(err))
	})

	t.Run("creates distinct available codes", func(t *testing.T) {
		amount := int64(9900)
		res, err := uc.Execute(ctx, SeedPoolCommand{Actor: f.admin, Count: 25, Plan: "premium", AmountCents: &amount})
		require.NoError(t, err)
		assert.Equal(t, 25, res.Created)

		seen := map[string]bool{}
		for _, c := range res.Codes {
			assert.False(t, seen[c], "duplicate %s", c)
			seen[c] = true
		}

		stored, err := f.env.Codes.GetByCode(ctx, res.Codes[0])
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, vo.StatusAvailable, stored.Status())
		assert.Equal(t, sharedvo.PlanPremium, stored.Plan())
		assert.Equal(t, int64(9900), stored.Amount().AmountInCents())
	})

	t.Run("amount defaults to setting", func(t *testing.T) {
		_, err := f.settings.Set(ctx, setting.KeyDefaultCodeAmount, "4990", 1)
		require.NoError(t, err)

		res, err := uc.Execute(ctx, SeedPoolCommand{Actor: f.admin, Count: 1, Plan: "basic"})
		require.NoError(t, err)
		stored, err := f.env.Codes.GetByCode(ctx, res.Codes[0])
		require.NoError(t, err)
		assert.Equal(t, int64(4990), stored.Amount().AmountInCents())
		assert.Equal(t, sharedvo.DefaultCurrency, stored.Amount().Currency())
	})
}

func TestMarkSold(t *testing.T) {
	f := newFixture(t)
	notifier := newFakeNotifier()
	uc := NewMarkSoldUseCase(f.env.Codes, notifier, f.settings, f.env.Enforcer, f.env.Logger)
	ctx := context.Background()
	customer := activationcode.CustomerInfo{Name: "Carla Dias", Email: "carla@example.com"}
	payment := activationcode.PaymentInfo{Method: "pix", ReferenceID: "pay-1"}

	t.Run("unknown code", func(t *testing.T) {
		_, err := uc.Execute(ctx, MarkSoldCommand{Actor: f.admin, Code: "NOPE0000", Customer: customer, Payment: payment})
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("customer email required", func(t *testing.T) {
		f.env.SeedCode(t, "MAIL0001", sharedvo.PlanBasic, false)
		_, err := uc.Execute(ctx, MarkSoldCommand{Actor: f.admin, Code: "MAIL0001", Customer: activationcode.CustomerInfo{Name: "X"}})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("sells and notifies", func(t *testing.T) {
		f.env.SeedCode(t, "SELL0001", sharedvo.PlanBusiness, false)

		res, err := uc.Execute(ctx, MarkSoldCommand{Actor: f.admin, Code: " sell0001 ", Customer: customer, Payment: payment})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusSold.String(), res.Status)
		assert.NotNil(t, res.SoldAt)
		assert.Equal(t, "pay-1", res.PaymentReferenceID)

		select {
		case n := <-notifier.sent:
			assert.Equal(t, "SELL0001", n.Code)
			assert.Equal(t, "carla@example.com", n.CustomerEmail)
			assert.Equal(t, "business", n.Plan)
		case <-time.After(2 * time.Second):
			t.Fatal("notification not sent")
		}
	})

	t.Run("second sale is rejected", func(t *testing.T) {
		_, err := uc.Execute(ctx, MarkSoldCommand{Actor: f.admin, Code: "SELL0001", Customer: customer, Payment: payment})
		assert.True(t, errors.IsInvalidStateError(err))
	})

	t.Run("mail disabled by setting", func(t *testing.T) {
		_, err := f.settings.Set(ctx, setting.KeyCodeSoldMailEnabled, "false", 1)
		require.NoError(t, err)
		f.env.SeedCode(t, "QUIET001", sharedvo.PlanBasic, false)

		_, err = uc.Execute(ctx, MarkSoldCommand{Actor: f.admin, Code: "QUIET001", Customer: customer, Payment: payment})
		require.NoError(t, err)

		select {
		case n := <-notifier.sent:
			t.Fatalf("unexpected notification for %s", n.Code)
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestRedeem(t *testing.T) {
	f := newFixture(t)
	uc := NewRedeemCodeUseCase(f.env.Codes, f.env.Logger)
	ctx := context.Background()

	f.env.SeedCode(t, "REDEEM01", sharedvo.PlanPremium, true)
	f.env.SeedCode(t, "UNSOLD01", sharedvo.PlanPremium, false)

	t.Run("requires a transaction", func(t *testing.T) {
		_, err := uc.Execute(ctx, "REDEEM01")
		require.Error(t, err)
		stored, _ := f.env.Codes.GetByCode(ctx, "REDEEM01")
		assert.Equal(t, vo.StatusSold, stored.Status())
	})

	t.Run("unsold code cannot be redeemed", func(t *testing.T) {
		err := f.env.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
			_, err := uc.Execute(ctx, "UNSOLD01")
			return err
		})
		assert.True(t, errors.IsInvalidStateError(err))
	})

	t.Run("redeems sold code", func(t *testing.T) {
		err := f.env.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
			ac, err := uc.Execute(ctx, "redeem01")
			if err == nil {
				assert.Equal(t, vo.StatusActivated, ac.Status())
			}
			return err
		})
		require.NoError(t, err)

		stored, _ := f.env.Codes.GetByCode(ctx, "REDEEM01")
		assert.Equal(t, vo.StatusActivated, stored.Status())
		assert.NotNil(t, stored.ActivatedAt())
	})

	t.Run("rolled back with the caller", func(t *testing.T) {
		f.env.SeedCode(t, "ROLLBK01", sharedvo.PlanBasic, true)
		boom := errors.NewInternalError("card insert failed")
		err := f.env.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
			if _, err := uc.Execute(ctx, "ROLLBK01"); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		stored, _ := f.env.Codes.GetByCode(ctx, "ROLLBK01")
		assert.Equal(t, vo.StatusSold, stored.Status())
	})
}

func TestListAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.env.SeedCode(t, "LIST0001", sharedvo.PlanBasic, false)
	f.env.SeedCode(t, "LIST0002", sharedvo.PlanBasic, true)
	f.env.SeedCode(t, "LIST0003", sharedvo.PlanPremium, true)

	list := NewListCodesUseCase(f.env.Codes, f.env.Enforcer, f.env.Logger)

	res, err := list.Execute(ctx, ListCodesQuery{Actor: f.admin, Status: "sold"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Len(t, res.Items, 2)

	res, err = list.Execute(ctx, ListCodesQuery{Actor: f.admin, Plan: "premium"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	_, err = list.Execute(ctx, ListCodesQuery{Actor: f.admin, Status: "lost"})
	assert.True(t, errors.IsValidationError(err))

	stats, err := NewCodeStatsUseCase(f.env.Codes, f.env.Enforcer, f.env.Logger).Execute(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Available)
	assert.Equal(t, int64(2), stats.Sold)
	assert.Equal(t, int64(9980), stats.SoldRevenueCents)
	assert.Equal(t, "99.80 BRL", stats.SoldRevenue)
}
