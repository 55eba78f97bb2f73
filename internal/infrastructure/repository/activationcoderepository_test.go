package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardly/internal/domain/activationcode"
	vo "cardly/internal/domain/activationcode/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/query"
)

func newCode(t *testing.T, code string, plan sharedvo.Plan, cents int64) *activationcode.ActivationCode {
	c, err := activationcode.NewActivationCode(code, plan, sharedvo.NewMoney(cents, sharedvo.DefaultCurrency))
	require.NoError(t, err)
	return c
}

func TestActivationCodeRepository_CreateAndGet(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	c := newCode(t, "abcd1234", sharedvo.PlanPremium, 4990)
	require.NoError(t, r.codes.Create(ctx, c))
	assert.NotZero(t, c.ID())

	found, err := r.codes.GetByCode(ctx, "ABCD1234")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, vo.StatusAvailable, found.Status())
	assert.Equal(t, int64(4990), found.Amount().AmountInCents())
	assert.Equal(t, sharedvo.PlanPremium, found.Plan())

	missing, err := r.codes.GetByCode(ctx, "NOPE0000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := r.codes.ExistsByCode(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("duplicate code is an integrity conflict", func(t *testing.T) {
		err := r.codes.Create(ctx, newCode(t, "ABCD1234", sharedvo.PlanBasic, 0))
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestActivationCodeRepository_CreateBatch(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	batch := []*activationcode.ActivationCode{
		newCode(t, "BATCH001", sharedvo.PlanBasic, 1000),
		newCode(t, "BATCH002", sharedvo.PlanBasic, 1000),
		newCode(t, "BATCH003", sharedvo.PlanBasic, 1000),
	}
	require.NoError(t, r.codes.CreateBatch(ctx, batch))
	for _, c := range batch {
		assert.NotZero(t, c.ID())
	}

	_, total, err := r.codes.List(ctx, activationcode.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestActivationCodeRepository_UpdateTransitions(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	c := newCode(t, "SELL0001", sharedvo.PlanBasic, 2500)
	require.NoError(t, r.codes.Create(ctx, c))

	loaded, err := r.codes.GetByCode(ctx, "SELL0001")
	require.NoError(t, err)
	require.NoError(t, loaded.MarkSold(
		activationcode.CustomerInfo{Name: "Ana", Email: "ana@example.com", Phone: "+55 11 90000-0000"},
		activationcode.PaymentInfo{Method: "pix", ReferenceID: "pay_1"},
	))
	require.NoError(t, r.codes.Update(ctx, loaded))

	sold, err := r.codes.GetByCode(ctx, "SELL0001")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusSold, sold.Status())
	assert.NotNil(t, sold.SoldAt())
	assert.Nil(t, sold.ActivatedAt())
	assert.Equal(t, "ana@example.com", sold.Customer().Email)
	assert.Equal(t, "pay_1", sold.Payment().ReferenceID)

	t.Run("stale copy loses the race", func(t *testing.T) {
		stale, err := r.codes.GetByCode(ctx, "SELL0001")
		require.NoError(t, err)
		fresh, err := r.codes.GetByCode(ctx, "SELL0001")
		require.NoError(t, err)

		require.NoError(t, fresh.Redeem())
		require.NoError(t, r.codes.Update(ctx, fresh))

		require.NoError(t, stale.Redeem())
		err = r.codes.Update(ctx, stale)
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestActivationCodeRepository_ConcurrentRedeemSingleWinner(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	c := newCode(t, "RACE0001", sharedvo.PlanBasic, 0)
	require.NoError(t, r.codes.Create(ctx, c))
	require.NoError(t, c.MarkSold(activationcode.CustomerInfo{Name: "A", Email: "a@example.com"}, activationcode.PaymentInfo{}))
	require.NoError(t, r.codes.Update(ctx, c))

	// load all copies first so every goroutine starts from the same version
	const workers = 5
	copies := make([]*activationcode.ActivationCode, workers)
	for i := range copies {
		loaded, err := r.codes.GetByCode(ctx, "RACE0001")
		require.NoError(t, err)
		copies[i] = loaded
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for _, cp := range copies {
		wg.Add(1)
		go func(cp *activationcode.ActivationCode) {
			defer wg.Done()
			if err := cp.Redeem(); err != nil {
				return
			}
			if err := r.codes.Update(ctx, cp); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(cp)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestActivationCodeRepository_ListAndStats(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, r.codes.CreateBatch(ctx, []*activationcode.ActivationCode{
		newCode(t, "LIST0001", sharedvo.PlanBasic, 1000),
		newCode(t, "LIST0002", sharedvo.PlanPremium, 3000),
		newCode(t, "LIST0003", sharedvo.PlanPremium, 3000),
	}))

	sold, err := r.codes.GetByCode(ctx, "LIST0002")
	require.NoError(t, err)
	require.NoError(t, sold.MarkSold(activationcode.CustomerInfo{Name: "Bia", Email: "bia@example.com"}, activationcode.PaymentInfo{}))
	require.NoError(t, r.codes.Update(ctx, sold))

	// each transition is persisted before the next one
	fresh, err := r.codes.GetByCode(ctx, "LIST0003")
	require.NoError(t, err)
	require.NoError(t, fresh.MarkSold(activationcode.CustomerInfo{Name: "Caio", Email: "caio@example.com"}, activationcode.PaymentInfo{}))
	require.NoError(t, r.codes.Update(ctx, fresh))
	require.NoError(t, fresh.Redeem())
	require.NoError(t, r.codes.Update(ctx, fresh))

	t.Run("filter by status", func(t *testing.T) {
		list, total, err := r.codes.List(ctx, activationcode.ListFilter{Status: "sold"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "LIST0002", list[0].Code())
	})

	t.Run("search customer email", func(t *testing.T) {
		list, _, err := r.codes.List(ctx, activationcode.ListFilter{Search: "caio@"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "LIST0003", list[0].Code())
	})

	t.Run("sort by code ascending with paging", func(t *testing.T) {
		list, total, err := r.codes.List(ctx, activationcode.ListFilter{BaseFilter: query.BaseFilter{
			PageFilter: query.PageFilter{Page: 1, PageSize: 2},
			SortFilter: query.SortFilter{SortBy: "code", SortOrder: "asc"},
		}})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, list, 2)
		assert.Equal(t, "LIST0001", list[0].Code())
		assert.Equal(t, "LIST0002", list[1].Code())
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := r.codes.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Available)
		assert.Equal(t, int64(1), stats.Sold)
		assert.Equal(t, int64(1), stats.Activated)
		assert.Equal(t, int64(3), stats.Total())
		assert.Equal(t, int64(6000), stats.SoldRevenueCents)
	})
}
