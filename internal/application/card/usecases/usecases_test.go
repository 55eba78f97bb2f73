package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codeUsecases "cardly/internal/application/activationcode/usecases"
	"cardly/internal/application/card/dto"
	settingUsecases "cardly/internal/application/setting/usecases"
	"cardly/internal/application/testutil"
	codevo "cardly/internal/domain/activationcode/valueobjects"
	"cardly/internal/domain/activationevent"
	"cardly/internal/domain/card"
	vo "cardly/internal/domain/card/valueobjects"
	"cardly/internal/domain/setting"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/query"
	"cardly/internal/shared/services/markdown"
)

type fixture struct {
	env      *testutil.Env
	settings *settingUsecases.SettingService
	admin    authorization.Actor
	client   authorization.Actor
	clientID uint
}

func newFixture(t *testing.T) *fixture {
	env := testutil.NewEnv(t)
	_, admin := env.CreateAdmin(t)
	u := env.CreateUser(t, "bia", authorization.RoleClient)
	return &fixture{
		env:      env,
		settings: settingUsecases.NewSettingService(env.Settings, env.Logger),
		admin:    admin,
		client:   testutil.ActorFor(u),
		clientID: u.ID(),
	}
}

func (f *fixture) create() *CreateCardUseCase {
	redeemer := codeUsecases.NewRedeemCodeUseCase(f.env.Codes, f.env.Logger)
	return NewCreateCardUseCase(f.env.Cards, f.env.Users, redeemer, f.env.Tx, 0, f.env.Enforcer, f.env.Logger)
}

func strPtr(s string) *string { return &s }

func TestCreateCard(t *testing.T) {
	f := newFixture(t)
	uc := f.create()
	ctx := context.Background()

	t.Run("admin without code creates a pending card", func(t *testing.T) {
		res, err := uc.Execute(ctx, CreateCardCommand{Actor: f.admin, Request: dto.CreateCardRequest{Name: "José Álvares"}})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusPending.String(), res.Status)
		assert.Equal(t, vo.PaymentStatusPending.String(), res.PaymentStatus)
		assert.Regexp(t, `^jose-alvares-[0-9a-z]{6}$`, res.Slug)
		assert.Regexp(t, `^[1-9][0-9]{7}$`, res.Code)
		assert.Zero(t, res.ClickCount)
		assert.Nil(t, res.ActivatedAt)
	})

	t.Run("admin may activate directly", func(t *testing.T) {
		res, err := uc.Execute(ctx, CreateCardCommand{Actor: f.admin, Request: dto.CreateCardRequest{Name: "Direct", Activate: true}})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusActivated.String(), res.Status)
		assert.NotNil(t, res.ActivatedAt)
	})

	t.Run("unknown owner", func(t *testing.T) {
		owner := uint(9999)
		_, err := uc.Execute(ctx, CreateCardCommand{Actor: f.admin, Request: dto.CreateCardRequest{Name: "X", OwnerID: &owner}})
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("code redemption activates and copies plan", func(t *testing.T) {
		f.env.SeedCode(t, "CARD0001", sharedvo.PlanBusiness, true)

		res, err := uc.Execute(ctx, CreateCardCommand{Actor: f.client, Request: dto.CreateCardRequest{Name: "Bia", ActivationCode: "card0001"}})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusActivated.String(), res.Status)
		assert.Equal(t, vo.PaymentStatusPaid.String(), res.PaymentStatus)
		assert.Equal(t, "business", res.Plan)
		require.NotNil(t, res.OwnerID)
		assert.Equal(t, f.clientID, *res.OwnerID)
		require.NotNil(t, res.ActivationCode)
		assert.Equal(t, "CARD0001", *res.ActivationCode)

		code, err := f.env.Codes.GetByCode(ctx, "CARD0001")
		require.NoError(t, err)
		assert.Equal(t, codevo.StatusActivated, code.Status())
	})

	t.Run("used code is rejected and no card is created", func(t *testing.T) {
		before, total, err := f.env.Cards.List(ctx, cardFilterAll())
		require.NoError(t, err)

		_, err = uc.Execute(ctx, CreateCardCommand{Actor: f.client, Request: dto.CreateCardRequest{Name: "Again", ActivationCode: "CARD0001"}})
		assert.True(t, errors.IsInvalidStateError(err))

		after, total2, err := f.env.Cards.List(ctx, cardFilterAll())
		require.NoError(t, err)
		assert.Equal(t, total, total2)
		assert.Len(t, after, len(before))
	})

	t.Run("unsold code is rejected", func(t *testing.T) {
		f.env.SeedCode(t, "CARD0002", sharedvo.PlanBasic, false)
		_, err := uc.Execute(ctx, CreateCardCommand{Actor: f.client, Request: dto.CreateCardRequest{Name: "Bia", ActivationCode: "CARD0002"}})
		assert.True(t, errors.IsInvalidStateError(err))
	})

	t.Run("clients need a code", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateCardCommand{Actor: f.client, Request: dto.CreateCardRequest{Name: "Free"}})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("clients cannot create for others", func(t *testing.T) {
		other := f.clientID + 100
		_, err := uc.Execute(ctx, CreateCardCommand{Actor: f.client, Request: dto.CreateCardRequest{Name: "X", OwnerID: &other, ActivationCode: "CARD0003"}})
		assert.True(t, errors.IsForbiddenError(err))
	})
}

func TestUpdateCard(t *testing.T) {
	f := newFixture(t)
	uc := NewUpdateCardUseCase(f.env.Cards, f.env.Enforcer, f.env.Logger)
	ctx := context.Background()
	c := f.env.CreateCard(t, &f.clientID, "Owned", true)
	f.env.AddViews(t, c.ID(), 3)

	t.Run("owner edits profile and views survive", func(t *testing.T) {
		res, err := uc.Execute(ctx, UpdateCardCommand{
			Actor:  f.client,
			CardID: c.ID(),
			Request: dto.UpdateCardRequest{
				JobTitle:    strPtr("CTO"),
				SocialLinks: map[string]string{"LinkedIn": "https://linkedin.com/in/bia"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "CTO", res.JobTitle)
		assert.Equal(t, map[string]string{"linkedin": "https://linkedin.com/in/bia"}, res.SocialLinks)
		assert.Equal(t, c.Slug(), res.Slug)

		stored, err := f.env.Cards.GetByID(ctx, c.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(3), stored.ClickCount())
	})

	t.Run("owner cannot touch admin fields", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateCardCommand{Actor: f.client, CardID: c.ID(), Request: dto.UpdateCardRequest{Plan: strPtr("business")}})
		assert.True(t, errors.IsForbiddenError(err))
	})

	t.Run("other clients are forbidden", func(t *testing.T) {
		stranger := testutil.ActorFor(f.env.CreateUser(t, "eve", authorization.RoleClient))
		_, err := uc.Execute(ctx, UpdateCardCommand{Actor: stranger, CardID: c.ID(), Request: dto.UpdateCardRequest{JobTitle: strPtr("x")}})
		assert.True(t, errors.IsForbiddenError(err))
	})

	t.Run("admin changes plan, payment and expiry", func(t *testing.T) {
		exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		res, err := uc.Execute(ctx, UpdateCardCommand{Actor: f.admin, CardID: c.ID(), Request: dto.UpdateCardRequest{
			Plan:          strPtr("premium"),
			PaymentStatus: strPtr("paid"),
			ExpiresAt:     &exp,
		}})
		require.NoError(t, err)
		assert.Equal(t, "premium", res.Plan)
		assert.Equal(t, "paid", res.PaymentStatus)
		require.NotNil(t, res.ExpiresAt)
		assert.True(t, exp.Equal(*res.ExpiresAt))
		assert.NotNil(t, res.PurchasedAt)
	})

	t.Run("illegal payment transition", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateCardCommand{Actor: f.admin, CardID: c.ID(), Request: dto.UpdateCardRequest{PaymentStatus: strPtr("failed")}})
		assert.True(t, errors.IsInvalidStateError(err))
	})

	t.Run("missing card", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateCardCommand{Actor: f.admin, CardID: 424242})
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestToggleStatus(t *testing.T) {
	f := newFixture(t)
	uc := NewToggleCardStatusUseCase(f.env.Cards, f.env.Enforcer, f.env.Logger)
	ctx := context.Background()
	c := f.env.CreateCard(t, nil, "Toggle", false)

	res, err := uc.Execute(ctx, f.admin, c.ID())
	require.NoError(t, err)
	assert.Equal(t, "activated", res.Status)
	first := res.ActivatedAt
	require.NotNil(t, first)

	res, err = uc.Execute(ctx, f.admin, c.ID())
	require.NoError(t, err)
	assert.Equal(t, "pending", res.Status)

	_, err = uc.Execute(ctx, f.client, c.ID())
	assert.True(t, errors.IsForbiddenError(err))
}

func TestRecordView(t *testing.T) {
	f := newFixture(t)
	uc := NewRecordViewUseCase(f.env.Cards, f.env.Events, f.env.Tx, f.env.Logger)
	ctx := context.Background()
	live := f.env.CreateCard(t, nil, "Live Card", true)
	pending := f.env.CreateCard(t, nil, "Pending Card", false)

	t.Run("by slug and by code", func(t *testing.T) {
		_, err := uc.Execute(ctx, RecordViewCommand{Lookup: live.Slug(), Meta: activationevent.RequestMeta{IP: "1.2.3.4", UserAgent: "iPhone; Mobile"}})
		require.NoError(t, err)
		_, err = uc.Execute(ctx, RecordViewCommand{Lookup: live.Code(), Meta: activationevent.RequestMeta{UserAgent: "iPad"}})
		require.NoError(t, err)

		stored, _ := f.env.Cards.GetByID(ctx, live.ID())
		assert.Equal(t, int64(2), stored.ClickCount())

		events, err := f.env.Events.ListByCard(ctx, live.ID())
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "1.2.3.4", events[0].IP())
		assert.Equal(t, "mobile", events[0].DeviceType().String())
		assert.Equal(t, "tablet", events[1].DeviceType().String())
	})

	t.Run("pending card is not found and not counted", func(t *testing.T) {
		_, err := uc.Execute(ctx, RecordViewCommand{Lookup: pending.Slug()})
		assert.True(t, errors.IsNotFoundError(err))
		n, _ := f.env.Events.CountByCard(ctx, pending.ID())
		assert.Zero(t, n)
	})

	t.Run("unknown lookup", func(t *testing.T) {
		_, err := uc.Execute(ctx, RecordViewCommand{Lookup: "nope"})
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("concurrent views stay consistent", func(t *testing.T) {
		c := f.env.CreateCard(t, nil, "Busy", true)
		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.Execute(ctx, RecordViewCommand{Lookup: c.Slug(), Meta: activationevent.RequestMeta{UserAgent: "Mozilla/5.0"}})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored, _ := f.env.Cards.GetByID(ctx, c.ID())
		events, _ := f.env.Events.CountByCard(ctx, c.ID())
		assert.Equal(t, int64(n), stored.ClickCount())
		assert.Equal(t, int64(n), events)
	})
}

func TestViewPublicCard(t *testing.T) {
	f := newFixture(t)
	record := NewRecordViewUseCase(f.env.Cards, f.env.Events, f.env.Tx, f.env.Logger)
	uc := NewViewPublicCardUseCase(record, markdown.NewMarkdownService(), f.env.Logger)
	ctx := context.Background()

	c := f.env.CreateCard(t, nil, "Bio Card", true)
	update := NewUpdateCardUseCase(f.env.Cards, f.env.Enforcer, f.env.Logger)
	_, err := update.Execute(ctx, UpdateCardCommand{Actor: f.admin, CardID: c.ID(), Request: dto.UpdateCardRequest{
		Bio: strPtr("**Hello** <script>alert(1)</script>"),
	}})
	require.NoError(t, err)

	res, err := uc.Execute(ctx, RecordViewCommand{Lookup: c.Slug()})
	require.NoError(t, err)
	assert.Contains(t, res.BioHTML, "<strong>Hello</strong>")
	assert.NotContains(t, res.BioHTML, "<script>")
	assert.Equal(t, c.Slug(), res.Slug)
}

func TestBulkCards(t *testing.T) {
	f := newFixture(t)
	uc := NewBulkCardsUseCase(f.env.Cards, f.env.Events, f.env.Tx, f.settings, f.env.Enforcer, f.env.Logger)
	ctx := context.Background()

	t.Run("activate counts only changes", func(t *testing.T) {
		a := f.env.CreateCard(t, nil, "A", false)
		b := f.env.CreateCard(t, nil, "B", true)

		res, err := uc.Execute(ctx, BulkCardsCommand{Actor: f.admin, IDs: []uint{a.ID(), b.ID(), a.ID(), 999999}, Action: BulkActivate})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Affected)
		assert.Equal(t, 1, res.Skipped)
		assert.Equal(t, 1, res.NotFound)
	})

	t.Run("deactivate", func(t *testing.T) {
		a := f.env.CreateCard(t, nil, "On", true)
		res, err := uc.Execute(ctx, BulkCardsCommand{Actor: f.admin, IDs: []uint{a.ID()}, Action: BulkDeactivate})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Affected)
		stored, _ := f.env.Cards.GetByID(ctx, a.ID())
		assert.Equal(t, vo.StatusPending, stored.Status())
	})

	t.Run("delete protects viewed cards by default", func(t *testing.T) {
		fresh := f.env.CreateCard(t, nil, "Fresh", true)
		viewed := f.env.CreateCard(t, nil, "Viewed", true)
		f.env.AddViews(t, viewed.ID(), 2)

		res, err := uc.Execute(ctx, BulkCardsCommand{Actor: f.admin, IDs: []uint{fresh.ID(), viewed.ID()}, Action: BulkDelete})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Affected)
		assert.Equal(t, 1, res.Skipped)

		gone, _ := f.env.Cards.GetByID(ctx, fresh.ID())
		kept, _ := f.env.Cards.GetByID(ctx, viewed.ID())
		assert.Nil(t, gone)
		assert.NotNil(t, kept)
	})

	t.Run("delete cascades when protection is off", func(t *testing.T) {
		_, err := f.settings.Set(ctx, setting.KeyProtectViewedOnDelete, "false", 1)
		require.NoError(t, err)
		viewed := f.env.CreateCard(t, nil, "Viewed Too", true)
		f.env.AddViews(t, viewed.ID(), 2)

		res, err := uc.Execute(ctx, BulkCardsCommand{Actor: f.admin, IDs: []uint{viewed.ID()}, Action: BulkDelete})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Affected)
		n, _ := f.env.Events.CountByCard(ctx, viewed.ID())
		assert.Zero(t, n)
	})

	t.Run("rejects unknown action and empty ids", func(t *testing.T) {
		_, err := uc.Execute(ctx, BulkCardsCommand{Actor: f.admin, IDs: []uint{1}, Action: "archive"})
		assert.True(t, errors.IsValidationError(err))
		_, err = uc.Execute(ctx, BulkCardsCommand{Actor: f.admin, IDs: []uint{0}, Action: BulkActivate})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("clients are forbidden", func(t *testing.T) {
		_, err := uc.Execute(ctx, BulkCardsCommand{Actor: f.client, IDs: []uint{1}, Action: BulkActivate})
		assert.True(t, errors.IsForbiddenError(err))
	})
}

func TestDeleteCard(t *testing.T) {
	f := newFixture(t)
	uc := NewDeleteCardUseCase(f.env.Cards, f.env.Events, f.env.Tx, f.env.Enforcer, f.env.Logger)
	ctx := context.Background()
	c := f.env.CreateCard(t, nil, "Doomed", true)
	f.env.AddViews(t, c.ID(), 4)

	require.NoError(t, uc.Execute(ctx, f.admin, c.ID()))
	gone, _ := f.env.Cards.GetByID(ctx, c.ID())
	assert.Nil(t, gone)
	n, _ := f.env.Events.CountByCard(ctx, c.ID())
	assert.Zero(t, n)

	assert.True(t, errors.IsNotFoundError(uc.Execute(ctx, f.admin, c.ID())))
}

func TestListAndGetCards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.env.CreateCard(t, &f.clientID, "Mine", true)
	f.env.CreateCard(t, nil, "Other", false)
	f.env.AddViews(t, mine.ID(), 2)

	list := NewListCardsUseCase(f.env.Cards, f.env.Events, f.env.Enforcer, f.env.Logger)

	res, err := list.Execute(ctx, ListCardsQuery{Actor: f.admin})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = list.Execute(ctx, ListCardsQuery{Actor: f.client})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, mine.ID(), res.Items[0].ID)
	require.NotNil(t, res.Items[0].EventCount)
	assert.Equal(t, int64(2), *res.Items[0].EventCount)

	res, err = list.Execute(ctx, ListCardsQuery{Actor: f.admin, Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	_, err = list.Execute(ctx, ListCardsQuery{Actor: f.admin, Status: "archived"})
	assert.True(t, errors.IsValidationError(err))

	get := NewGetCardUseCase(f.env.Cards, f.env.Events, f.env.Enforcer, f.env.Logger)
	got, err := get.Execute(ctx, f.client, mine.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), *got.EventCount)

	_, err = get.Execute(ctx, testutil.ActorFor(f.env.CreateUser(t, "eve", authorization.RoleClient)), mine.ID())
	assert.True(t, errors.IsForbiddenError(err))
}

func cardFilterAll() card.ListFilter {
	return card.ListFilter{BaseFilter: query.BaseFilter{PageFilter: query.PageFilter{PageSize: -1}}}
}
