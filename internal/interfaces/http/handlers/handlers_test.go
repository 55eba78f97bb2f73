package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsUsecases "cardly/internal/application/analytics/usecases"
	codeUsecases "cardly/internal/application/activationcode/usecases"
	carddto "cardly/internal/application/card/dto"
	cardUsecases "cardly/internal/application/card/usecases"
	paymentUsecases "cardly/internal/application/payment/usecases"
	settingUsecases "cardly/internal/application/setting/usecases"
	apptestutil "cardly/internal/application/testutil"
	userdto "cardly/internal/application/user/dto"
	userUsecases "cardly/internal/application/user/usecases"
	codevo "cardly/internal/domain/activationcode/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/domain/user"
	"cardly/internal/infrastructure/auth"
	"cardly/internal/interfaces/adapters"
	"cardly/internal/interfaces/http/handlers/testutil"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/services/markdown"
)

func newCardHandler(env *apptestutil.Env) *CardHandler {
	redeemer := codeUsecases.NewRedeemCodeUseCase(env.Codes, env.Logger)
	settings := settingUsecases.NewSettingService(env.Settings, env.Logger)
	return NewCardHandler(CardUseCases{
		Create: cardUsecases.NewCreateCardUseCase(env.Cards, env.Users, redeemer, env.Tx, 0, env.Enforcer, env.Logger),
		Update: cardUsecases.NewUpdateCardUseCase(env.Cards, env.Enforcer, env.Logger),
		Toggle: cardUsecases.NewToggleCardStatusUseCase(env.Cards, env.Enforcer, env.Logger),
		Delete: cardUsecases.NewDeleteCardUseCase(env.Cards, env.Events, env.Tx, env.Enforcer, env.Logger),
		Get:    cardUsecases.NewGetCardUseCase(env.Cards, env.Events, env.Enforcer, env.Logger),
		List:   cardUsecases.NewListCardsUseCase(env.Cards, env.Events, env.Enforcer, env.Logger),
		Bulk:   cardUsecases.NewBulkCardsUseCase(env.Cards, env.Events, env.Tx, settings, env.Enforcer, env.Logger),
	}, env.Logger)
}

func TestCardHandler_CreateAndGet(t *testing.T) {
	env := apptestutil.NewEnv(t)
	_, admin := env.CreateAdmin(t)
	stranger := apptestutil.ActorFor(env.CreateUser(t, "stranger", authorization.RoleClient))
	h := newCardHandler(env)

	c, w := testutil.NewTestContext(http.MethodPost, "/cards", map[string]any{
		"name":     "Joana Prado",
		"company":  "Acme",
		"activate": true,
	})
	testutil.SetAuthContext(c, admin)
	h.CreateCard(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.True(t, resp.Success)
	var created carddto.CardDTO
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.True(t, strings.HasPrefix(created.Slug, "joana-prado-"))
	assert.Equal(t, "activated", created.Status)
	assert.Len(t, created.Code, 8)

	id := fmt.Sprint(created.ID)

	c, w = testutil.NewTestContext(http.MethodGet, "/cards/"+id, nil)
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "id", id)
	h.GetCard(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/cards/"+id, nil)
	testutil.SetAuthContext(c, stranger)
	testutil.SetURLParam(c, "id", id)
	h.GetCard(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/cards/"+id, nil)
	testutil.SetURLParam(c, "id", id)
	h.GetCard(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/cards/abc", nil)
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "id", "abc")
	h.GetCard(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCardHandler_CreateRejectsInvalidBody(t *testing.T) {
	env := apptestutil.NewEnv(t)
	_, admin := env.CreateAdmin(t)
	h := newCardHandler(env)

	c, w := testutil.NewTestContext(http.MethodPost, "/cards", map[string]any{
		"name":  "Joana",
		"email": "not-an-email",
	})
	testutil.SetAuthContext(c, admin)
	h.CreateCard(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
}

func TestPublicCardHandler_ViewCard(t *testing.T) {
	env := apptestutil.NewEnv(t)
	owner := env.CreateUser(t, "owner", authorization.RoleClient)
	ownerID := owner.ID()
	active := env.CreateCard(t, &ownerID, "Rita Lima", true)
	pending := env.CreateCard(t, &ownerID, "Pending Card", false)

	record := cardUsecases.NewRecordViewUseCase(env.Cards, env.Events, env.Tx, env.Logger)
	h := NewPublicCardHandler(cardUsecases.NewViewPublicCardUseCase(record, markdown.NewMarkdownService(), env.Logger), env.Logger)

	c, w := testutil.NewTestContext(http.MethodGet, "/c/"+active.Slug(), nil)
	c.Request.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)")
	testutil.SetURLParam(c, "lookup", active.Slug())
	h.ViewCard(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	c, w = testutil.NewTestContext(http.MethodGet, "/c/"+active.Code(), nil)
	testutil.SetURLParam(c, "lookup", active.Code())
	h.ViewCard(c)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.Cards.GetByID(context.Background(), active.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.ClickCount())
	n, err := env.Events.CountByCard(context.Background(), active.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	c, w = testutil.NewTestContext(http.MethodGet, "/c/"+pending.Slug(), nil)
	testutil.SetURLParam(c, "lookup", pending.Slug())
	h.ViewCard(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/c/nobody-here", nil)
	testutil.SetURLParam(c, "lookup", "nobody-here")
	h.ViewCard(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_HandleWebhook(t *testing.T) {
	env := apptestutil.NewEnv(t)
	env.SeedCode(t, "PAYME1", sharedvo.PlanPremium, false)
	settings := settingUsecases.NewSettingService(env.Settings, env.Logger)
	seller := codeUsecases.NewMarkSoldUseCase(env.Codes, nil, settings, env.Enforcer, env.Logger)
	h := NewPaymentHandler(paymentUsecases.NewHandlePaymentCompletedUseCase(env.Codes, seller, env.Logger), env.Logger)

	payload := map[string]any{
		"code":           "payme1",
		"status":         "paid",
		"method":         "pix",
		"reference_id":   "txn-42",
		"customer_name":  "Ana",
		"customer_email": "ana@example.com",
	}

	outcome := func(body map[string]any) (int, string) {
		c, w := testutil.NewTestContext(http.MethodPost, "/webhooks/payments", body)
		h.HandleWebhook(c)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var data struct {
			Outcome string `json:"outcome"`
		}
		if resp.Success {
			require.NoError(t, json.Unmarshal(resp.Data, &data))
		}
		return w.Code, data.Outcome
	}

	code, out := outcome(payload)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, paymentUsecases.OutcomeSold, out)

	code, out = outcome(payload)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, paymentUsecases.OutcomeAlreadyProcessed, out)

	stored, err := env.Codes.GetByCode(context.Background(), "PAYME1")
	require.NoError(t, err)
	assert.Equal(t, codevo.StatusSold, stored.Status())

	code, _ = outcome(map[string]any{"code": "PAYME1"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := apptestutil.NewEnv(t)
	hasher := auth.NewBcryptPasswordHasher(4)
	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	u, err := user.NewUser("rita", "rita@example.com", hash, authorization.RoleClient)
	require.NoError(t, err)
	require.NoError(t, env.Users.Create(context.Background(), u))

	issuer := adapters.NewJWTTokenIssuer(auth.NewJWTService("test-secret", 30))
	h := NewAuthHandler(userUsecases.NewLoginUseCase(env.Users, hasher, issuer, env.Logger), env.Logger)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]any{"email": "rita@example.com", "password": "s3cret-pass"})
	h.Login(c)
	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var login userdto.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, int64(1800), login.ExpiresIn)

	c, w = testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]any{"email": "rita@example.com", "password": "wrong-pass"})
	h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]any{"email": "rita@example.com"})
	h.Login(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_ExportUsers(t *testing.T) {
	env := apptestutil.NewEnv(t)
	_, admin := env.CreateAdmin(t)
	env.CreateUser(t, "bia", authorization.RoleClient)
	h := NewUserHandler(UserUseCases{
		Export: analyticsUsecases.NewExportUsersUseCase(env.Users, env.Enforcer, env.Logger),
	}, env.Logger)

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/users/export", nil)
	testutil.SetQueryParams(c, map[string]string{"format": "csv", "role": "client"})
	testutil.SetAuthContext(c, admin)
	h.ExportUsers(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="users-`)
	body := w.Body.String()
	assert.Contains(t, body, "Name,Email,Role,Status,CardsCount,TotalViews,CreatedAt")
	assert.Contains(t, body, "bia,")
	assert.NotContains(t, body, "admin,")

	c, w = testutil.NewTestContext(http.MethodGet, "/admin/users/export", nil)
	testutil.SetQueryParams(c, map[string]string{"format": "pdf"})
	testutil.SetAuthContext(c, admin)
	h.ExportUsers(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingHandler_UpdateAndList(t *testing.T) {
	env := apptestutil.NewEnv(t)
	_, admin := env.CreateAdmin(t)
	client := apptestutil.ActorFor(env.CreateUser(t, "bia", authorization.RoleClient))
	service := settingUsecases.NewSettingService(env.Settings, env.Logger)
	h := NewSettingHandler(
		settingUsecases.NewGetSettingsUseCase(service, env.Enforcer, env.Logger),
		settingUsecases.NewUpdateSettingUseCase(service, env.Enforcer, env.Logger),
		env.Logger,
	)

	c, w := testutil.NewTestContext(http.MethodPut, "/admin/settings/analytics.recent_events_limit", map[string]any{"value": "25"})
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "key", "analytics.recent_events_limit")
	h.UpdateSetting(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, service.GetInt(context.Background(), "analytics.recent_events_limit"))

	c, w = testutil.NewTestContext(http.MethodPut, "/admin/settings/analytics.recent_events_limit", map[string]any{"value": "lots"})
	testutil.SetAuthContext(c, admin)
	testutil.SetURLParam(c, "key", "analytics.recent_events_limit")
	h.UpdateSetting(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/admin/settings", nil)
	testutil.SetAuthContext(c, client)
	h.ListSettings(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/admin/settings", nil)
	testutil.SetAuthContext(c, admin)
	h.ListSettings(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"value":"25"`)
}
