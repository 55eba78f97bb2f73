package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardly/internal/application/testutil"
	"cardly/internal/domain/setting"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
)

// countingRepo counts GetAll calls to observe cache hits.
type countingRepo struct {
	setting.Repository
	loads int
}

func (r *countingRepo) GetAll(ctx context.Context) ([]*setting.SystemSetting, error) {
	r.loads++
	return r.Repository.GetAll(ctx)
}

func TestSettingService_DefaultsAndOverrides(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := NewSettingService(env.Settings, env.Logger)
	ctx := context.Background()

	assert.True(t, svc.GetBool(ctx, setting.KeyProtectViewedOnDelete))
	assert.Equal(t, 10, svc.GetInt(ctx, setting.KeyRecentEventsLimit))

	_, err := svc.Set(ctx, setting.KeyProtectViewedOnDelete, "false", 1)
	require.NoError(t, err)
	_, err = svc.Set(ctx, setting.KeyRecentEventsLimit, "25", 1)
	require.NoError(t, err)

	assert.False(t, svc.GetBool(ctx, setting.KeyProtectViewedOnDelete))
	assert.Equal(t, 25, svc.GetInt(ctx, setting.KeyRecentEventsLimit))
	assert.Equal(t, "25", svc.GetString(ctx, setting.KeyRecentEventsLimit))
}

func TestSettingService_CachesUntilWrite(t *testing.T) {
	env := testutil.NewEnv(t)
	repo := &countingRepo{Repository: env.Settings}
	svc := NewSettingService(repo, env.Logger)
	ctx := context.Background()

	svc.GetBool(ctx, setting.KeyCodeSoldMailEnabled)
	svc.GetInt(ctx, setting.KeyRecentEventsLimit)
	assert.Equal(t, 1, repo.loads)

	_, err := svc.Set(ctx, setting.KeyCodeSoldMailEnabled, "false", 1)
	require.NoError(t, err)
	assert.False(t, svc.GetBool(ctx, setting.KeyCodeSoldMailEnabled))
	assert.Equal(t, 2, repo.loads)
}

func TestSettingService_RejectsBadWrites(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := NewSettingService(env.Settings, env.Logger)
	ctx := context.Background()

	_, err := svc.Set(ctx, "nope.unknown", "1", 1)
	assert.True(t, errors.IsValidationError(err))

	_, err = svc.Set(ctx, setting.KeyRecentEventsLimit, "ten", 1)
	assert.True(t, errors.IsValidationError(err))

	_, err = svc.Set(ctx, setting.KeyProtectViewedOnDelete, "maybe", 1)
	assert.True(t, errors.IsValidationError(err))
}

func TestSettingService_ListMarksDefaults(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := NewSettingService(env.Settings, env.Logger)
	ctx := context.Background()

	_, err := svc.Set(ctx, setting.KeyDefaultCodeAmount, "4990", 7)
	require.NoError(t, err)

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 4)

	byKey := map[string]SettingView{}
	for _, v := range views {
		byKey[v.Setting.Key()] = v
	}
	assert.False(t, byKey[setting.KeyDefaultCodeAmount].IsDefault)
	assert.Equal(t, uint(7), byKey[setting.KeyDefaultCodeAmount].Setting.UpdatedBy())
	assert.True(t, byKey[setting.KeyRecentEventsLimit].IsDefault)
}

func TestSettingUseCases_RequireAdmin(t *testing.T) {
	env := testutil.NewEnv(t)
	svc := NewSettingService(env.Settings, env.Logger)
	_, admin := env.CreateAdmin(t)
	client := testutil.ActorFor(env.CreateUser(t, "carla", authorization.RoleClient))
	ctx := context.Background()

	get := NewGetSettingsUseCase(svc, env.Enforcer, env.Logger)
	update := NewUpdateSettingUseCase(svc, env.Enforcer, env.Logger)

	_, err := get.Execute(ctx, client)
	assert.True(t, errors.IsForbiddenError(err))
	_, err = update.Execute(ctx, UpdateSettingCommand{Actor: client, Key: setting.KeyRecentEventsLimit, Value: "3"})
	assert.True(t, errors.IsForbiddenError(err))

	resp, err := update.Execute(ctx, UpdateSettingCommand{Actor: admin, Key: setting.KeyRecentEventsLimit, Value: "3"})
	require.NoError(t, err)
	assert.Equal(t, "3", resp.Value)

	list, err := get.Execute(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}
