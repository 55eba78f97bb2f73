package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardly/internal/domain/setting"
	"cardly/internal/infrastructure/persistence/testdb"
	"cardly/internal/shared/logger"
)

func TestSystemSettingRepository_Upsert(t *testing.T) {
	repo := NewSystemSettingRepository(testdb.New(t), logger.NewNopLogger())
	ctx := context.Background()

	_, err := repo.GetByKey(ctx, setting.KeyProtectViewedOnDelete)
	assert.ErrorIs(t, err, setting.ErrSettingNotFound)

	s, err := setting.NewSystemSetting(setting.KeyProtectViewedOnDelete, setting.ValueTypeBool, "true", "protect viewed cards")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, s))
	assert.NotZero(t, s.ID())

	require.NoError(t, s.SetValue("false", 7))
	require.NoError(t, repo.Upsert(ctx, s))

	stored, err := repo.GetByKey(ctx, setting.KeyProtectViewedOnDelete)
	require.NoError(t, err)
	assert.Equal(t, "false", stored.Value())
	assert.Equal(t, uint(7), stored.UpdatedBy())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
