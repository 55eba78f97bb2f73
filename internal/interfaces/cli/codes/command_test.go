package codes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codevo "cardly/internal/domain/activationcode/valueobjects"
	"cardly/internal/infrastructure/config"
	"cardly/internal/infrastructure/persistence/testdb"
	"cardly/internal/infrastructure/repository"
	sharedConfig "cardly/internal/shared/config"
	"cardly/internal/shared/logger"
)

func TestParseSeedFile(t *testing.T) {
	f, err := ParseSeedFile([]byte(`
batches:
  - plan: basic
    count: 5
  - plan: premium
    count: 2
    amount_cents: 9990
    currency: BRL
`))
	require.NoError(t, err)
	require.Len(t, f.Batches, 2)
	assert.Equal(t, "basic", f.Batches[0].Plan)
	assert.Nil(t, f.Batches[0].AmountCents)
	require.NotNil(t, f.Batches[1].AmountCents)
	assert.Equal(t, int64(9990), *f.Batches[1].AmountCents)

	_, err = ParseSeedFile([]byte("batches: []"))
	assert.Error(t, err)
	_, err = ParseSeedFile([]byte("batches:\n  - plan: basic\n    count: 0\n"))
	assert.Error(t, err)
	_, err = ParseSeedFile([]byte("batches:\n  - count: 3\n"))
	assert.Error(t, err)
	_, err = ParseSeedFile([]byte("batches: [unclosed"))
	assert.Error(t, err)
}

func TestSeeder_SeedsAsSystem(t *testing.T) {
	gdb := testdb.New(t)
	log := logger.NewNopLogger()
	cfg := &config.Config{Codes: sharedConfig.CodesConfig{Length: 8, MaxAttempts: 10}}

	seeder, err := NewSeeder(gdb, cfg, log)
	require.NoError(t, err)

	created, err := seeder.Seed(context.Background(), Batch{Plan: "business", Count: 4})
	require.NoError(t, err)
	require.Len(t, created, 4)

	repo := repository.NewActivationCodeRepository(gdb, log)
	for _, code := range created {
		assert.Len(t, code, 8)
		ac, err := repo.GetByCode(context.Background(), code)
		require.NoError(t, err)
		require.NotNil(t, ac)
		assert.Equal(t, codevo.StatusAvailable, ac.Status())
	}
}
