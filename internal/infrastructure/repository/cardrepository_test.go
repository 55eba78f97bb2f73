package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardly/internal/domain/card"
	vo "cardly/internal/domain/card/valueobjects"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/query"
)

func TestCardRepository_CreateAndLookup(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "owner")
	ownerID := owner.ID()
	c := createCard(t, r, &ownerID, "Ana Souza")
	assert.NotZero(t, c.ID())

	t.Run("by slug", func(t *testing.T) {
		found, err := r.cards.GetBySlug(ctx, c.Slug())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, c.ID(), found.ID())
		assert.Equal(t, "Acme", found.Profile().Company)
		assert.Equal(t, vo.StatusPending, found.Status())
		assert.Empty(t, found.SocialLinks())
	})

	t.Run("by legacy code", func(t *testing.T) {
		found, err := r.cards.GetByCode(ctx, c.Code())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, c.ID(), found.ID())
	})

	t.Run("missing slug", func(t *testing.T) {
		found, err := r.cards.GetBySlug(ctx, "nobody-000000")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := r.cards.ExistsBySlug(ctx, c.Slug())
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = r.cards.ExistsByCode(ctx, "00000000")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		dup, err := card.NewCard(nil, "Other", card.Profile{}, sharedvo.PlanBasic, c.Slug(), "99999999")
		require.NoError(t, err)
		err = r.cards.Create(ctx, dup)
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestCardRepository_UpdateKeepsClickCount(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	c := createCard(t, r, nil, "Bia")
	require.NoError(t, r.cards.IncrementClickCount(ctx, c.ID()))
	require.NoError(t, r.cards.IncrementClickCount(ctx, c.ID()))

	// c still holds click_count 0 in memory
	bio := "Designer"
	require.NoError(t, c.ApplyProfile(card.ProfilePatch{
		Bio:         &bio,
		SocialLinks: map[string]string{"LinkedIn": "https://linkedin.com/in/bia"},
	}))
	require.NoError(t, r.cards.Update(ctx, c))

	found, err := r.cards.GetByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.ClickCount())
	assert.Equal(t, "Designer", found.Profile().Bio)
	assert.Equal(t, map[string]string{"linkedin": "https://linkedin.com/in/bia"}, found.SocialLinks())
}

func TestCardRepository_IncrementMissingCard(t *testing.T) {
	r := setupRepos(t)
	err := r.cards.IncrementClickCount(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCardRepository_DeleteIfNoEvents(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	viewed := createCard(t, r, nil, "Viewed")
	appendEvent(t, r, viewed.ID(), "Mozilla/5.0")
	fresh := createCard(t, r, nil, "Fresh")

	deleted, err := r.cards.DeleteIfNoEvents(ctx, viewed.ID())
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = r.cards.DeleteIfNoEvents(ctx, fresh.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	still, err := r.cards.GetByID(ctx, viewed.ID())
	require.NoError(t, err)
	assert.NotNil(t, still)
	gone, err := r.cards.GetByID(ctx, fresh.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCardRepository_List(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "lister")
	ownerID := owner.ID()
	a := createCard(t, r, &ownerID, "Alpha")
	createCard(t, r, &ownerID, "Beta")
	createCard(t, r, nil, "Gamma")
	require.True(t, a.Activate())
	require.NoError(t, r.cards.Update(ctx, a))

	t.Run("by owner", func(t *testing.T) {
		list, total, err := r.cards.List(ctx, card.ListFilter{OwnerID: &ownerID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 2)

		count, err := r.cards.CountByOwner(ctx, ownerID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("by status", func(t *testing.T) {
		list, total, err := r.cards.List(ctx, card.ListFilter{Status: "activated"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "Alpha", list[0].Name())
	})

	t.Run("search and sort", func(t *testing.T) {
		list, _, err := r.cards.List(ctx, card.ListFilter{
			Search:     "a",
			BaseFilter: query.BaseFilter{SortFilter: query.SortFilter{SortBy: "name", SortOrder: "desc"}},
		})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Gamma", list[0].Name())
		assert.Equal(t, "Alpha", list[2].Name())
	})

	t.Run("unknown sort key does not reach SQL", func(t *testing.T) {
		list, _, err := r.cards.List(ctx, card.ListFilter{
			BaseFilter: query.BaseFilter{SortFilter: query.SortFilter{SortBy: "name; DROP TABLE cards"}},
		})
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})
}
