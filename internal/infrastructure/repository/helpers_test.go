package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cardly/internal/domain/activationevent"
	"cardly/internal/domain/card"
	sharedvo "cardly/internal/domain/shared/valueobjects"
	"cardly/internal/domain/user"
	"cardly/internal/infrastructure/persistence/testdb"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/logger"
)

var fixtureSeq atomic.Int64

type repos struct {
	db     *gorm.DB
	codes  *ActivationCodeRepository
	cards  *CardRepository
	events *ActivationEventRepository
	users  *UserRepository
}

func setupRepos(t *testing.T) *repos {
	gdb := testdb.New(t)
	log := logger.NewNopLogger()
	return &repos{
		db:     gdb,
		codes:  NewActivationCodeRepository(gdb, log).(*ActivationCodeRepository),
		cards:  NewCardRepository(gdb, log).(*CardRepository),
		events: NewActivationEventRepository(gdb, log).(*ActivationEventRepository),
		users:  NewUserRepository(gdb, log).(*UserRepository),
	}
}

// steppedClock makes biztime.NowUTC advance one minute per call from start.
func steppedClock(t *testing.T, start time.Time) {
	var n atomic.Int64
	restore := biztime.SetNowFunc(func() time.Time {
		return start.Add(time.Duration(n.Add(1)) * time.Minute)
	})
	t.Cleanup(restore)
}

func createUser(t *testing.T, r *repos, name string) *user.User {
	u, err := user.NewUser(name, fmt.Sprintf("%s@example.com", name), "hash", authorization.RoleClient)
	require.NoError(t, err)
	require.NoError(t, r.users.Create(context.Background(), u))
	return u
}

func createCard(t *testing.T, r *repos, ownerID *uint, name string) *card.Card {
	seq := fixtureSeq.Add(1)
	c, err := card.NewCard(ownerID, name, card.Profile{Company: "Acme"}, sharedvo.PlanBasic,
		card.BuildSlug(name, fmt.Sprintf("s%05d", seq)), fmt.Sprintf("%08d", 10000000+seq))
	require.NoError(t, err)
	require.NoError(t, r.cards.Create(context.Background(), c))
	return c
}

func appendEvent(t *testing.T, r *repos, cardID uint, ua string) *activationevent.ActivationEvent {
	e, err := activationevent.NewActivationEvent(cardID, activationevent.RequestMeta{IP: "10.0.0.1", UserAgent: ua})
	require.NoError(t, err)
	require.NoError(t, r.events.Append(context.Background(), e))
	return e
}
