package http

import (
	"cardly/internal/domain/activationcode"
	"cardly/internal/domain/activationevent"
	"cardly/internal/domain/card"
	"cardly/internal/domain/setting"
	"cardly/internal/domain/user"
	"cardly/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo    user.Repository
	cardRepo    card.Repository
	codeRepo    activationcode.Repository
	eventRepo   activationevent.Repository
	settingRepo setting.Repository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		userRepo:    repository.NewUserRepository(c.db, c.log),
		cardRepo:    repository.NewCardRepository(c.db, c.log),
		codeRepo:    repository.NewActivationCodeRepository(c.db, c.log),
		eventRepo:   repository.NewActivationEventRepository(c.db, c.log),
		settingRepo: repository.NewSystemSettingRepository(c.db, c.log),
	}
}
