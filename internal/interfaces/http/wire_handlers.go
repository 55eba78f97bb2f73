package http

import (
	"cardly/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler         *handlers.HealthHandler
	authHandler           *handlers.AuthHandler
	userHandler           *handlers.UserHandler
	cardHandler           *handlers.CardHandler
	publicCardHandler     *handlers.PublicCardHandler
	activationCodeHandler *handlers.ActivationCodeHandler
	analyticsHandler      *handlers.AnalyticsHandler
	settingHandler        *handlers.SettingHandler
	paymentHandler        *handlers.PaymentHandler
}

func (c *Container) initHandlers() {
	ucs := c.ucs
	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(c.db, c.log),
		authHandler:   handlers.NewAuthHandler(ucs.login, c.log),
		userHandler: handlers.NewUserHandler(handlers.UserUseCases{
			Create: ucs.createUser,
			Update: ucs.updateUser,
			Toggle: ucs.toggleUser,
			Delete: ucs.deleteUser,
			Get:    ucs.getUser,
			List:   ucs.listUsers,
			Bulk:   ucs.bulkUsers,
			Export: ucs.exportUsers,
		}, c.log),
		cardHandler: handlers.NewCardHandler(handlers.CardUseCases{
			Create: ucs.createCard,
			Update: ucs.updateCard,
			Toggle: ucs.toggleCard,
			Delete: ucs.deleteCard,
			Get:    ucs.getCard,
			List:   ucs.listCards,
			Bulk:   ucs.bulkCards,
		}, c.log),
		publicCardHandler:     handlers.NewPublicCardHandler(ucs.viewCard, c.log),
		activationCodeHandler: handlers.NewActivationCodeHandler(ucs.seedCodes, ucs.markSold, ucs.listCodes, ucs.codeStats, c.log),
		analyticsHandler:      handlers.NewAnalyticsHandler(ucs.cardAnalytics, ucs.userStats, ucs.exportActivations, c.log),
		settingHandler:        handlers.NewSettingHandler(ucs.getSettings, ucs.updateSetting, c.log),
		paymentHandler:        handlers.NewPaymentHandler(ucs.paymentCompleted, c.log),
	}
}
