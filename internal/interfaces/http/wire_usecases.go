package http

import (
	codeUsecases "cardly/internal/application/activationcode/usecases"
	analyticsUsecases "cardly/internal/application/analytics/usecases"
	cardUsecases "cardly/internal/application/card/usecases"
	paymentUsecases "cardly/internal/application/payment/usecases"
	settingUsecases "cardly/internal/application/setting/usecases"
	userUsecases "cardly/internal/application/user/usecases"
	"cardly/internal/infrastructure/email"
	"cardly/internal/interfaces/adapters"
	"cardly/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User & Auth
	login      *userUsecases.LoginUseCase
	createUser *userUsecases.CreateUserUseCase
	updateUser *userUsecases.UpdateUserUseCase
	toggleUser *userUsecases.ToggleUserStatusUseCase
	deleteUser *userUsecases.DeleteUserUseCase
	getUser    *userUsecases.GetUserUseCase
	listUsers  *userUsecases.ListUsersUseCase
	bulkUsers  *userUsecases.BulkUsersUseCase

	// Activation codes
	seedCodes  *codeUsecases.SeedPoolUseCase
	markSold   *codeUsecases.MarkSoldUseCase
	listCodes  *codeUsecases.ListCodesUseCase
	codeStats  *codeUsecases.CodeStatsUseCase
	redeemCode *codeUsecases.RedeemCodeUseCase

	// Cards
	createCard *cardUsecases.CreateCardUseCase
	updateCard *cardUsecases.UpdateCardUseCase
	toggleCard *cardUsecases.ToggleCardStatusUseCase
	deleteCard *cardUsecases.DeleteCardUseCase
	getCard    *cardUsecases.GetCardUseCase
	listCards  *cardUsecases.ListCardsUseCase
	bulkCards  *cardUsecases.BulkCardsUseCase
	viewCard   *cardUsecases.ViewPublicCardUseCase

	// Analytics
	cardAnalytics     *analyticsUsecases.CardAnalyticsUseCase
	userStats         *analyticsUsecases.UserStatsUseCase
	exportActivations *analyticsUsecases.ExportActivationsUseCase
	exportUsers       *analyticsUsecases.ExportUsersUseCase

	// Settings
	getSettings   *settingUsecases.GetSettingsUseCase
	updateSetting *settingUsecases.UpdateSettingUseCase

	// Payment
	paymentCompleted *paymentUsecases.HandlePaymentCompletedUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	ucs := &allUseCases{}

	tokenIssuer := adapters.NewJWTTokenIssuer(c.jwtSvc)
	ucs.login = userUsecases.NewLoginUseCase(r.userRepo, c.hasher, tokenIssuer, c.log)
	ucs.createUser = userUsecases.NewCreateUserUseCase(r.userRepo, c.hasher, c.enforcer, c.log)
	ucs.updateUser = userUsecases.NewUpdateUserUseCase(r.userRepo, c.hasher, c.enforcer, c.log)
	ucs.toggleUser = userUsecases.NewToggleUserStatusUseCase(r.userRepo, c.enforcer, c.log)
	ucs.deleteUser = userUsecases.NewDeleteUserUseCase(r.userRepo, c.enforcer, c.log)
	ucs.getUser = userUsecases.NewGetUserUseCase(r.userRepo, c.enforcer, c.log)
	ucs.listUsers = userUsecases.NewListUsersUseCase(r.userRepo, c.enforcer, c.log)
	ucs.bulkUsers = userUsecases.NewBulkUsersUseCase(r.userRepo, c.txManager, c.enforcer, c.log)

	generator := codeUsecases.NewCodeGenerator(r.codeRepo, c.cfg.Codes.Length, c.cfg.Codes.MaxAttempts, c.log)
	notifier := email.NewNotifier(c.cfg.Email, c.log)
	ucs.seedCodes = codeUsecases.NewSeedPoolUseCase(r.codeRepo, generator, c.txManager, c.settings, c.enforcer, c.log)
	ucs.markSold = codeUsecases.NewMarkSoldUseCase(r.codeRepo, notifier, c.settings, c.enforcer, c.log)
	ucs.listCodes = codeUsecases.NewListCodesUseCase(r.codeRepo, c.enforcer, c.log)
	ucs.codeStats = codeUsecases.NewCodeStatsUseCase(r.codeRepo, c.enforcer, c.log)
	ucs.redeemCode = codeUsecases.NewRedeemCodeUseCase(r.codeRepo, c.log)

	ucs.createCard = cardUsecases.NewCreateCardUseCase(r.cardRepo, r.userRepo, ucs.redeemCode, c.txManager, c.cfg.Codes.MaxAttempts, c.enforcer, c.log)
	ucs.updateCard = cardUsecases.NewUpdateCardUseCase(r.cardRepo, c.enforcer, c.log)
	ucs.toggleCard = cardUsecases.NewToggleCardStatusUseCase(r.cardRepo, c.enforcer, c.log)
	ucs.deleteCard = cardUsecases.NewDeleteCardUseCase(r.cardRepo, r.eventRepo, c.txManager, c.enforcer, c.log)
	ucs.getCard = cardUsecases.NewGetCardUseCase(r.cardRepo, r.eventRepo, c.enforcer, c.log)
	ucs.listCards = cardUsecases.NewListCardsUseCase(r.cardRepo, r.eventRepo, c.enforcer, c.log)
	ucs.bulkCards = cardUsecases.NewBulkCardsUseCase(r.cardRepo, r.eventRepo, c.txManager, c.settings, c.enforcer, c.log)
	recordView := cardUsecases.NewRecordViewUseCase(r.cardRepo, r.eventRepo, c.txManager, c.log)
	ucs.viewCard = cardUsecases.NewViewPublicCardUseCase(recordView, markdown.NewMarkdownService(), c.log)

	ucs.cardAnalytics = analyticsUsecases.NewCardAnalyticsUseCase(r.cardRepo, r.eventRepo, c.settings, c.enforcer, c.log)
	ucs.userStats = analyticsUsecases.NewUserStatsUseCase(r.cardRepo, c.enforcer, c.log)
	ucs.exportActivations = analyticsUsecases.NewExportActivationsUseCase(r.cardRepo, r.eventRepo, c.enforcer, c.log)
	ucs.exportUsers = analyticsUsecases.NewExportUsersUseCase(r.userRepo, c.enforcer, c.log)

	ucs.getSettings = settingUsecases.NewGetSettingsUseCase(c.settings, c.enforcer, c.log)
	ucs.updateSetting = settingUsecases.NewUpdateSettingUseCase(c.settings, c.enforcer, c.log)

	ucs.paymentCompleted = paymentUsecases.NewHandlePaymentCompletedUseCase(r.codeRepo, ucs.markSold, c.log)

	c.ucs = ucs
}
