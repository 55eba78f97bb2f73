package usecases

import (
	"context"
	"fmt"

	"cardly/internal/application/analytics/dto"
	"cardly/internal/domain/activationevent"
	vo "cardly/internal/domain/activationevent/valueobjects"
	"cardly/internal/domain/card"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/domain/setting"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/mapper"
)

const (
	DailyWindowDays = 30
	maxRecentEvents = 100
)

type CardAnalyticsUseCase struct {
	cards    card.Repository
	events   activationevent.Repository
	settings SettingReader
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewCardAnalyticsUseCase(
	cards card.Repository,
	events activationevent.Repository,
	settings SettingReader,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *CardAnalyticsUseCase {
	return &CardAnalyticsUseCase{
		cards:    cards,
		events:   events,
		settings: settings,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *CardAnalyticsUseCase) Execute(ctx context.Context, actor authorization.Actor, cardID uint) (*dto.CardAnalyticsDTO, error) {
	c, err := authorizeCard(ctx, uc.enforcer, uc.cards, actor, permvo.ActionRead, cardID)
	if err != nil {
		return nil, err
	}

	events, err := uc.events.ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list card events: %w", err)
	}
	recent, err := uc.events.ListRecentByCard(ctx, cardID, uc.recentLimit(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent card events: %w", err)
	}

	result := &dto.CardAnalyticsDTO{
		CardID:       c.ID(),
		TotalViews:   c.ClickCount(),
		EventCount:   int64(len(events)),
		Devices:      deviceBreakdown(events),
		RecentEvents: mapper.MapSlice(recent, dto.ToEventDTO),
		Daily:        dailyViews(events),
	}
	result.Consistent = result.TotalViews == result.EventCount
	if n := len(events); n > 0 {
		last := events[n-1].CreatedAt()
		result.LastViewedAt = &last
	}

	if !result.Consistent {
		uc.logger.Warnw("card click count drifted from event log",
			"card_id", cardID,
			"click_count", result.TotalViews,
			"event_count", result.EventCount,
		)
	}
	return result, nil
}

func (uc *CardAnalyticsUseCase) recentLimit(ctx context.Context) int {
	n := uc.settings.GetInt(ctx, setting.KeyRecentEventsLimit)
	if n <= 0 {
		return 10
	}
	if n > maxRecentEvents {
		return maxRecentEvents
	}
	return n
}

func deviceBreakdown(events []*activationevent.ActivationEvent) dto.DeviceBreakdownDTO {
	var b dto.DeviceBreakdownDTO
	for _, e := range events {
		switch e.DeviceType() {
		case vo.DeviceMobile:
			b.Mobile++
		case vo.DeviceTablet:
			b.Tablet++
		default:
			b.Desktop++
		}
	}
	return b
}

// dailyViews buckets events into the last DailyWindowDays business days, oldest first.
// Days without views are present with zero.
func dailyViews(events []*activationevent.ActivationEvent) []dto.DailyViewsDTO {
	now := biztime.NowUTC()
	days := make([]dto.DailyViewsDTO, DailyWindowDays)
	index := make(map[string]int, DailyWindowDays)
	for i := 0; i < DailyWindowDays; i++ {
		key := biztime.DayKey(now.AddDate(0, 0, i-(DailyWindowDays-1)))
		days[i] = dto.DailyViewsDTO{Date: key}
		index[key] = i
	}
	for _, e := range events {
		if i, ok := index[biztime.DayKey(e.CreatedAt())]; ok {
			days[i].Views++
		}
	}
	return days
}
