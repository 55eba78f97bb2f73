package dto

import (
	"time"

	"cardly/internal/domain/activationevent"
)

type DeviceBreakdownDTO struct {
	Desktop int64 `json:"desktop"`
	Mobile  int64 `json:"mobile"`
	Tablet  int64 `json:"tablet"`
}

type EventDTO struct {
	ID         uint      `json:"id"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	DeviceType string    `json:"device_type"`
	Referrer   *string   `json:"referrer,omitempty"`
	Location   *string   `json:"location,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToEventDTO(e *activationevent.ActivationEvent) EventDTO {
	return EventDTO{
		ID:         e.ID(),
		IP:         e.IP(),
		UserAgent:  e.UserAgent(),
		DeviceType: e.DeviceType().String(),
		Referrer:   e.Referrer(),
		Location:   e.Location(),
		CreatedAt:  e.CreatedAt(),
	}
}

// DailyViewsDTO is one business-timezone calendar day.
type DailyViewsDTO struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

type CardAnalyticsDTO struct {
	CardID     uint  `json:"card_id"`
	TotalViews int64 `json:"total_views"`
	EventCount int64 `json:"event_count"`
	// Consistent is false when click_count and the event log disagree.
	Consistent   bool               `json:"consistent"`
	Devices      DeviceBreakdownDTO `json:"devices"`
	LastViewedAt *time.Time         `json:"last_viewed_at,omitempty"`
	RecentEvents []EventDTO         `json:"recent_events"`
	Daily        []DailyViewsDTO    `json:"daily"`
}

type CardSummaryDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Views int64  `json:"views"`
}

type UserStatsDTO struct {
	TotalCards   int64           `json:"total_cards"`
	ActiveCards  int64           `json:"active_cards"`
	PendingCards int64           `json:"pending_cards"`
	TotalViews   int64           `json:"total_views"`
	AverageViews float64         `json:"average_views"`
	MostViewed   *CardSummaryDTO `json:"most_viewed,omitempty"`
}

// ExportFile is a rendered report ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
