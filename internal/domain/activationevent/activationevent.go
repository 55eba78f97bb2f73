package activationevent

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "cardly/internal/domain/activationevent/valueobjects"
	"cardly/internal/shared/biztime"
)

const maxUserAgentLength = 512

// RequestMeta is what the public endpoint knows about a viewer.
type RequestMeta struct {
	IP        string
	UserAgent string
	Referrer  string
	Location  string
}

// ActivationEvent is one logged view of a public card. It is never updated.
type ActivationEvent struct {
	id         uint
	cardID     uint
	ip         string
	userAgent  string
	location   *string
	deviceType vo.DeviceType
	referrer   *string
	createdAt  time.Time
}

func NewActivationEvent(cardID uint, meta RequestMeta) (*ActivationEvent, error) {
	if cardID == 0 {
		return nil, fmt.Errorf("card ID is required")
	}
	ua := truncateUTF8(meta.UserAgent, maxUserAgentLength)
	return &ActivationEvent{
		cardID:     cardID,
		ip:         strings.TrimSpace(meta.IP),
		userAgent:  ua,
		location:   optional(meta.Location),
		deviceType: vo.ClassifyDevice(ua),
		referrer:   optional(meta.Referrer),
		createdAt:  biztime.NowUTC(),
	}, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	s = strings.ToValidUTF8(s, "")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func ReconstructActivationEvent(id, cardID uint, ip, userAgent string, location *string, deviceType vo.DeviceType, referrer *string, createdAt time.Time) *ActivationEvent {
	return &ActivationEvent{
		id:         id,
		cardID:     cardID,
		ip:         ip,
		userAgent:  userAgent,
		location:   location,
		deviceType: deviceType,
		referrer:   referrer,
		createdAt:  createdAt,
	}
}

func (e *ActivationEvent) ID() uint                    { return e.id }
func (e *ActivationEvent) CardID() uint                { return e.cardID }
func (e *ActivationEvent) IP() string                  { return e.ip }
func (e *ActivationEvent) UserAgent() string           { return e.userAgent }
func (e *ActivationEvent) Location() *string           { return e.location }
func (e *ActivationEvent) StoredDevice() vo.DeviceType { return e.deviceType }
func (e *ActivationEvent) Referrer() *string           { return e.referrer }
func (e *ActivationEvent) CreatedAt() time.Time        { return e.createdAt }

// DeviceType returns the stored classification. Rows written before it was stored
// are classified from the user agent.
func (e *ActivationEvent) DeviceType() vo.DeviceType {
	if e.deviceType.IsValid() {
		return e.deviceType
	}
	return vo.ClassifyDevice(e.userAgent)
}

// SetID sets the event ID (only for persistence layer use)
func (e *ActivationEvent) SetID(id uint) {
	e.id = id
}
