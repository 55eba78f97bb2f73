package valueobjects

import "strings"

type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
)

// AllDeviceTypes lists device types in report order.
var AllDeviceTypes = []DeviceType{DeviceDesktop, DeviceMobile, DeviceTablet}

// ClassifyDevice infers a device type from a user agent. Matching is case-insensitive
// and mobile markers win over tablet markers, so "Android ... iPad" is mobile.
func ClassifyDevice(userAgent string) DeviceType {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "mobile") || strings.Contains(ua, "android"):
		return DeviceMobile
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

func (d DeviceType) IsValid() bool {
	return d == DeviceDesktop || d == DeviceMobile || d == DeviceTablet
}

// Label is the capitalised form used in exports.
func (d DeviceType) Label() string {
	switch d {
	case DeviceMobile:
		return "Mobile"
	case DeviceTablet:
		return "Tablet"
	default:
		return "Desktop"
	}
}

func (d DeviceType) String() string {
	return string(d)
}
