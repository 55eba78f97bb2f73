package valueobjects

import "fmt"

type Resource string

const (
	ResourceCard           Resource = "card"
	ResourceActivationCode Resource = "activation_code"
	ResourceUser           Resource = "user"
	ResourceAnalytics      Resource = "analytics"
	ResourceSetting        Resource = "setting"
)

func NewResource(resource string) (Resource, error) {
	if resource == "" {
		return "", fmt.Errorf("resource cannot be empty")
	}
	if len(resource) > 50 {
		return "", fmt.Errorf("resource too long (max 50 characters)")
	}
	return Resource(resource), nil
}

func (r Resource) String() string {
	return string(r)
}
