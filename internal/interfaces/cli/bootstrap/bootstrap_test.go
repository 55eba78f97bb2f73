package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapEnvToGinMode(t *testing.T) {
	cases := map[string]string{
		"production":  "release",
		"prod":        "release",
		"release":     "release",
		"test":        "test",
		"testing":     "test",
		"development": "debug",
		"":            "debug",
	}
	for env, want := range cases {
		assert.Equal(t, want, MapEnvToGinMode(env), env)
	}
}
