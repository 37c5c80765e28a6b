package appconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Staging, EnvFlagToEnvironment("staging"))
	assert.Equal(t, Production, EnvFlagToEnvironment("production"))
	assert.Equal(t, Development, EnvFlagToEnvironment("development"))
	assert.Equal(t, Development, EnvFlagToEnvironment(""), "unrecognized values fall back to development")
	assert.Equal(t, Development, EnvFlagToEnvironment("prod"))
}

func TestEnvironmentString(t *testing.T) {
	for _, env := range []Environment{Development, Test, Staging, Production} {
		assert.Equal(t, env, EnvFlagToEnvironment(env.String()), "String and EnvFlagToEnvironment round-trip")
	}
}
