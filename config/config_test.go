package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CREWLINE_TEST_STR", "from-env")

	assert.Equal(t, "from-env", GetEnv("CREWLINE_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CREWLINE_TEST_STR_UNSET", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("CREWLINE_TEST_INT", "5433")
	t.Setenv("CREWLINE_TEST_INT_BAD", "not-a-number")

	assert.Equal(t, 5433, GetEnvInt("CREWLINE_TEST_INT", 5432))
	assert.Equal(t, 5432, GetEnvInt("CREWLINE_TEST_INT_BAD", 5432))
	assert.Equal(t, 5432, GetEnvInt("CREWLINE_TEST_INT_UNSET", 5432))
}
