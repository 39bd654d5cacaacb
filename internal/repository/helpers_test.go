package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, "%acme%", containsPattern("acme"))
	assert.Equal(t, `%50\% off%`, containsPattern("50% off"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\tmp%`, containsPattern(`c:\tmp`))
}

func TestStartOfDay_UTC(t *testing.T) {
	in := time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), startOfDay(in))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, clamp(0, 1, 1000))
	assert.Equal(t, 1, clamp(-5, 1, 1000))
	assert.Equal(t, 1000, clamp(5000, 1, 1000))
	assert.Equal(t, 200, clamp(200, 1, 1000))
}
