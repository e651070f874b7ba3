package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_RoundTrips(t *testing.T) {
	id := Identity[string]()
	wire, err := id.ToWire("arena")
	require.NoError(t, err)
	back, err := id.FromWire(wire)
	require.NoError(t, err)
	assert.Equal(t, "arena", back)
}

func TestTimeISO8601_RoundTripsAtMillisecondResolution(t *testing.T) {
	c := TimeISO8601()
	now := time.Date(2026, 7, 29, 12, 34, 56, 123_000_000, time.UTC)

	wire, err := c.ToWire(now)
	require.NoError(t, err)
	back, err := c.FromWire(wire)
	require.NoError(t, err)

	assert.True(t, now.Equal(back), "expected %v to equal %v", now, back)
}

func TestTimeISO8601_RejectsMalformedWire(t *testing.T) {
	c := TimeISO8601()
	_, err := c.FromWire("not-a-timestamp")
	assert.Error(t, err)
}

func TestBoolFlag_RoundTrips(t *testing.T) {
	c := BoolFlag()

	for _, v := range []bool{true, false} {
		wire, err := c.ToWire(v)
		require.NoError(t, err)
		back, err := c.FromWire(wire)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}

func TestBoolFlag_RejectsInvalidWire(t *testing.T) {
	c := BoolFlag()
	_, err := c.FromWire("yes")
	assert.Error(t, err)
}

func TestIntDecimal_RoundTrips(t *testing.T) {
	c := IntDecimal()

	for _, v := range []int{0, 1, -7, 42_000} {
		wire, err := c.ToWire(v)
		require.NoError(t, err)
		back, err := c.FromWire(wire)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}
