package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsStoreNameAliasingIdentityField(t *testing.T) {
	_, err := New("game", "_id",
		NewFieldDescriptor("id", "_id"),
	)
	assert.Error(t, err)
}

func TestNew_RejectsDuplicateLogicalNames(t *testing.T) {
	_, err := New("game", "_id",
		NewFieldDescriptor("name", "name"),
		NewFieldDescriptor("name", "display_name"),
	)
	assert.Error(t, err)
}

func TestField_UnknownLogicalName(t *testing.T) {
	s, err := New("game", "_id", NewFieldDescriptor("name", "name"))
	require.NoError(t, err)

	_, err = s.Field("doesNotExist")
	assert.Error(t, err)
}

func TestSharedKeyLayout(t *testing.T) {
	s, err := New("game", "_id", NewFieldDescriptor("name", "name"))
	require.NoError(t, err)

	assert.Equal(t, "model:game:abc123:name", s.SharedKey("abc123", "name"))
	assert.Equal(t, "model:game:abc123:exists", s.SharedExistsKey("abc123"))
	assert.Equal(t, "model:game:abc123:*", s.SharedWildcard("abc123"))
	assert.Equal(t, "model:game:*", s.SharedTypeWildcard())
}

func TestExclude_DisablesBothCaches(t *testing.T) {
	d := NewFieldDescriptor("passwordHash", "password_hash").Exclude()
	assert.False(t, d.LocalEnabled)
	assert.False(t, d.SharedEnabled)
}

func TestNilConverterMeansIdentityConversion(t *testing.T) {
	d := NewFieldDescriptor("email", "email")

	wire, err := d.SharedToWire("a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", wire)

	back, err := d.SharedFromWire(wire)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", back)
}

func TestTimeISO8601Converter_RoundTrips(t *testing.T) {
	c := TimeISO8601Converter()
	at := time.Date(2026, 7, 29, 12, 34, 56, 123_000_000, time.UTC)

	wire, err := c.ToWire(at)
	require.NoError(t, err)
	back, err := c.FromWire(wire)
	require.NoError(t, err)
	assert.True(t, at.Equal(back.(time.Time)))
}

func TestTimeISO8601Converter_RejectsNonTimeValue(t *testing.T) {
	c := TimeISO8601Converter()
	_, err := c.ToWire("2026-07-29")
	assert.Error(t, err)
}

func TestIntStoreConverter_NormalizesDriverIntegerWidths(t *testing.T) {
	c := IntStoreConverter()

	for _, v := range []any{int(7), int32(7), int64(7)} {
		got, err := c.FromWire(v)
		require.NoError(t, err)
		assert.Equal(t, 7, got)
	}
}

func TestFields_PreservesDeclarationOrder(t *testing.T) {
	s, err := New("game", "_id",
		NewFieldDescriptor("name", "name"),
		NewFieldDescriptor("ownerID", "owner_id"),
		NewFieldDescriptor("isPublic", "is_public"),
	)
	require.NoError(t, err)

	var names []string
	for _, f := range s.Fields() {
		names = append(names, f.LogicalName)
	}
	assert.Equal(t, []string{"name", "ownerID", "isPublic"}, names)
}
