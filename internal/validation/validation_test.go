package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid_Mail(t *testing.T) {
	v := New()
	assert.True(t, v.IsValid(KindMail, "a@b.com"))
	assert.False(t, v.IsValid(KindMail, "not-an-email"))
	assert.False(t, v.IsValid(KindMail, ""))
}

func TestIsValid_Password(t *testing.T) {
	v := New()
	assert.True(t, v.IsValid(KindPassword, "correcthorse9"))
	assert.False(t, v.IsValid(KindPassword, "short1"))
	assert.False(t, v.IsValid(KindPassword, "alllettersnodigits"))
}

func TestIsValid_Names(t *testing.T) {
	v := New()
	assert.True(t, v.IsValid(KindFirstName, "Anne-Marie"))
	assert.True(t, v.IsValid(KindLastName, "O'Brien"))
	assert.False(t, v.IsValid(KindFirstName, "123"))
}

func TestIsValid_Handles(t *testing.T) {
	v := New()
	assert.True(t, v.IsValid(KindNickname, "player_one"))
	assert.True(t, v.IsValid(KindGameName, "arena-7"))
	assert.False(t, v.IsValid(KindNickname, "a")) // too short
	assert.False(t, v.IsValid(KindTeamName, "has a space"))
}

func TestFormat_LowercasesHandlesAndMail(t *testing.T) {
	v := New()
	assert.Equal(t, "a@b.com", v.Format(KindMail, "  A@B.com "))
	assert.Equal(t, "player_one", v.Format(KindNickname, "Player_One"))
}

func TestFormat_PreservesNameCapitalization(t *testing.T) {
	v := New()
	assert.Equal(t, "Anne-Marie", v.Format(KindFirstName, " Anne-Marie "))
}
