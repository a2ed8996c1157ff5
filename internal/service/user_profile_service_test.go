package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(value string) *string {
	return &value
}

func TestUserProfileGetOrCreate(t *testing.T) {
	f := newServiceFixture(t)

	profile, created, err := f.profiles.GetOrCreate(testWalletAddress, "  Cacau Fan ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Cacau Fan", profile.Username)

	same, created, err := f.profiles.GetOrCreate("0x1234567890abcdef1234567890ABCDEF12345678", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, profile.ID, same.ID)
}

func TestUserProfileUpdate(t *testing.T) {
	f := newServiceFixture(t)
	profile, _, err := f.profiles.GetOrCreate(testWalletAddress, "")
	require.NoError(t, err)

	updated, err := f.profiles.UpdateProfile(profile.ID, UpdateProfileInput{
		Username: strPtr("Ana"),
		Email:    strPtr(" Ana@Example.com "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Username)
	assert.Equal(t, "ana@example.com", updated.Email)

	_, err = f.profiles.UpdateProfile(profile.ID, UpdateProfileInput{Email: strPtr("not-an-email")})
	assert.ErrorIs(t, err, ErrProfileUpdateInvalid)
	_, err = f.profiles.UpdateProfile(profile.ID, UpdateProfileInput{Username: strPtr("  ")})
	assert.ErrorIs(t, err, ErrProfileUpdateInvalid)
	_, err = f.profiles.UpdateProfile(999, UpdateProfileInput{})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	reloaded, err := f.profiles.GetByID(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", reloaded.Username)
}

func TestNormalizeWalletAddress(t *testing.T) {
	address, err := NormalizeWalletAddress(" " + testWalletAddress + " ")
	require.NoError(t, err)
	assert.Equal(t, "0x1234567890abcdef1234567890abcdef12345678", address)

	invalid := []string{
		"",
		"0x123",
		"1234567890abcdef1234567890abcdef1234567890",
		"0xzz34567890abcdef1234567890abcdef12345678",
		"0x0000567890abcdef1234567890abcdef12345678",
	}
	for _, raw := range invalid {
		_, err := NormalizeWalletAddress(raw)
		assert.ErrorIs(t, err, ErrWalletAddressInvalid, raw)
	}
}
