package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_Allow(t *testing.T) {
	require.NoError(t, Authorize("a1b2c3d4", "a1b2c3d4"))
}

func TestAuthorize_MissingCode(t *testing.T) {
	err := Authorize("a1b2c3d4", "")
	require.ErrorIs(t, err, ErrCodeRequired)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_WrongCode(t *testing.T) {
	err := Authorize("a1b2c3d4", "deadbeef")
	require.ErrorIs(t, err, ErrCodeInvalid)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_CaseSensitive(t *testing.T) {
	// Codes are lowercase hex; comparison is exact, no case folding.
	err := Authorize("a1b2c3d4", "A1B2C3D4")
	require.ErrorIs(t, err, ErrCodeInvalid)
}

func TestAuthorize_BothDenialsCollapseToForbidden(t *testing.T) {
	// Clients must not be able to tell a missing code from a wrong one.
	missing := Authorize("a1b2c3d4", "")
	wrong := Authorize("a1b2c3d4", "ffffffff")
	assert.ErrorIs(t, missing, ErrForbidden)
	assert.ErrorIs(t, wrong, ErrForbidden)
}
