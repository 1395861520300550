package tags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmptyAndNil(t *testing.T) {
	out, err := Validate(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, out)

	out, err = Validate([]string{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, out)
}

func TestValidate_PreservesOrderAndCasing(t *testing.T) {
	out, err := Validate([]string{"  Go ", "API-design", "testing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "API-design", "testing"}, out)
}

func TestValidate_TooManyTags(t *testing.T) {
	in := make([]string, MaxTags+1)
	for i := range in {
		in[i] = "t" + strings.Repeat("a", i+1)
	}
	_, err := Validate(in)
	require.ErrorIs(t, err, ErrTooManyTags)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want error
	}{
		{"empty tag", []string{"ok", ""}, ErrTagEmpty},
		{"whitespace-only tag", []string{"   "}, ErrTagEmpty},
		{"too long", []string{strings.Repeat("a", MaxTagLength+1)}, ErrTagTooLong},
		{"space inside", []string{"two words"}, ErrTagInvalidChars},
		{"unicode", []string{"café"}, ErrTagInvalidChars},
		{"html", []string{"<b>bold</b>"}, ErrTagInvalidChars},
		{"underscore", []string{"snake_case"}, ErrTagInvalidChars},
		{"exact duplicate", []string{"go", "go"}, ErrDuplicateTag},
		{"case-insensitive duplicate", []string{"Test", "test"}, ErrDuplicateTag},
		{"duplicate after trim", []string{"go", " go "}, ErrDuplicateTag},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.in)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidate_NeverAutoCorrects(t *testing.T) {
	// An invalid character fails the whole tag; it is not stripped out.
	_, err := Validate([]string{"good!tag"})
	require.ErrorIs(t, err, ErrTagInvalidChars)
}

func TestValidate_BoundaryLengths(t *testing.T) {
	out, err := Validate([]string{strings.Repeat("a", MaxTagLength)})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	in := make([]string, MaxTags)
	for i := range in {
		in[i] = "tag-" + strings.Repeat("x", i+1)
	}
	out, err = Validate(in)
	require.NoError(t, err)
	assert.Len(t, out, MaxTags)
}
