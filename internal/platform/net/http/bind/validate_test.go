package bind

import (
	"testing"

	perr "reviewsense/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Messages(t *testing.T) {
	type in struct {
		Title string `query:"title" validate:"notblank,max=5"`
		Hours int    `query:"hours" validate:"min=1"`
		Plain string `validate:"required"`
	}

	cases := []struct {
		name  string
		v     in
		field string
		msg   string
	}{
		{"blank title", in{Title: "  ", Hours: 1, Plain: "x"}, "title", "title must not be blank"},
		{"long title", in{Title: "phones", Hours: 1, Plain: "x"}, "title", "title must be at most 5"},
		{"hours", in{Title: "tv", Hours: 0, Plain: "x"}, "hours", "hours must be at least 1"},
		{"untagged field", in{Title: "tv", Hours: 1}, "Plain", "Plain is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.v)
			require.Error(t, err)
			assert.Equal(t, perr.ErrorCodeValidation, perr.CodeOf(err))
			e, ok := perr.As(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, e.Field())
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestValidate_OK(t *testing.T) {
	type in struct {
		Review string `query:"review" validate:"required"`
	}
	assert.NoError(t, Validate(in{Review: "Great phone"}))
}

func TestValidate_NonStruct(t *testing.T) {
	err := Validate(42)
	require.Error(t, err)
	assert.NotEqual(t, perr.ErrorCodeValidation, perr.CodeOf(err))
}
