package bind

import (
	"net/http/httptest"
	"testing"
	"time"

	perr "reviewsense/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listQuery struct {
	Count  int           `query:"count" default:"-1" validate:"min=-1"`
	Hours  int           `query:"hours" default:"24" validate:"min=1,max=720"`
	Label  string        `query:"label"`
	Ratio  float64       `query:"ratio"`
	Desc   bool          `query:"desc"`
	Window time.Duration `query:"window"`
	Note   *string       `query:"note"`
	skip   string
}

func TestParseQuery_DefaultsAndValues(t *testing.T) {
	req := httptest.NewRequest("GET", "/?hours=6&label=Positive&ratio=0.5&desc=true&window=90s", nil)
	got, err := ParseQuery[listQuery](req)
	require.NoError(t, err)
	assert.Equal(t, -1, got.Count)
	assert.Equal(t, 6, got.Hours)
	assert.Equal(t, "Positive", got.Label)
	assert.InDelta(t, 0.5, got.Ratio, 1e-9)
	assert.True(t, got.Desc)
	assert.Equal(t, 90*time.Second, got.Window)
	assert.Nil(t, got.Note)
	assert.Empty(t, got.skip)
}

func TestParseQuery_BadNumber(t *testing.T) {
	req := httptest.NewRequest("GET", "/?count=many", nil)
	_, err := ParseQuery[listQuery](req)
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))
	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "count", e.Field())
}

func TestParseQuery_ValidationUsesQueryName(t *testing.T) {
	req := httptest.NewRequest("GET", "/?hours=0", nil)
	_, err := ParseQuery[listQuery](req)
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeValidation, perr.CodeOf(err))
	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "hours", e.Field())
	assert.Contains(t, err.Error(), "hours must be at least 1")
}

func TestParseQuery_EmptyValueFallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest("GET", "/?hours=", nil)
	got, err := ParseQuery[listQuery](req)
	require.NoError(t, err)
	assert.Equal(t, 24, got.Hours)
}

func TestParseQuery_NonStruct(t *testing.T) {
	req := httptest.NewRequest("GET", "/?x=1", nil)
	_, err := ParseQuery[int](req)
	require.Error(t, err)
}

func TestParseQuery_EmptyValueIsPresent(t *testing.T) {
	req := httptest.NewRequest("GET", "/?note=&label=", nil)
	got, err := ParseQuery[listQuery](req)
	require.NoError(t, err)
	require.NotNil(t, got.Note)
	assert.Equal(t, "", *got.Note)
	assert.Equal(t, "", got.Label)
}

func TestParseQuery_BadDuration(t *testing.T) {
	req := httptest.NewRequest("GET", "/?window=soon", nil)
	_, err := ParseQuery[listQuery](req)
	require.Error(t, err)
	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "window", e.Field())
}

type requiredQuery struct {
	Review *string `query:"review" validate:"required"`
}

func TestParseQuery_RequiredPointerOnlyNeedsTheKey(t *testing.T) {
	_, err := ParseQuery[requiredQuery](httptest.NewRequest("GET", "/", nil))
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeValidation, perr.CodeOf(err))

	got, err := ParseQuery[requiredQuery](httptest.NewRequest("GET", "/?review=", nil))
	require.NoError(t, err)
	require.NotNil(t, got.Review)
	assert.Empty(t, *got.Review)
}
