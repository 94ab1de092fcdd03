package httpresult_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"wedding-invitations/core/httpresult"
)

func TestSuccessCarriesValue(t *testing.T) {
	result := httpresult.Success(http.StatusAccepted, "abc1234")

	assert.Equal(t, http.StatusAccepted, result.StatusCode())
	assert.True(t, result.IsSuccess())

	value, ok := result.Value()
	assert.True(t, ok)
	assert.Equal(t, "abc1234", value)
}

func TestErrorHasNoValue(t *testing.T) {
	result := httpresult.Error[string](http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, result.StatusCode())
	assert.False(t, result.IsSuccess())

	value, ok := result.Value()
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestErrorOfStructTypeYieldsZeroValue(t *testing.T) {
	type payload struct {
		ID string
	}

	result := httpresult.Error[payload](http.StatusBadRequest)

	value, ok := result.Value()
	assert.False(t, ok)
	assert.Equal(t, payload{}, value)
}
