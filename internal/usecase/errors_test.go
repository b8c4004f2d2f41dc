package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsHTTPError(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", notFound("product not found"))

	he, ok := AsHTTPError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "product not found", he.Error())

	_, ok = AsHTTPError(errors.New("boom"))
	assert.False(t, ok)
}
