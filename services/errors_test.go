package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, StatusOf(BadRequest("bad")))
	require.Equal(t, http.StatusNotFound, StatusOf(NotFound("missing")))
	require.Equal(t, http.StatusConflict, StatusOf(Conflict("taken")))
	require.Equal(t, http.StatusBadGateway, StatusOf(BadGateway("upstream")))
	require.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestStatusOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("checkout failed: %w", Forbidden("not yours"))
	require.Equal(t, http.StatusForbidden, StatusOf(wrapped))
}
