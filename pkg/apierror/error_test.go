package apierror

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireBodyShape(t *testing.T) {
	body := BadRequest("limit must be a non-negative integer").ToJSON()

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded, 1, "wire body is a single error field")
	assert.Equal(t, "limit must be a non-negative integer", decoded["error"])
}

func TestConstructorStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").StatusCode)
	assert.Equal(t, http.StatusNotFound, NotFound("").StatusCode)
	assert.Equal(t, http.StatusGatewayTimeout, Timeout("").StatusCode)
	assert.Equal(t, http.StatusInternalServerError, InternalError("").StatusCode)
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "Resource not found", NotFound("").Message)
	assert.Equal(t, "store operation timed out", Timeout("").Message)
	assert.NotEmpty(t, InternalError("").Error())
}
