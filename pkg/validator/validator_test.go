package validator

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addLineRequest struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"gte=1,lte=20"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(addLineRequest{ProductID: "onigiri", Quantity: 1})
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(addLineRequest{Quantity: 1})

	require.Error(t, err)
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields(), "ProductID")
	assert.Equal(t, "is required", valErr.Fields()["ProductID"])
}

func TestValidate_OutOfBounds(t *testing.T) {
	err := Validate(addLineRequest{ProductID: "onigiri", Quantity: 21})

	require.Error(t, err)
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields()["Quantity"], "less than or equal to 20")
}

func TestValidate_ErrorMessageListsFields(t *testing.T) {
	err := Validate(addLineRequest{Quantity: 0})

	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "ProductID")
	assert.Contains(t, msg, "Quantity")
}

func TestDecodeAndValidate_Success(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"ProductID":"egg","Quantity":2}`))

	var req addLineRequest
	err := DecodeAndValidate(r, &req)

	require.NoError(t, err)
	assert.Equal(t, "egg", req.ProductID)
	assert.Equal(t, 2, req.Quantity)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{{nope`))

	var req addLineRequest
	err := DecodeAndValidate(r, &req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
