package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func decode(t *testing.T, body string) (samplePayload, error) {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	var dest samplePayload
	err := DecodeJSONBody(req, &dest)
	return dest, err
}

func TestDecodeJSONBodyValid(t *testing.T) {
	t.Parallel()
	dest, err := decode(t, `{"name":"Maria","email":"maria@example.it"}`)
	require.NoError(t, err)
	assert.Equal(t, "Maria", dest.Name)
}

func TestDecodeJSONBodyMalformed(t *testing.T) {
	t.Parallel()
	_, err := decode(t, `{"name":`)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	t.Parallel()
	_, err := decode(t, `{"name":"Maria","email":"maria@example.it","admin":true}`)
	require.Error(t, err)
}

func TestDecodeJSONBodyValidationDetailsUseJSONNames(t *testing.T) {
	t.Parallel()
	_, err := decode(t, `{"name":"Maria","email":"non-una-mail"}`)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok, "details %T", typed.Details())
	assert.Contains(t, details, "email")
	assert.Equal(t, "must be a valid email", details["email"])
}
