package controllers

import (
	"net/http"
	"strings"

	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
)

const cartTokenHeader = "X-Cart-Token"

// cartTokenFromRequest extracts the caller's cart token. Every browsing
// context that shares a token shares one persisted cart.
func cartTokenFromRequest(r *http.Request) (string, error) {
	token := strings.TrimSpace(r.Header.Get(cartTokenHeader))
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return token, nil
}
