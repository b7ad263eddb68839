package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskflow/taskflow-api/internal/errors"
	"github.com/taskflow/taskflow-api/internal/services"
)

// OAuthHandler completes external provider logins.
type OAuthHandler struct {
	oauthService *services.OAuthService
	verifier     services.IdentityVerifier
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(oauthService *services.OAuthService, verifier services.IdentityVerifier) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		verifier:     verifier,
	}
}

// Callback handles the provider redirect: it exchanges the authorization
// code, resolves the external identity to a local user and redirects to the
// frontend with an access token in the query string. Failures redirect with
// an error parameter so the frontend can surface them.
func (h *OAuthHandler) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		c.Redirect(http.StatusFound, h.oauthService.ErrorRedirect(errParam))
		return
	}

	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "Missing authorization code")
		return
	}

	identity, err := h.verifier.Verify(c.Request.Context(), code)
	if err != nil {
		c.Redirect(http.StatusFound, h.oauthService.ErrorRedirect("Provider handshake failed"))
		return
	}

	_, redirect, err := h.oauthService.HandleLogin(identity)
	if err != nil {
		if errors.Is(err, services.ErrMissingClaim) {
			c.Redirect(http.StatusFound, h.oauthService.ErrorRedirect(err.Error()))
			return
		}
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.Redirect(http.StatusFound, redirect)
}
