package handlers

import (
	"errors"
	"net/http"

	"github.com/applymate/applymate-api/internal/dtos"
	"github.com/applymate/applymate-api/internal/identity"
	"github.com/applymate/applymate-api/internal/middleware"
	"github.com/applymate/applymate-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AccountHandler exposes the credential and account lifecycle endpoints.
// Dependency injection: every collaborator arrives through the constructor,
// nothing ambient.
type AccountHandler struct {
	Vault        *services.TokenVault
	Broker       *services.ResourceAccessBroker
	Eraser       *services.AccountErasureCoordinator
	Applications *services.ApplicationService
	Identity     identity.Verifier
	Log          zerolog.Logger
}

func NewAccountHandler(
	vault *services.TokenVault,
	broker *services.ResourceAccessBroker,
	eraser *services.AccountErasureCoordinator,
	apps *services.ApplicationService,
	verifier identity.Verifier,
	log zerolog.Logger,
) *AccountHandler {
	return &AccountHandler{
		Vault:        vault,
		Broker:       broker,
		Eraser:       eraser,
		Applications: apps,
		Identity:     verifier,
		Log:          log,
	}
}

// HealthCheck is the unauthenticated liveness endpoint.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// LinkProvider is POST /account/link-provider. The body is empty: the
// provider tokens ride on the caller's identity-store session, so the
// handler fetches the session with the same bearer the middleware already
// verified.
func (h *AccountHandler) LinkProvider(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	_, session, err := h.Identity.Session(c.Request.Context(), middleware.BearerFrom(c))
	if err != nil {
		if errors.Is(err, identity.ErrUnauthenticated) {
			fail(c, http.StatusUnauthorized, err)
			return
		}
		fail(c, http.StatusBadGateway, err)
		return
	}

	email, err := h.Vault.LinkProvider(c.Request.Context(), ident, session)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Provider account linked",
		"email":   email,
	})
}

// IssueSignedURL is POST /account/resume/signed-url. Returns a URL valid for
// sixty seconds; the storage layer enforces the expiry.
func (h *AccountHandler) IssueSignedURL(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	signedURL, err := h.Broker.IssueAccessGrant(c.Request.Context(), ident)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrResourceNotFound) {
			status = http.StatusNotFound
		}
		fail(c, status, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"signedUrl": signedURL,
	})
}

// DeleteAccount is POST /account/delete, guarded by the literal phrase.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	var req dtos.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	h.erase(c, req.Confirmation, services.DeletePhrase)
}

// DeleteAccountByEmail is POST /account/delete-by-email, guarded by the
// caller's own verified email.
func (h *AccountHandler) DeleteAccountByEmail(c *gin.Context) {
	var req dtos.DeleteAccountByEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	h.erase(c, req.ConfirmEmail, middleware.IdentityFrom(c).Email)
}

func (h *AccountHandler) erase(c *gin.Context, submitted, expected string) {
	ident := middleware.IdentityFrom(c)

	// Guard before anything irreversible runs. No side effects on mismatch.
	if err := services.RequireExplicitConfirmation(submitted, expected); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	outcome := h.Eraser.Erase(c.Request.Context(), ident)
	if err := outcome.Err(); err != nil {
		// 409: the erasure and the store state disagree. The error string
		// carries the terminal saga state so partial failures stay
		// distinguishable to callers and to logs.
		fail(c, http.StatusConflict, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account permanently deleted",
	})
}

// ListApplications is GET /applications.
func (h *AccountHandler) ListApplications(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	apps, err := h.Applications.ListForUser(c.Request.Context(), ident.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"applications": apps,
	})
}
