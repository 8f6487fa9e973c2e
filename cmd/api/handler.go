package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	syncdomain "studysync-backend/internal/sync/domain"
	syncUsecase "studysync-backend/internal/sync/usecase"
	"studysync-backend/pkg/config"
	"studysync-backend/pkg/gcal"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	syncUsecase syncUsecase.SyncUsecase
	google      *gcal.Service
	tokens      *gcal.TokenStore
	config      *config.Config
	ollama      ollamaSettings
}

func NewHandler(syncUc syncUsecase.SyncUsecase, google *gcal.Service, tokens *gcal.TokenStore, cfg *config.Config) *Handler {
	return &Handler{
		syncUsecase: syncUc,
		google:      google,
		tokens:      tokens,
		config:      cfg,
		ollama: ollamaSettings{
			baseURL: cfg.OllamaBaseURL,
			model:   cfg.OllamaModel,
		},
	}
}

// TriggerSync runs one Canvas reconciliation and returns the summary.
// POST /api/sync
func (h *Handler) TriggerSync(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Minute)
	defer cancel()

	summary, err := h.syncUsecase.SyncAssignments(ctx)
	if errors.Is(err, syncdomain.ErrSyncInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GoogleAuthURL returns the consent URL for the one-time OAuth setup.
// GET /api/auth/google/url
func (h *Handler) GoogleAuthURL(c *gin.Context) {
	conf := h.google.OAuthConfig(h.config.GoogleRedirectURI)
	url := conf.AuthCodeURL("state-token")
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GoogleAuthCallback exchanges the consent code and persists the token.
// GET /api/auth/google/callback
func (h *Handler) GoogleAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code parameter"})
		return
	}

	conf := h.google.OAuthConfig(h.config.GoogleRedirectURI)
	token, err := conf.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "token exchange failed: " + err.Error()})
		return
	}

	if err := h.tokens.Save(token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist token: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Google account connected"})
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	SetupRoutes(r, h)

	return r.Run(addr)
}
