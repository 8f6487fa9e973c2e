package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// ollamaSettings is the one piece of configuration that can change without a
// restart. The AI parser reads it through the Handler's getter methods, so an
// update here takes effect on the next parse request.
type ollamaSettings struct {
	mu      sync.RWMutex
	baseURL string
	model   string
}

func (s *ollamaSettings) snapshot() (baseURL, model string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL, s.model
}

// OllamaBaseURL returns the current Ollama base URL. Handed to the parser
// factory as a getter.
func (h *Handler) OllamaBaseURL() string {
	baseURL, _ := h.ollama.snapshot()
	return baseURL
}

// OllamaModel returns the current Ollama model name.
func (h *Handler) OllamaModel() string {
	_, model := h.ollama.snapshot()
	return model
}

type updateOllamaSettingsRequest struct {
	OllamaBaseURL string `json:"ollama_base_url" binding:"required"`
	OllamaModel   string `json:"ollama_model,omitempty"`
}

// GetOllamaSettings returns the current Ollama configuration.
// GET /api/settings/ollama
func (h *Handler) GetOllamaSettings(c *gin.Context) {
	baseURL, model := h.ollama.snapshot()
	c.JSON(http.StatusOK, gin.H{
		"ollama_base_url": baseURL,
		"ollama_model":    model,
	})
}

// UpdateOllamaSettings changes the Ollama configuration at runtime.
// PUT /api/settings/ollama
func (h *Handler) UpdateOllamaSettings(c *gin.Context) {
	var req updateOllamaSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.ollama.mu.Lock()
	h.ollama.baseURL = req.OllamaBaseURL
	if req.OllamaModel != "" {
		h.ollama.model = req.OllamaModel
	}
	h.ollama.mu.Unlock()

	baseURL, model := h.ollama.snapshot()
	c.JSON(http.StatusOK, gin.H{
		"message":         "Ollama settings updated",
		"ollama_base_url": baseURL,
		"ollama_model":    model,
	})
}

// TestOllamaConnection checks whether an Ollama server is reachable, either
// the one in the request body or the currently configured one.
// POST /api/settings/ollama/test
func (h *Handler) TestOllamaConnection(c *gin.Context) {
	var req struct {
		OllamaBaseURL string `json:"ollama_base_url"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.OllamaBaseURL == "" {
		req.OllamaBaseURL = h.OllamaBaseURL()
	}

	resp, err := http.Get(req.OllamaBaseURL + "/api/tags")
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"connected": false,
			"error":     err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"connected":   false,
			"status_code": resp.StatusCode,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connected":       true,
		"ollama_base_url": req.OllamaBaseURL,
	})
}
