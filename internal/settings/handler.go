package settings

import (
	"net/http"

	"clubledger/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetSettings godoc
// @Summary      Club settings
// @Description  Returns the club-wide feature gates.
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} Settings
// @Failure      401 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /admin/settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	clubID, ok := auth.GetClubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "club not resolved"})
		return
	}

	s, err := h.repo.Fetch(c.Request.Context(), clubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// UpdateSettings godoc
// @Summary      Update club settings
// @Description  Toggles the club-wide feature gates. Omitted flags are left unchanged.
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateRequest  true  "Flags to change"
// @Success      200      {object}  Settings
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/settings [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	clubID, ok := auth.GetClubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "club not resolved"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.repo.Update(c.Request.Context(), clubID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, s)
}
