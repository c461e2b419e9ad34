package court

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

// CreateCourt godoc
// @Summary      Create court
// @Tags         courts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateCourtRequest  true  "Court data"
// @Success      201      {object}  Court
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/courts [post]
func (h *Handler) CreateCourt(c *gin.Context) {
	clubID, ok := auth.GetClubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "club not resolved"})
		return
	}

	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	court, err := h.repo.CreateCourt(c.Request.Context(), clubID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create court"})
		return
	}

	c.JSON(http.StatusCreated, court)
}

// ListCourts godoc
// @Summary      List courts
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array}  Court
// @Failure      401 {object} gin.H
// @Router       /courts [get]
func (h *Handler) ListCourts(c *gin.Context) {
	clubID, ok := auth.GetClubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "club not resolved"})
		return
	}

	courts, err := h.repo.GetAllCourts(c.Request.Context(), clubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load courts"})
		return
	}

	c.JSON(http.StatusOK, courts)
}
