package handlers

import (
	"net/http"

	"amora_backend/internal/middleware"
	"amora_backend/internal/models"
	"amora_backend/internal/services"
	"amora_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	*BaseHandler
	venueService services.VenueService
}

func NewVenueHandler(base *BaseHandler, venueService services.VenueService) *VenueHandler {
	return &VenueHandler{
		BaseHandler:  base,
		venueService: venueService,
	}
}

// RegisterRoutes регистрирует маршруты заведений. Управление
// справочником заведений доступно только администратору.
func (h *VenueHandler) RegisterRoutes(rg *gin.RouterGroup) {
	venues := rg.Group("/venues")
	{
		venues.GET("/nearby", h.Nearby)
		venues.POST("/:id/check-in", h.CheckIn)
		venues.POST("/check-out", h.CheckOut)
	}

	admin := rg.Group("/admin/venues")
	admin.Use(middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.ListVenues)
		admin.POST("", h.CreateVenue)
		admin.PATCH("/:id", h.UpdateVenue)
		admin.DELETE("/:id", h.DeactivateVenue)
	}
}

// Nearby отдает заведения, в геозону которых попадает точка запроса.
func (h *VenueHandler) Nearby(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var query dto.NearbyQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)

	venues, err := h.venueService.VenuesInRange(db, *query.Latitude, *query.Longitude)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

func (h *VenueHandler) CheckIn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CheckInRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	venue, err := h.venueService.CheckIn(db, userID, c.Param("id"), *req.Latitude, *req.Longitude)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"venue": venue})
}

func (h *VenueHandler) CheckOut(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.venueService.CheckOut(db, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checked out"})
}

func (h *VenueHandler) ListVenues(c *gin.Context) {
	db := h.GetDB(c)

	venues, err := h.venueService.ListVenues(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

func (h *VenueHandler) CreateVenue(c *gin.Context) {
	var req dto.CreateVenueRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	venue, err := h.venueService.CreateVenue(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, venue)
}

func (h *VenueHandler) UpdateVenue(c *gin.Context) {
	var req dto.UpdateVenueRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	venue, err := h.venueService.UpdateVenue(db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, venue)
}

func (h *VenueHandler) DeactivateVenue(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.venueService.DeactivateVenue(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Venue deactivated"})
}
