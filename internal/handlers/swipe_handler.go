package handlers

import (
	"net/http"

	"amora_backend/internal/services"
	"amora_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SwipeHandler struct {
	*BaseHandler
	swipeService services.SwipeService
}

func NewSwipeHandler(base *BaseHandler, swipeService services.SwipeService) *SwipeHandler {
	return &SwipeHandler{
		BaseHandler: base,
		swipeService: swipeService,
	}
}

// RegisterRoutes регистрирует свайпы и производные от журнала выборки.
func (h *SwipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/swipes", h.RecordSwipe)

	likes := rg.Group("/likes")
	{
		likes.GET("/sent", h.SentLikes)
		likes.GET("/received", h.ReceivedLikes)
	}

	rg.GET("/blocks", h.BlockedUsers)
}

func (h *SwipeHandler) RecordSwipe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SwipeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	result, err := h.swipeService.RecordSwipe(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *SwipeHandler) SentLikes(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	likes, err := h.swipeService.SentLikes(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *SwipeHandler) ReceivedLikes(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	likes, err := h.swipeService.ReceivedLikes(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *SwipeHandler) BlockedUsers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	blocks, err := h.swipeService.BlockedUsers(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}
