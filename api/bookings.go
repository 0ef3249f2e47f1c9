package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/Domenick1991/airquery/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	log     logger.Logger
	now     func() time.Time
}

func NewBookingHandler(service booking.BookingUseCase, log logger.Logger) *BookingHandler {
	return &BookingHandler{service: service, log: log, now: time.Now}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/manage", h.manage)
	router.GET("/:reference", h.find)
}

func (h *BookingHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), booking.ListParams{
		Search:    c.Query("q"),
		Status:    c.Query("status"),
		SortKey:   c.Query("sort"),
		Direction: c.Query("direction"),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) manage(c *gin.Context) {
	view, err := h.service.Manage(c.Request.Context(), h.now())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) find(c *gin.Context) {
	found, err := h.service.Find(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, found)
}
