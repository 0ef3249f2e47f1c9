package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/Domenick1991/airquery/internal/query"
	"github.com/Domenick1991/airquery/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	log     logger.Logger
}

func NewFlightHandler(service flights.FlightUseCase, log logger.Logger) *FlightHandler {
	return &FlightHandler{service: service, log: log}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.search)
	router.GET("/airlines", h.airlines)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) search(c *gin.Context) {
	params, err := searchParams(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	result, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) airlines(c *gin.Context) {
	airlines, err := h.service.Airlines(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, airlines)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func searchParams(c *gin.Context) (flights.SearchParams, error) {
	params := flights.SearchParams{
		Text:     c.Query("q"),
		Airlines: c.QueryArray("airline"),
		Stops:    c.Query("stops"),
		Sort:     c.Query("sort"),
	}

	var err error
	if params.MinPrice, err = floatParam(c, "min_price"); err != nil {
		return params, err
	}
	if params.MaxPrice, err = floatParam(c, "max_price"); err != nil {
		return params, err
	}
	if params.Departure, err = hourRangeParam(c, "dep_from", "dep_to"); err != nil {
		return params, err
	}
	if params.Arrival, err = hourRangeParam(c, "arr_from", "arr_to"); err != nil {
		return params, err
	}
	return params, nil
}

func floatParam(c *gin.Context, name string) (*float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &query.ConfigurationError{Field: name, Reason: "must be a number"}
	}
	return &v, nil
}

func hourRangeParam(c *gin.Context, fromName, toName string) (*flights.HourRange, error) {
	from, fromOK := c.GetQuery(fromName)
	to, toOK := c.GetQuery(toName)
	if !fromOK && !toOK {
		return nil, nil
	}

	r := &flights.HourRange{From: 0, To: 24}
	var err error
	if fromOK && from != "" {
		if r.From, err = strconv.Atoi(from); err != nil {
			return nil, &query.ConfigurationError{Field: fromName, Reason: "must be an hour between 0 and 24"}
		}
	}
	if toOK && to != "" {
		if r.To, err = strconv.Atoi(to); err != nil {
			return nil, &query.ConfigurationError{Field: toName, Reason: "must be an hour between 0 and 24"}
		}
	}
	return r, nil
}
