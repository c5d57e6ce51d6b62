package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/dxbpulse/internal/domain/dto"
	"github.com/guttosm/dxbpulse/internal/domain/models"
	"github.com/guttosm/dxbpulse/internal/filter"
	"github.com/guttosm/dxbpulse/internal/middleware"
	"github.com/guttosm/dxbpulse/internal/service"
)

// Handler provides HTTP handlers for the market analysis endpoints.
//
// Responsibilities:
//   - Validate the submitted filter criteria
//   - Run the analysis pipeline
//   - Translate pipeline outcomes into response DTOs and status codes
type Handler struct {
	svc service.AnalysisService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.AnalysisService) *Handler {
	return &Handler{svc: svc}
}

// RunAnalysis handles POST /api/v1/analysis.
//
// An empty body analyzes the whole dataset.
//
// RunAnalysis godoc
// @Summary      Run market analysis
// @Description  Filters transactions, aggregates them per quarter, classifies the latest price and volume trend and looks up the matching insight
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AnalysisRequest   false  "Filter criteria"
// @Success      200      {object}  dto.AnalysisResponse  "ok or insufficient_data"
// @Failure      400      {object}  dto.ErrorResponse     "Bad Request"
// @Failure      422      {object}  dto.ErrorResponse     "Too many results"
// @Failure      500      {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/analysis [post]
func (h *Handler) RunAnalysis(c *gin.Context) {
	var req dto.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	h.analyze(c, req)
}

// RunAnalysisQuery handles GET /api/v1/analysis with the same criteria as
// query parameters; list filters repeat the key (?areas=A&areas=B).
//
// RunAnalysisQuery godoc
// @Summary      Run market analysis (query string)
// @Tags         analysis
// @Produce      json
// @Param        areas           query     []string  false  "Areas"           collectionFormat(multi)
// @Param        property_types  query     []string  false  "Property types"  collectionFormat(multi)
// @Param        rooms           query     []string  false  "Rooms"           collectionFormat(multi)
// @Param        max_budget      query     number    false  "Maximum worth"   example(2000000)
// @Param        start_date      query     string    false  "YYYY-MM-DD"      example(2023-01-01)
// @Param        end_date        query     string    false  "YYYY-MM-DD"      example(2024-12-31)
// @Success      200  {object}  dto.AnalysisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/analysis [get]
func (h *Handler) RunAnalysisQuery(c *gin.Context) {
	var req dto.AnalysisRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	h.analyze(c, req)
}

func (h *Handler) analyze(c *gin.Context, req dto.AnalysisRequest) {
	criteria, err := BuildCriteria(req, h.svc.Options())
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid filter criteria", err)
		return
	}

	out, err := h.svc.Analyze(c.Request.Context(), criteria)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			middleware.AbortWithError(c, http.StatusGatewayTimeout, "analysis timed out", err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, "analysis failed", err)
		return
	}

	if out.Status == models.StatusOverCapacity {
		middleware.AbortWithError(c, http.StatusUnprocessableEntity, dto.MsgOverCapacity,
			&filter.OverCapacityError{Count: out.MatchedCount, Limit: out.Limit})
		return
	}
	c.JSON(http.StatusOK, dto.NewAnalysisResponse(out))
}

// BuildCriteria validates a request against the dataset bounds used for
// omitted budget and dates.
func BuildCriteria(req dto.AnalysisRequest, bounds models.FilterOptions) (filter.Criteria, error) {
	from, err := dto.ParseDate(strings.TrimSpace(req.StartDate))
	if err != nil {
		return filter.Criteria{}, errors.New("start_date must be YYYY-MM-DD")
	}
	to, err := dto.ParseDate(strings.TrimSpace(req.EndDate))
	if err != nil {
		return filter.Criteria{}, errors.New("end_date must be YYYY-MM-DD")
	}
	return filter.New(filter.Input{
		Areas:         req.Areas,
		PropertyTypes: req.PropertyTypes,
		Rooms:         req.Rooms,
		MaxWorth:      req.MaxBudget,
		From:          from,
		To:            to,
	}, bounds)
}

// GetFilters handles GET /api/v1/filters.
//
// GetFilters godoc
// @Summary      List filter options
// @Description  Distinct areas, property types and room counts with worth and date bounds of the loaded dataset
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  dto.FilterOptionsResponse
// @Router       /api/v1/filters [get]
func (h *Handler) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewFilterOptionsResponse(h.svc.Options()))
}

// GetPattern handles GET /api/v1/patterns/:key.
//
// GetPattern godoc
// @Summary      Look up a pattern
// @Description  Returns the catalog row whose id equals key exactly, e.g. Up-Up-Down-Down
// @Tags         patterns
// @Produce      json
// @Param        key  path      string  true  "Pattern key"  example(Up-Up-Down-Down)
// @Success      200  {object}  models.Pattern
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/patterns/{key} [get]
func (h *Handler) GetPattern(c *gin.Context) {
	key := c.Param("key")
	p, ok := h.svc.Pattern(key)
	if !ok {
		middleware.AbortWithError(c, http.StatusNotFound, "pattern not found", fmt.Errorf("no catalog row with id %q", key))
		return
	}
	c.JSON(http.StatusOK, p)
}
