package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"wayplan/internal/services"
	"wayplan/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	requestValidator *services.RequestValidator
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, requestValidator *services.RequestValidator) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		requestValidator: requestValidator,
	}
}

// GenerateItinerary godoc
// @Summary Generate an itinerary
// @Description Generate a day-by-day itinerary from trip preferences and store it for the authenticated user
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.ItineraryInput true "Trip preferences"
// @Success 200 {object} response_models.GenerateItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Example {json} Request Body Example:
//
//	{
//	  "destination": "Kyoto, Japan",
//	  "numDays": 3,
//	  "budget": "Moderate",
//	  "ageGroups": ["Adults"],
//	  "partySize": 2,
//	  "activityLevel": "Moderate"
//	}
//
// @Router /itineraries/generate [post]
func (i *ItineraryController) GenerateItinerary(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unable to read request body")
		return
	}

	req, err := i.requestValidator.ValidateJSON(raw)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	// Generation keeps running if the client disconnects; upstream calls carry their own timeouts.
	ctx := utils.WithTraceID(context.WithoutCancel(c.Request.Context()), c.GetString("trace_id"))

	resp, err := i.itineraryService.GenerateItinerary(ctx, c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Itinerary generated successfully")
}

// ListItineraries godoc
// @Summary List itineraries
// @Description Fetch a paginated list of itineraries for the authenticated user, newest first
// @Tags Itinerary
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(5) minimum(1) maximum(100)
// @Success 200 {array} response_models.ItineraryListItem
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries [get]
func (i *ItineraryController) ListItineraries(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidPage)
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "5"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidPageSize)
		return
	}

	ctx := utils.WithTraceID(c.Request.Context(), c.GetString("trace_id"))

	items, err := i.itineraryService.ListItineraries(ctx, c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Itineraries fetched successfully")
}

// GetItinerary godoc
// @Summary Get itinerary by ID
// @Description Fetch a stored itinerary owned by the authenticated user
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} response_models.ItineraryDetailResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{id} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	ctx := utils.WithTraceID(c.Request.Context(), c.GetString("trace_id"))

	itinerary, err := i.itineraryService.GetItinerary(ctx, c.GetString("user_id"), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}

// DeleteItinerary godoc
// @Summary Delete itinerary
// @Description Delete a stored itinerary owned by the authenticated user
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{id} [delete]
func (i *ItineraryController) DeleteItinerary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	ctx := utils.WithTraceID(c.Request.Context(), c.GetString("trace_id"))

	if err := i.itineraryService.DeleteItinerary(ctx, c.GetString("user_id"), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Itinerary deleted successfully")
}
