package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"novatrip/internal/itinerary"
	"novatrip/internal/models/request_models"
	"novatrip/internal/services"
	"novatrip/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
	chatService services.ChatServiceInterface
	mapService  services.MapServiceInterface
}

func NewTripController(
	tripService services.TripServiceInterface,
	chatService services.ChatServiceInterface,
	mapService services.MapServiceInterface,
) *TripController {
	return &TripController{
		tripService: tripService,
		chatService: chatService,
		mapService:  mapService,
	}
}

// CreateTrip godoc
// @Summary Generate a trip itinerary
// @Description Generates a day-by-day itinerary, validates it against the budget and saves it when accepted
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Destination, budget, days, trip type and group size"
// @Success 201 {object} response_models.CreateTripResult
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} response_models.CreateTripResult
// @Failure 502 {object} utils.APIResponse
// @Router /trips [post]
func (tc *TripController) CreateTrip(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	res, err := tc.tripService.CreateTrip(c.Request.Context(), req)
	if err != nil {
		if res != nil && errors.Is(err, itinerary.ErrInvalidItinerary) {
			utils.RespondWithStatus(c, http.StatusUnprocessableEntity, res, res.Validation.Message)
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, res, "Trip created successfully")
}

// GetTrip godoc
// @Summary Get a trip
// @Description Fetch a trip with its itinerary days, costs and places
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.TripDetail
// @Failure 404 {object} utils.APIResponse
// @Router /trips/{tripId} [get]
func (tc *TripController) GetTrip(c *gin.Context) {
	trip, err := tc.tripService.GetTrip(c.Request.Context(), c.Param("tripId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip, "Fetched trip successfully")
}

// ListTrips godoc
// @Summary List trips
// @Tags Trip
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} response_models.TripList
// @Router /trips [get]
func (tc *TripController) ListTrips(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	trips, err := tc.tripService.ListTrips(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trips, "Fetched trips successfully")
}

// ModifyTrip godoc
// @Summary Modify a trip by chat instruction
// @Description Applies a natural-language edit. The edited itinerary is saved only when it passes validation
// @Tags Trip
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.ChatModifyRequest true "Instruction and optional current itinerary"
// @Success 200 {object} response_models.ChatModifyResult
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} response_models.ChatModifyResult
// @Router /trips/{tripId}/chat [post]
func (tc *TripController) ModifyTrip(c *gin.Context) {
	var req request_models.ChatModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "instruction is required")
		return
	}

	res, err := tc.chatService.ModifyItinerary(c.Request.Context(), c.Param("tripId"), req)
	if err != nil {
		if res != nil && errors.Is(err, itinerary.ErrInvalidItinerary) {
			utils.RespondWithStatus(c, http.StatusUnprocessableEntity, res, res.Validation.Message)
			return
		}
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, "Itinerary updated")
}

// TripMap godoc
// @Summary Map markers for a trip
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.TripMap
// @Failure 404 {object} utils.APIResponse
// @Router /trips/{tripId}/map [get]
func (tc *TripController) TripMap(c *gin.Context) {
	m, err := tc.mapService.TripMap(c.Request.Context(), c.Param("tripId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, m, "Fetched map successfully")
}
