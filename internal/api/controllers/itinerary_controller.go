package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novatrip/internal/models/request_models"
	"novatrip/internal/services"
	"novatrip/pkg/utils"
)

type ItineraryController struct {
	tripService services.TripServiceInterface
}

func NewItineraryController(tripService services.TripServiceInterface) *ItineraryController {
	return &ItineraryController{tripService: tripService}
}

// ValidateItinerary godoc
// @Summary Validate an itinerary
// @Description Runs itinerary text through normalization, validation and budget scaling without saving it.
// @Description A rejected itinerary is answered with 422 and the same payload.
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.ValidateItineraryRequest true "Itinerary text and budget"
// @Success 200 {object} response_models.ValidationResult
// @Failure 422 {object} response_models.ValidationResult
// @Router /itineraries/validate [post]
func (ic *ItineraryController) ValidateItinerary(c *gin.Context) {
	var req request_models.ValidateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "itinerary_text is required")
		return
	}

	res := ic.tripService.ValidateItinerary(c.Request.Context(), req)
	if !res.IsValid {
		utils.RespondWithStatus(c, http.StatusUnprocessableEntity, res, res.Message)
		return
	}
	utils.RespondSuccess(c, res, res.Message)
}
