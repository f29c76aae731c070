package controllers

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine,
	healthController *HealthController,
	itineraryController *ItineraryController,
	tripController *TripController) {

	r.GET("/healthz", healthController.Healthz)

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("/validate", itineraryController.ValidateItinerary)

	tripGroup := r.Group("/trips")
	tripGroup.POST("", tripController.CreateTrip)
	tripGroup.GET("", tripController.ListTrips)
	tripGroup.GET("/:tripId", tripController.GetTrip)
	tripGroup.POST("/:tripId/chat", tripController.ModifyTrip)
	tripGroup.GET("/:tripId/map", tripController.TripMap)
}
