package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every endpoint handler for route
// registration.
type HandlerBundle struct {
	// Session endpoints.
	OpenSession    gin.HandlerFunc
	VerifyIdentity gin.HandlerFunc

	// Conversation endpoints.
	Chat       gin.HandlerFunc
	Transcribe gin.HandlerFunc

	// Booking endpoints.
	CreateBooking     gin.HandlerFunc
	ListBookings      gin.HandlerFunc
	CancelBooking     gin.HandlerFunc
	RescheduleBooking gin.HandlerFunc

	// Admin endpoints.
	ImportTaxRecords gin.HandlerFunc
}
