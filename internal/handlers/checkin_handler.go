package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/uduakobong/go-wedding-rsvp/internal/checkin"
	"github.com/uduakobong/go-wedding-rsvp/internal/metrics"
	"github.com/uduakobong/go-wedding-rsvp/internal/validation"
)

func registerCheckInRoutes(r *gin.Engine, v *validatorv10.Validate, resolver *checkin.Resolver, counters *metrics.Publisher, log zerolog.Logger) {
	r.POST("/check-in", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CheckInRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		res, err := resolver.Resolve(ctx, req.Payload)
		if err != nil {
			log.Error().Err(err).Msg("check-in resolution failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected"})
			return
		}

		switch res.Outcome {
		case checkin.OutcomeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "msg": "Attendee not found"})
		case checkin.OutcomeAlreadyCheckedIn:
			c.JSON(http.StatusOK, gin.H{"alreadyCheckedIn": true, "data": res.Attendee})
		case checkin.OutcomeSuccess:
			counters.Count(ctx, metrics.MetricCheckedIn)
			c.JSON(http.StatusOK, gin.H{"success": true, "data": res.Attendee})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected"})
		}
	})
}
