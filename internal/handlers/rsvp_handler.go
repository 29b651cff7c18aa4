package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/uduakobong/go-wedding-rsvp/internal/attendees"
	"github.com/uduakobong/go-wedding-rsvp/internal/metrics"
	"github.com/uduakobong/go-wedding-rsvp/internal/ratelimit"
	"github.com/uduakobong/go-wedding-rsvp/internal/validation"
)

func registerRSVPRoutes(r *gin.Engine, v *validatorv10.Validate, store *attendees.Store, logStore *attendees.LogStore, limiter ratelimit.Limiter, counters *metrics.Publisher, log zerolog.Logger) {
	r.POST("/rsvp", func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()

		// limiter first; a limited caller gets no validation feedback
		if limiter != nil && !limiter.Allow(ip) {
			counters.Count(ctx, metrics.MetricRSVPRateLimited)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too_many_submissions", "msg": "Too many submissions. Please try again later."})
			return
		}

		var req validation.RSVPRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		att, err := store.Create(ctx, req.Name, req.Email, req.Phone, req.PlusOne)
		if err != nil {
			if errors.Is(err, attendees.ErrDuplicateEmail) {
				counters.Count(ctx, metrics.MetricRSVPDuplicate)
				c.JSON(http.StatusConflict, gin.H{"error": "duplicate_email", "msg": "RSVP already submitted for this email."})
				return
			}
			log.Error().Err(err).Str("email", req.Email).Msg("rsvp insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected", "msg": "An unexpected error occurred."})
			return
		}

		// best-effort audit trail; never surfaced to the submitter
		if err := logStore.Append(ctx, req.Email, req.Name, ip); err != nil {
			log.Warn().Err(err).Str("email", req.Email).Msg("rsvp log write failed")
		}
		counters.Count(ctx, metrics.MetricRSVPSubmitted)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": att})
	})
}
