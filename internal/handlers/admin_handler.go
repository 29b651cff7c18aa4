package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/uduakobong/go-wedding-rsvp/internal/attendees"
	"github.com/uduakobong/go-wedding-rsvp/internal/aws"
	"github.com/uduakobong/go-wedding-rsvp/internal/metrics"
	"github.com/uduakobong/go-wedding-rsvp/internal/validation"
)

// InviteJob is the queue payload enqueued when an attendee is accepted. The
// sweeper consumes it and runs the dispatch pipeline.
type InviteJob struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func registerAdminRoutes(r *gin.Engine, v *validatorv10.Validate, store *attendees.Store, publisher *aws.Publisher, counters *metrics.Publisher, log zerolog.Logger) {
	// dashboard listing, newest first, optional ?status= filter
	r.GET("/attendees", func(c *gin.Context) {
		ctx := c.Request.Context()

		statusFilter := c.Query("status")
		if statusFilter != "" && !attendees.ValidStatus(statusFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
			return
		}

		list, err := store.List(ctx, statusFilter)
		if err != nil {
			log.Error().Err(err).Msg("attendee listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
	})

	// manual check-in search box
	r.GET("/attendees/search", func(c *gin.Context) {
		ctx := c.Request.Context()

		matches, err := store.Search(ctx, c.Query("q"))
		if err != nil {
			log.Error().Err(err).Msg("attendee search failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": matches})
	})

	// accept/reject decision
	r.POST("/attendees/:id/status", func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")

		var req validation.StatusUpdateRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		att, err := store.Get(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("id", id).Msg("attendee fetch failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected"})
			return
		}
		if att == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		if !attendees.CanTransition(att.Status, req.Status) {
			c.JSON(http.StatusConflict, gin.H{"error": "invalid_transition", "msg": "attendee is already checked in"})
			return
		}

		accepted := req.Status == attendees.StatusAccepted
		if err := store.UpdateStatus(ctx, id, req.Status, accepted); err != nil {
			// state unchanged on failure; the dashboard must not assume
			// its optimistic update persisted
			switch {
			case errors.Is(err, attendees.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			case errors.Is(err, attendees.ErrInvalidTransition):
				c.JSON(http.StatusConflict, gin.H{"error": "invalid_transition"})
			default:
				log.Error().Err(err).Str("id", id).Msg("status update failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected"})
			}
			return
		}

		// acceptance enqueues the invite job; a failed enqueue leaves the
		// record flagged dispatch_pending for the sweeper to pick up
		if accepted && publisher != nil {
			body, _ := json.Marshal(InviteJob{ID: att.ID, Name: att.Name, Email: att.Email})
			attrs := map[string]string{
				"attendee_id":    att.ID,
				"correlation_id": c.GetHeader("X-Request-Id"),
			}
			if err := publisher.SendInviteJob(ctx, string(body), attrs); err != nil {
				log.Warn().Err(err).Str("id", att.ID).Msg("invite enqueue failed; record stays dispatch_pending")
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
	})
}
