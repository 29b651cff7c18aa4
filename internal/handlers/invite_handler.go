package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/uduakobong/go-wedding-rsvp/internal/invites"
	"github.com/uduakobong/go-wedding-rsvp/internal/metrics"
	"github.com/uduakobong/go-wedding-rsvp/internal/validation"
)

func registerInviteRoutes(r *gin.Engine, v *validatorv10.Validate, dispatcher *invites.Dispatcher, counters *metrics.Publisher, log zerolog.Logger) {
	r.POST("/send-invite", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.SendInviteRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		if err := dispatcher.Dispatch(ctx, req.ID, req.Name, req.Email); err != nil {
			counters.Count(ctx, metrics.MetricDispatchFailed)
			log.Error().Err(err).Str("id", req.ID).Msg("invite dispatch failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": dispatchStage(err),
				"msg":   err.Error(),
			})
			return
		}

		counters.Count(ctx, metrics.MetricInviteDispatched)
		c.JSON(http.StatusOK, gin.H{"success": true, "sentEmail": req.Email})
	})
}

// dispatchStage maps a pipeline error to its stage code so the dashboard can
// report which step broke.
func dispatchStage(err error) string {
	switch {
	case errors.Is(err, invites.ErrQRCodeEncode):
		return "qr_encode_failed"
	case errors.Is(err, invites.ErrStorageUpload):
		return "storage_upload_failed"
	case errors.Is(err, invites.ErrURLResolution):
		return "url_resolution_failed"
	case errors.Is(err, invites.ErrRecordUpdate):
		return "record_update_failed"
	case errors.Is(err, invites.ErrEmailSend):
		return "email_send_failed"
	}
	return "unexpected"
}
