// Package handlers wires the HTTP surface: public RSVP intake, the admin
// dashboard endpoints, invite dispatch and the check-in scanner.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/uduakobong/go-wedding-rsvp/internal/attendees"
	"github.com/uduakobong/go-wedding-rsvp/internal/aws"
	"github.com/uduakobong/go-wedding-rsvp/internal/checkin"
	"github.com/uduakobong/go-wedding-rsvp/internal/invites"
	"github.com/uduakobong/go-wedding-rsvp/internal/metrics"
	"github.com/uduakobong/go-wedding-rsvp/internal/ratelimit"
	"github.com/uduakobong/go-wedding-rsvp/internal/validation"
)

// HandlerConfig groups dependencies for the API handlers.
type HandlerConfig struct {
	DynamoDBClient   aws.DynamoDBAPI
	S3Client         aws.S3API
	SESClient        aws.SESAPI
	SQSClient        aws.SQSAPI
	CloudWatchClient aws.CloudWatchAPI // optional; nil disables metrics

	AttendeesTable  string
	RSVPLogsTable   string
	QRBucket        string
	QRPublicBaseURL string
	InvitesQueueURL string
	EmailFrom       string

	Limiter ratelimit.Limiter
	Logger  zerolog.Logger
}

// RegisterRoutes registers all API routes.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	store := attendees.NewStore(cfg.DynamoDBClient, cfg.AttendeesTable)
	logStore := attendees.NewLogStore(cfg.DynamoDBClient, cfg.RSVPLogsTable)
	dispatcher := invites.NewDispatcher(store, cfg.S3Client, cfg.SESClient, cfg.QRBucket, cfg.QRPublicBaseURL, cfg.EmailFrom)
	resolver := checkin.NewResolver(store)

	var publisher *aws.Publisher
	if cfg.SQSClient != nil && cfg.InvitesQueueURL != "" {
		publisher = aws.NewPublisher(cfg.SQSClient, cfg.InvitesQueueURL)
	}

	var counters *metrics.Publisher
	if cfg.CloudWatchClient != nil {
		counters = metrics.NewPublisher(cfg.CloudWatchClient, cfg.Logger)
	}

	registerRSVPRoutes(r, v, store, logStore, cfg.Limiter, counters, cfg.Logger)
	registerAdminRoutes(r, v, store, publisher, counters, cfg.Logger)
	registerInviteRoutes(r, v, dispatcher, counters, cfg.Logger)
	registerCheckInRoutes(r, v, resolver, counters, cfg.Logger)
}
