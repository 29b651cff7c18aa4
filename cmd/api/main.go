package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/uduakobong/go-wedding-rsvp/internal/aws"
	"github.com/uduakobong/go-wedding-rsvp/internal/handlers"
	"github.com/uduakobong/go-wedding-rsvp/internal/ratelimit"
)

// Intake limits: 5 submissions per IP per hour window. Process-local; resets
// on restart.
const (
	rateLimit  = 5
	timeWindow = time.Hour
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(r, cfg)

	return r
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "api").Logger()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init aws clients")
	}

	cfg := handlers.HandlerConfig{
		DynamoDBClient:   clients.DynamoDB,
		S3Client:         clients.S3,
		SESClient:        clients.SES,
		SQSClient:        clients.SQS,
		CloudWatchClient: clients.CloudWatch,
		AttendeesTable:   os.Getenv("ATTENDEES_TABLE"),
		RSVPLogsTable:    os.Getenv("RSVP_LOGS_TABLE"),
		QRBucket:         os.Getenv("QR_BUCKET"),
		QRPublicBaseURL:  os.Getenv("QR_PUBLIC_BASE_URL"),
		InvitesQueueURL:  os.Getenv("INVITES_QUEUE_URL"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		Limiter:          ratelimit.NewMemory(rateLimit, timeWindow),
		Logger:           logger,
	}

	r := setupRouter(cfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := ":8080"
		logger.Info().Str("addr", addr).Msg("running local server")
		if err := r.Run(addr); err != nil {
			logger.Fatal().Err(err).Msg("failed to run local server")
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
