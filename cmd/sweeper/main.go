package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	sqssdk "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"

	"github.com/uduakobong/go-wedding-rsvp/internal/attendees"
	"github.com/uduakobong/go-wedding-rsvp/internal/aws"
	"github.com/uduakobong/go-wedding-rsvp/internal/invites"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "sweeper").Logger()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init aws clients")
	}

	store := attendees.NewStore(clients.DynamoDB, os.Getenv("ATTENDEES_TABLE"))
	dispatcher := invites.NewDispatcher(
		store,
		clients.S3,
		clients.SES,
		os.Getenv("QR_BUCKET"),
		os.Getenv("QR_PUBLIC_BASE_URL"),
		os.Getenv("EMAIL_FROM"),
	)
	processor := NewProcessor(dispatcher, logger)

	// RUN_LOCAL=true polls the queue directly instead of waiting for a
	// Lambda SQS trigger.
	if os.Getenv("RUN_LOCAL") == "true" {
		pollQueue(context.Background(), clients.SQS, os.Getenv("INVITES_QUEUE_URL"), processor, logger)
		return
	}

	lambda.Start(processor.Handle)
}

func pollQueue(ctx context.Context, client aws.SQSAPI, queueURL string, processor *Processor, logger zerolog.Logger) {
	if queueURL == "" {
		logger.Fatal().Msg("INVITES_QUEUE_URL is required for local polling")
	}
	logger.Info().Str("queue", queueURL).Msg("polling invite queue")

	for {
		out, err := client.ReceiveMessage(ctx, &sqssdk.ReceiveMessageInput{
			QueueUrl:            &queueURL,
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			logger.Error().Err(err).Msg("receive failed")
			time.Sleep(5 * time.Second)
			continue
		}

		for _, m := range out.Messages {
			rec := events.SQSMessage{Body: deref(m.Body), MessageId: deref(m.MessageId)}
			if err := processor.processMessage(ctx, rec); err != nil {
				// leave the message for redrive
				logger.Error().Err(err).Msg("invite job failed; message left for redrive")
				continue
			}
			_, err := client.DeleteMessage(ctx, &sqssdk.DeleteMessageInput{
				QueueUrl:      &queueURL,
				ReceiptHandle: m.ReceiptHandle,
			})
			if err != nil {
				logger.Warn().Err(err).Msg("delete failed; job may run again")
			}
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
