package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
)

// Dispatcher is the slice of the invite pipeline the sweeper drives.
type Dispatcher interface {
	Dispatch(ctx context.Context, id, name, email string) error
}

// Processor consumes invite jobs and runs the dispatch pipeline. A failed
// dispatch returns an error so the message redrives; the queue's redrive
// policy is the retry mechanism.
type Processor struct {
	dispatcher Dispatcher
	log        zerolog.Logger
}

// NewProcessor returns a Processor over the dispatcher.
func NewProcessor(dispatcher Dispatcher, log zerolog.Logger) *Processor {
	return &Processor{dispatcher: dispatcher, log: log}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			p.log.Error().Err(err).Str("message_id", rec.MessageId).Msg("invite job failed")
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var job InviteJob
	if err := json.Unmarshal([]byte(rec.Body), &job); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if job.ID == "" || job.Email == "" {
		return fmt.Errorf("incomplete invite job: %q", rec.Body)
	}

	p.log.Info().Str("id", job.ID).Str("email", job.Email).Msg("dispatching invite")
	if err := p.dispatcher.Dispatch(ctx, job.ID, job.Name, job.Email); err != nil {
		return fmt.Errorf("dispatch invite for %s: %w", job.ID, err)
	}
	return nil
}
