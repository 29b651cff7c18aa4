// Package metrics publishes best-effort counters to CloudWatch.
package metrics

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/rs/zerolog"

	"github.com/uduakobong/go-wedding-rsvp/internal/aws"
)

// Metric names emitted by the service.
const (
	MetricRSVPSubmitted    = "RSVPSubmitted"
	MetricRSVPRateLimited  = "RSVPRateLimited"
	MetricRSVPDuplicate    = "RSVPDuplicate"
	MetricInviteDispatched = "InviteDispatched"
	MetricDispatchFailed   = "InviteDispatchFailed"
	MetricCheckedIn        = "AttendeeCheckedIn"
)

const namespace = "WeddingRSVP"

// Publisher emits counters. A nil *Publisher is a no-op so metrics stay
// optional in local runs.
type Publisher struct {
	client  aws.CloudWatchAPI
	log     zerolog.Logger
	nowFunc func() time.Time
}

// NewPublisher returns a Publisher over the CloudWatch client.
func NewPublisher(client aws.CloudWatchAPI, log zerolog.Logger) *Publisher {
	return &Publisher{
		client:  client,
		log:     log,
		nowFunc: time.Now,
	}
}

// Count increments a metric by 1. Failures are logged and swallowed; metrics
// never affect the request outcome.
func (p *Publisher) Count(ctx context.Context, name string) {
	if p == nil {
		return
	}
	now := p.nowFunc().UTC()
	one := 1.0
	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: strPtr(namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: &name,
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitCount,
				Value:      &one,
			},
		},
	})
	if err != nil {
		p.log.Warn().Err(err).Str("metric", name).Msg("metric publish failed")
	}
}

func strPtr(s string) *string { return &s }
