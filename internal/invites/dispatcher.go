// Package invites generates and emails QR-coded confirmations for accepted
// attendees.
package invites

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/uduakobong/go-wedding-rsvp/internal/aws"
	"github.com/uduakobong/go-wedding-rsvp/internal/checkin"
)

// Stage errors. Dispatch short-circuits at the first failure and wraps the
// cause in the matching sentinel so callers can report which step broke.
var (
	ErrQRCodeEncode  = errors.New("qr_encode_failed")
	ErrStorageUpload = errors.New("storage_upload_failed")
	ErrURLResolution = errors.New("url_resolution_failed")
	ErrRecordUpdate  = errors.New("record_update_failed")
	ErrEmailSend     = errors.New("email_send_failed")
)

const qrImageSize = 256

// RecordUpdater is the slice of the attendee store the dispatcher needs.
type RecordUpdater interface {
	SetQRCodeData(ctx context.Context, id, url string) error
}

// Dispatcher runs the invite pipeline: encode QR, upload to S3, persist the
// public URL on the attendee, email the guest.
type Dispatcher struct {
	records   RecordUpdater
	s3        aws.S3API
	ses       aws.SESAPI
	bucket    string
	publicURL string // base URL under which bucket objects resolve
	fromAddr  string

	encodeFunc func(content string) ([]byte, error)
}

// NewDispatcher wires a Dispatcher. publicURL is the base under which the
// bucket is served (CloudFront or website endpoint); object keys are appended
// to it.
func NewDispatcher(records RecordUpdater, s3Client aws.S3API, sesClient aws.SESAPI, bucket, publicURL, fromAddr string) *Dispatcher {
	return &Dispatcher{
		records:   records,
		s3:        s3Client,
		ses:       sesClient,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		fromAddr:  fromAddr,
		encodeFunc: func(content string) ([]byte, error) {
			return qrcode.Encode(content, qrcode.Medium, qrImageSize)
		},
	}
}

// Dispatch generates the attendee's QR code, stores it under qr/<id>.png
// (upsert; re-dispatch overwrites), records the public URL and emails the
// invitation. Each step must succeed; the first failure is returned without
// attempting later steps.
func (d *Dispatcher) Dispatch(ctx context.Context, id, name, email string) error {
	payload := checkin.Payload(id)

	png, err := d.encodeFunc(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQRCodeEncode, err)
	}

	key := fmt.Sprintf("qr/%s.png", id)
	_, err = d.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &d.bucket,
		Key:         &key,
		Body:        bytes.NewReader(png),
		ContentType: strPtr("image/png"),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUpload, err)
	}

	if d.publicURL == "" {
		return fmt.Errorf("%w: no public base URL configured", ErrURLResolution)
	}
	qrURL := d.publicURL + "/" + key

	if err := d.records.SetQRCodeData(ctx, id, qrURL); err != nil {
		return fmt.Errorf("%w: %v", ErrRecordUpdate, err)
	}

	html, err := renderInvitation(name, qrURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}

	_, err = d.ses.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &d.fromAddr,
		Destination: &sestypes.Destination{
			ToAddresses: []string{email},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: strPtr(invitationSubject)},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: &html},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
