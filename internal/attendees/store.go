package attendees

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/uduakobong/go-wedding-rsvp/internal/aws"
)

// EmailIndex is the GSI used for the duplicate-email lookup at intake.
const EmailIndex = "email-index"

var (
	// ErrDuplicateEmail indicates an RSVP already exists for the email.
	ErrDuplicateEmail = errors.New("rsvp already submitted for this email")
	// ErrNotFound indicates no attendee exists for the id.
	ErrNotFound = errors.New("attendee not found")
	// ErrAlreadyCheckedIn indicates the guarded check-in update found the
	// record already in checked_in. Soft outcome, not a fault.
	ErrAlreadyCheckedIn = errors.New("attendee already checked in")
	// ErrInvalidTransition indicates the requested status change is not in
	// the transition table (e.g. out of checked_in).
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Store encapsulates operations on the attendees table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
	idFunc    func() string
}

// NewStore creates a new attendees Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
		idFunc:    uuid.NewString,
	}
}

// Create inserts a new pending attendee. The id is generated here, at the
// store boundary. Email uniqueness is enforced by a pre-insert lookup on the
// email GSI; it is a soft constraint, two racing submissions for the same
// email can both land.
func (s *Store) Create(ctx context.Context, name, email, phone string, plusOne bool) (*Attendee, error) {
	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	now := s.nowFunc().UTC()
	att := Attendee{
		ID:        s.idFunc(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		PlusOne:   plusOne,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	item, err := attributevalue.MarshalMap(att)
	if err != nil {
		return nil, fmt.Errorf("marshal attendee: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("put item: %w", err)
	}
	return &att, nil
}

// Get fetches an attendee by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, id string) (*Attendee, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var att Attendee
	if err := attributevalue.UnmarshalMap(out.Item, &att); err != nil {
		return nil, fmt.Errorf("unmarshal attendee: %w", err)
	}
	return &att, nil
}

// FindByEmail queries the email GSI. Returns (nil, nil) when no attendee has
// the email.
func (s *Store) FindByEmail(ctx context.Context, email string) (*Attendee, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              awsString(EmailIndex),
		KeyConditionExpression: awsString("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		Limit: awsInt32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query email index: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var att Attendee
	if err := attributevalue.UnmarshalMap(out.Items[0], &att); err != nil {
		return nil, fmt.Errorf("unmarshal attendee: %w", err)
	}
	return &att, nil
}

// List returns all attendees, optionally filtered by status, newest first.
// A full Scan is fine here: the table is a single wedding's guest list.
func (s *Store) List(ctx context.Context, statusFilter string) ([]Attendee, error) {
	input := &dyn.ScanInput{TableName: &s.tableName}
	if statusFilter != "" {
		input.FilterExpression = awsString("#s = :status")
		input.ExpressionAttributeNames = map[string]string{"#s": "status"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: statusFilter},
		}
	}

	var result []Attendee
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan attendees: %w", err)
		}
		var page []Attendee
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal attendees: %w", err)
		}
		result = append(result, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Search returns attendees whose name or email contains the query,
// case-insensitive. Matching happens in process; DynamoDB contains() is
// case-sensitive and the table is small.
func (s *Store) Search(ctx context.Context, query string) ([]Attendee, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	all, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}

	var matches []Attendee
	for _, att := range all {
		if strings.Contains(strings.ToLower(att.Name), query) ||
			strings.Contains(strings.ToLower(att.Email), query) {
			matches = append(matches, att)
		}
	}
	return matches, nil
}

// UpdateStatus applies an admin decision (accepted or rejected). The update
// is guarded so a checked_in record can never leave that state. When
// markDispatchPending is set (an accept), the record is flagged for the
// invite sweeper in the same write.
func (s *Store) UpdateStatus(ctx context.Context, id, newStatus string, markDispatchPending bool) error {
	if !CanTransition("", newStatus) {
		return ErrInvalidTransition
	}

	now := s.nowFunc().UTC()
	updateExpr := "SET #s = :new, updated_at = :ua"
	values := map[string]types.AttributeValue{
		":new":     &types.AttributeValueMemberS{Value: newStatus},
		":ua":      &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
		":checked": &types.AttributeValueMemberS{Value: StatusCheckedIn},
	}
	if markDispatchPending {
		updateExpr += ", dispatch_pending = :dp"
		values[":dp"] = &types.AttributeValueMemberBOOL{Value: true}
	}

	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          &updateExpr,
		ExpressionAttributeNames:  map[string]string{"#s": "status"},
		ExpressionAttributeValues: values,
		ConditionExpression:       awsString("attribute_exists(id) AND #s <> :checked"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			// either no record or the record is terminal; disambiguate
			att, getErr := s.Get(ctx, id)
			if getErr == nil && att == nil {
				return ErrNotFound
			}
			return ErrInvalidTransition
		}
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// CheckIn transitions the attendee to checked_in with a guarded update so
// that under a double scan at most one mutation wins. Returns the record as
// it existed before the transition.
func (s *Store) CheckIn(ctx context.Context, id string) (*Attendee, error) {
	att, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, ErrNotFound
	}
	if att.Status == StatusCheckedIn {
		return att, ErrAlreadyCheckedIn
	}

	now := s.nowFunc().UTC()
	_, err = s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:         awsString("SET #s = :checked, updated_at = :ua"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":checked": &types.AttributeValueMemberS{Value: StatusCheckedIn},
			":ua":      &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
		},
		ConditionExpression: awsString("attribute_exists(id) AND #s <> :checked"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			// lost the race to another scanner
			return att, ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("check in: %w", err)
	}
	return att, nil
}

// SetQRCodeData records the public QR image URL and clears the dispatch flag.
// Upsert is intentional at the storage layer; a re-dispatch overwrites the
// prior reference.
func (s *Store) SetQRCodeData(ctx context.Context, id, url string) error {
	now := s.nowFunc().UTC()
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: awsString("SET qr_code_data = :url, dispatch_pending = :dp, updated_at = :ua"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":url": &types.AttributeValueMemberS{Value: url},
			":dp":  &types.AttributeValueMemberBOOL{Value: false},
			":ua":  &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
		},
		ConditionExpression: awsString("attribute_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrNotFound
		}
		return fmt.Errorf("set qr code data: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
func awsInt32(n int32) *int32    { return &n }
