package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"chatterpal/internal/domain"
)

const skData = "DATA"

// dynamodbAPI is the minimal DynamoDB interface required by SlotStore.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// SlotStore keeps the whole conversation collection as one JSON document in
// a single DynamoDB item, mirroring the named-slot storage contract of the
// file store.
type SlotStore struct {
	api       dynamodbAPI
	tableName string
	slot      string
}

// New creates a SlotStore for the given table and slot name.
func New(api dynamodbAPI, tableName, slot string) (*SlotStore, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	if strings.TrimSpace(slot) == "" {
		return nil, errors.New("repository: slot name must not be empty")
	}
	return &SlotStore{api: api, tableName: tableName, slot: slot}, nil
}

// slotPK returns the partition key for a slot.
func slotPK(slot string) string {
	return "SLOT#" + slot
}

// Load fetches the slot item and decodes its document. A missing item or an
// undecodable document yields an empty collection; a transport error is
// returned for the caller to log.
func (s *SlotStore) Load(ctx context.Context) ([]domain.Conversation, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: slotPK(s.slot)},
			"SK": &types.AttributeValueMemberS{Value: skData},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("repository: load slot %q: %w", s.slot, err)
	}
	if out == nil || out.Item == nil {
		return nil, nil
	}
	doc, ok := out.Item["doc"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, nil
	}
	var convos []domain.Conversation
	if err := json.Unmarshal([]byte(doc.Value), &convos); err != nil {
		return nil, nil
	}
	return convos, nil
}

// Save writes the full collection back as one document.
func (s *SlotStore) Save(ctx context.Context, convos []domain.Conversation) error {
	if convos == nil {
		convos = []domain.Conversation{}
	}
	doc, err := json.Marshal(convos)
	if err != nil {
		return fmt.Errorf("repository: marshal collection: %w", err)
	}
	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"PK":         &types.AttributeValueMemberS{Value: slotPK(s.slot)},
			"SK":         &types.AttributeValueMemberS{Value: skData},
			"doc":        &types.AttributeValueMemberS{Value: string(doc)},
			"updated_at": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("repository: save slot %q: %w", s.slot, err)
	}
	return nil
}
