package storage

import (
	"context"
	"sync"
	"time"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SettingsID is the partition key of the single settings item.
const SettingsID = "settings"

type SettingsStorage interface {
	Get(ctx context.Context) (*Settings, error)
	Put(ctx context.Context, settings *Settings) error
}

// DefaultSettings mirrors the presentation the scoreboard starts with before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		ID:             SettingsID,
		VotingSystem:   "modern",
		Theme:          "win98",
		ShowVoterPanel: true,
		PanelPosition:  "left",
		Variant:        "compact",
		ShowFlags:      true,
	}
}

type MemorySettingsStorage struct {
	mu       sync.RWMutex
	settings *Settings
}

func NewMemorySettingsStorage() *MemorySettingsStorage {
	return &MemorySettingsStorage{}
}

func (s *MemorySettingsStorage) Get(_ context.Context) (*Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return nil, ErrSettingsNotFound
	}
	out := *s.settings
	return &out, nil
}

func (s *MemorySettingsStorage) Put(_ context.Context, settings *Settings) error {
	stored := *settings
	stored.ID = SettingsID
	stored.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &stored
	logging.Log.Infof("SETTINGS: saved voting system %s, theme %s", stored.VotingSystem, stored.Theme)
	return nil
}

type DynamoSettingsStorage struct {
	Client    DynamoClient
	TableName string
}

func (s *DynamoSettingsStorage) Get(ctx context.Context) (*Settings, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: SettingsID},
		},
	})
	if err != nil {
		logging.Log.Errorf("SETTINGS: GetItem failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Debug("SETTINGS: nothing saved yet")
		return nil, ErrSettingsNotFound
	}

	var settings Settings
	if err := attributevalue.UnmarshalMap(out.Item, &settings); err != nil {
		logging.Log.Errorf("SETTINGS: failed to unmarshal settings: %v", err)
		return nil, err
	}
	return &settings, nil
}

func (s *DynamoSettingsStorage) Put(ctx context.Context, settings *Settings) error {
	stored := *settings
	stored.ID = SettingsID
	stored.UpdatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(stored)
	if err != nil {
		logging.Log.Errorf("SETTINGS: failed to marshal settings: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("SETTINGS: failed to save settings: %v", err)
		return err
	}
	logging.Log.Infof("SETTINGS: saved voting system %s, theme %s", stored.VotingSystem, stored.Theme)
	return nil
}
