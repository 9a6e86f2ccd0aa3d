package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cenkalti/backoff/v4"
)

const batchWriteLimit = 25

// newBatchBackOff paces resubmission of unprocessed batch write requests.
var newBatchBackOff = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return backoff.WithMaxRetries(b, 8)
}

// ScoreboardStorage holds the currently loaded scoreboard collection. SetAll replaces
// the whole collection; there is no partial update.
type ScoreboardStorage interface {
	SetAll(ctx context.Context, coll scoreboard.Collection) error
	Clear(ctx context.Context) error
	Get(ctx context.Context, key string) ([]scoreboard.NormalizedScoreEntry, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
	All(ctx context.Context) (scoreboard.Collection, error)
}

// DynamoClient is the subset of the DynamoDB client the storages use.
type DynamoClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

type MemoryScoreboardStorage struct {
	mu          sync.RWMutex
	scoreboards scoreboard.Collection
}

func NewMemoryScoreboardStorage() *MemoryScoreboardStorage {
	return &MemoryScoreboardStorage{scoreboards: make(scoreboard.Collection)}
}

func (s *MemoryScoreboardStorage) SetAll(_ context.Context, coll scoreboard.Collection) error {
	if len(coll) == 0 {
		return ErrEmptyCollection
	}
	next := copyCollection(coll)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scoreboards = next
	logging.Log.Infof("SCOREBOARD: stored %d scoreboards in memory", len(next))
	return nil
}

func (s *MemoryScoreboardStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scoreboards = make(scoreboard.Collection)
	logging.Log.Info("SCOREBOARD: cleared memory storage")
	return nil
}

func (s *MemoryScoreboardStorage) Get(_ context.Context, key string) ([]scoreboard.NormalizedScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.scoreboards[key]
	if !ok {
		return nil, ErrScoreboardNotFound
	}
	return copyEntries(entries), nil
}

func (s *MemoryScoreboardStorage) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scoreboards.Keys(prefix), nil
}

func (s *MemoryScoreboardStorage) All(_ context.Context) (scoreboard.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCollection(s.scoreboards), nil
}

// DynamoScoreboardStorage keeps one item per scoreboard key.
type DynamoScoreboardStorage struct {
	Client    DynamoClient
	TableName string
}

func (s *DynamoScoreboardStorage) SetAll(ctx context.Context, coll scoreboard.Collection) error {
	if len(coll) == 0 {
		return ErrEmptyCollection
	}

	items := make([]map[string]types.AttributeValue, 0, len(coll))
	for _, key := range coll.Keys("") {
		item, err := attributevalue.MarshalMap(TransformScoreboardToItem(key, coll[key]))
		if err != nil {
			logging.Log.Errorf("SCOREBOARD: failed to marshal scoreboard %s: %v", key, err)
			return err
		}
		items = append(items, item)
	}

	if err := s.Clear(ctx); err != nil {
		return err
	}

	requests := make([]types.WriteRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}
	if err := s.batchWrite(ctx, requests); err != nil {
		logging.Log.Errorf("SCOREBOARD: batch put failed: %v", err)
		return err
	}
	logging.Log.Infof("SCOREBOARD: stored %d scoreboards in %s", len(items), s.TableName)
	return nil
}

func (s *DynamoScoreboardStorage) Clear(ctx context.Context) error {
	var requests []types.WriteRequest
	err := s.scan(ctx, aws.String("PK"), func(item map[string]types.AttributeValue) error {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{"PK": item["PK"]},
			},
		})
		return nil
	})
	if err != nil {
		logging.Log.Errorf("SCOREBOARD: scan for delete failed: %v", err)
		return err
	}
	if err := s.batchWrite(ctx, requests); err != nil {
		logging.Log.Errorf("SCOREBOARD: batch delete failed: %v", err)
		return err
	}
	return nil
}

func (s *DynamoScoreboardStorage) Get(ctx context.Context, key string) ([]scoreboard.NormalizedScoreEntry, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		logging.Log.Errorf("SCOREBOARD: GetItem for %s failed: %v", key, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrScoreboardNotFound
	}

	var item ScoreboardItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		logging.Log.Errorf("SCOREBOARD: failed to unmarshal scoreboard %s: %v", key, err)
		return nil, err
	}
	return TransformScoreboardFromItem(&item)
}

func (s *DynamoScoreboardStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.scan(ctx, aws.String("PK"), func(item map[string]types.AttributeValue) error {
		pk, ok := item["PK"].(*types.AttributeValueMemberS)
		if ok && strings.HasPrefix(pk.Value, prefix) {
			keys = append(keys, pk.Value)
		}
		return nil
	})
	if err != nil {
		logging.Log.Errorf("SCOREBOARD: scan for keys failed: %v", err)
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *DynamoScoreboardStorage) All(ctx context.Context) (scoreboard.Collection, error) {
	coll := make(scoreboard.Collection)
	err := s.scan(ctx, nil, func(raw map[string]types.AttributeValue) error {
		var item ScoreboardItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return err
		}
		entries, err := TransformScoreboardFromItem(&item)
		if err != nil {
			return err
		}
		coll[item.Key] = entries
		return nil
	})
	if err != nil {
		logging.Log.Errorf("SCOREBOARD: failed to load collection: %v", err)
		return nil, err
	}
	return coll, nil
}

func (s *DynamoScoreboardStorage) scan(ctx context.Context, projection *string, visit func(map[string]types.AttributeValue) error) error {
	paginator := dynamodb.NewScanPaginator(s.Client, &dynamodb.ScanInput{
		TableName:            &s.TableName,
		ProjectionExpression: projection,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, item := range page.Items {
			if err := visit(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *DynamoScoreboardStorage) batchWrite(ctx context.Context, requests []types.WriteRequest) error {
	for i := 0; i < len(requests); i += batchWriteLimit {
		end := min(i+batchWriteLimit, len(requests))
		if err := s.writeBatch(ctx, requests[i:end]); err != nil {
			return err
		}
		logging.Log.Debugf("SCOREBOARD: wrote batch of %d items", end-i)
	}
	return nil
}

// writeBatch resubmits UnprocessedItems until DynamoDB accepts all of them or the
// retry budget runs out.
func (s *DynamoScoreboardStorage) writeBatch(ctx context.Context, batch []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{s.TableName: batch}
	op := func() error {
		out, err := s.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return backoff.Permanent(err)
		}
		if out == nil || len(out.UnprocessedItems) == 0 {
			return nil
		}
		left := 0
		for _, reqs := range out.UnprocessedItems {
			left += len(reqs)
		}
		if left == 0 {
			return nil
		}
		pending = out.UnprocessedItems
		logging.Log.Warnf("SCOREBOARD: %d batch write requests unprocessed, retrying", left)
		return fmt.Errorf("%w: %d of %d", ErrUnprocessedItems, left, len(batch))
	}
	return backoff.Retry(op, backoff.WithContext(newBatchBackOff(), ctx))
}

func copyCollection(coll scoreboard.Collection) scoreboard.Collection {
	out := make(scoreboard.Collection, len(coll))
	for k, v := range coll {
		out[k] = copyEntries(v)
	}
	return out
}

func copyEntries(entries []scoreboard.NormalizedScoreEntry) []scoreboard.NormalizedScoreEntry {
	out := make([]scoreboard.NormalizedScoreEntry, len(entries))
	copy(out, entries)
	return out
}
