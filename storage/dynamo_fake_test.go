package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is a single-table in-memory stand-in that pages scans like DynamoDB does.
type fakeDynamo struct {
	mu       sync.Mutex
	items    map[string]map[string]types.AttributeValue
	pageSize int
	batches  []int
	// acceptPerCall limits how many write requests one BatchWriteItem call applies.
	// The rest come back as UnprocessedItems. Zero applies everything.
	acceptPerCall int
	// rejectWrites returns every write request as unprocessed.
	rejectWrites bool
}

func newFakeDynamo(pageSize int) *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue), pageSize: pageSize}
}

func pkOf(item map[string]types.AttributeValue) string {
	if pk, ok := item["PK"].(*types.AttributeValueMemberS); ok {
		return pk.Value
	}
	return ""
}

func (f *fakeDynamo) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[pkOf(params.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[pkOf(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if params.ExclusiveStartKey != nil {
		after := pkOf(params.ExclusiveStartKey)
		start = sort.SearchStrings(keys, after)
		if start < len(keys) && keys[start] == after {
			start++
		}
	}
	end := min(start+f.pageSize, len(keys))

	out := &dynamodb.ScanOutput{}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, f.items[k])
	}
	if end < len(keys) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"PK": &types.AttributeValueMemberS{Value: keys[end-1]}}
	}
	return out, nil
}

func (f *fakeDynamo) BatchWriteItem(_ context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &dynamodb.BatchWriteItemOutput{}
	for table, requests := range params.RequestItems {
		f.batches = append(f.batches, len(requests))
		accepted := requests
		switch {
		case f.rejectWrites:
			accepted = nil
		case f.acceptPerCall > 0 && len(requests) > f.acceptPerCall:
			accepted = requests[:f.acceptPerCall]
		}
		if rest := requests[len(accepted):]; len(rest) > 0 {
			if out.UnprocessedItems == nil {
				out.UnprocessedItems = make(map[string][]types.WriteRequest)
			}
			out.UnprocessedItems[table] = rest
		}
		for _, r := range accepted {
			switch {
			case r.PutRequest != nil:
				f.items[pkOf(r.PutRequest.Item)] = r.PutRequest.Item
			case r.DeleteRequest != nil:
				delete(f.items, pkOf(r.DeleteRequest.Key))
			}
		}
	}
	return out, nil
}
