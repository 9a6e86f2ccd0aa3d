package storage

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollection() scoreboard.Collection {
	return scoreboard.Collection{
		"jury_1": {
			{Country: "Italy", Placement: scoreboard.Marker(scoreboard.MarkerVoter), IsVoter: true},
			{Country: "Sweden", Placement: scoreboard.Rank(1), PointsOverall: 7, PointsGained: 7},
		},
		"televote_1": {
			{Country: "Sweden", Placement: scoreboard.Rank(1), PointsOverall: 19, PointsGained: 12},
		},
	}
}

func storageUnderTest(t *testing.T) map[string]ScoreboardStorage {
	t.Helper()
	logging.Log = logrus.New()
	return map[string]ScoreboardStorage{
		"memory": NewMemoryScoreboardStorage(),
		"dynamo": &DynamoScoreboardStorage{Client: newFakeDynamo(2), TableName: "Scoreboards"},
	}
}

func TestScoreboardStorage(t *testing.T) {
	ctx := context.Background()

	for name, s := range storageUnderTest(t) {
		t.Run(name+" - Happy path - set all then read back", func(t *testing.T) {
			require.NoError(t, s.SetAll(ctx, sampleCollection()))

			entries, err := s.Get(ctx, "jury_1")
			require.NoError(t, err)
			assert.Equal(t, sampleCollection()["jury_1"], entries)

			keys, err := s.Keys(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"jury_1", "televote_1"}, keys)

			keys, err = s.Keys(ctx, "televote_")
			require.NoError(t, err)
			assert.Equal(t, []string{"televote_1"}, keys)

			all, err := s.All(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleCollection(), all)
		})

		t.Run(name+" - Happy path - set all replaces the previous collection", func(t *testing.T) {
			require.NoError(t, s.SetAll(ctx, sampleCollection()))
			require.NoError(t, s.SetAll(ctx, scoreboard.Collection{
				"1": {{Country: "Norway", Placement: scoreboard.Rank(1)}},
			}))

			keys, err := s.Keys(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"1"}, keys)

			_, err = s.Get(ctx, "jury_1")
			assert.ErrorIs(t, err, ErrScoreboardNotFound)
		})

		t.Run(name+" - Happy path - clear empties the store", func(t *testing.T) {
			require.NoError(t, s.SetAll(ctx, sampleCollection()))
			require.NoError(t, s.Clear(ctx))

			keys, err := s.Keys(ctx, "")
			require.NoError(t, err)
			assert.Empty(t, keys)
		})

		t.Run(name+" - Unhappy path - empty collection is refused", func(t *testing.T) {
			require.NoError(t, s.SetAll(ctx, sampleCollection()))

			err := s.SetAll(ctx, scoreboard.Collection{})
			assert.ErrorIs(t, err, ErrEmptyCollection)

			keys, _ := s.Keys(ctx, "")
			assert.Len(t, keys, 2, "previous collection must survive a refused write")
		})
	}
}

func TestMemoryScoreboardStorageCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryScoreboardStorage()
	coll := sampleCollection()
	require.NoError(t, s.SetAll(ctx, coll))

	coll["jury_1"][1].Country = "Mutated"
	entries, err := s.Get(ctx, "jury_1")
	require.NoError(t, err)
	assert.Equal(t, "Sweden", entries[1].Country)

	entries[1].Country = "Mutated"
	again, _ := s.Get(ctx, "jury_1")
	assert.Equal(t, "Sweden", again[1].Country)
}

func TestDynamoScoreboardStorageBatches(t *testing.T) {
	logging.Log = logrus.New()
	client := newFakeDynamo(10)
	s := &DynamoScoreboardStorage{Client: client, TableName: "Scoreboards"}

	coll := make(scoreboard.Collection)
	for i := 1; i <= 60; i++ {
		coll[fmt.Sprint(i)] = []scoreboard.NormalizedScoreEntry{{Country: "Malta", Placement: scoreboard.Rank(i)}}
	}

	require.NoError(t, s.SetAll(context.Background(), coll))

	assert.Equal(t, []int{25, 25, 10}, client.batches)
	keys, err := s.Keys(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, keys, 60)
}

func TestDynamoScoreboardStorageUnprocessedItems(t *testing.T) {
	logging.Log = logrus.New()
	restore := newBatchBackOff
	newBatchBackOff = func() backoff.BackOff { return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 5) }
	t.Cleanup(func() { newBatchBackOff = restore })

	t.Run("Happy path - throttled writes are resubmitted until stored", func(t *testing.T) {
		client := newFakeDynamo(10)
		client.acceptPerCall = 1
		s := &DynamoScoreboardStorage{Client: client, TableName: "Scoreboards"}

		require.NoError(t, s.SetAll(context.Background(), sampleCollection()))

		keys, err := s.Keys(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, sampleCollection().Keys(""), keys)
		assert.Equal(t, []int{2, 1}, client.batches)
	})

	t.Run("Happy path - throttled deletes are resubmitted on replace", func(t *testing.T) {
		client := newFakeDynamo(10)
		s := &DynamoScoreboardStorage{Client: client, TableName: "Scoreboards"}
		require.NoError(t, s.SetAll(context.Background(), sampleCollection()))

		client.acceptPerCall = 1
		replacement := scoreboard.Collection{"7": {{Country: "Malta", Placement: scoreboard.Rank(1)}}}
		require.NoError(t, s.SetAll(context.Background(), replacement))

		keys, err := s.Keys(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"7"}, keys)
	})

	t.Run("Unhappy path - retries exhausted fail the write", func(t *testing.T) {
		client := newFakeDynamo(10)
		client.rejectWrites = true
		s := &DynamoScoreboardStorage{Client: client, TableName: "Scoreboards"}

		err := s.SetAll(context.Background(), sampleCollection())

		require.ErrorIs(t, err, ErrUnprocessedItems)
		assert.Len(t, client.batches, 6)
	})
}

func TestClassify(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryScoreboardStorage()

	c, err := Classify(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, Classification{}, c)

	require.NoError(t, s.SetAll(ctx, sampleCollection()))
	c, err = Classify(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, Classification{HasJuryData: true, HasTelevoteData: true, Total: 2}, c)

	require.NoError(t, s.SetAll(ctx, scoreboard.Collection{"3": nil, "final": nil}))
	c, err = Classify(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, Classification{HasModernData: true, Total: 2}, c)
}

// Runs against localstack when LOCALSTACK_ENDPOINT is set (e.g. http://localhost:4566).
func TestDynamoScoreboardStorageLocalstack(t *testing.T) {
	endpoint := os.Getenv("LOCALSTACK_ENDPOINT")
	if endpoint == "" {
		t.Skip("LOCALSTACK_ENDPOINT not set")
	}
	logging.Log = logrus.New()

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("us-east-1"),
		//nolint:staticcheck
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
			}),
		),
	)
	require.NoError(t, err)
	client := dynamodb.NewFromConfig(cfg)

	_, err = client.CreateTable(context.TODO(), &dynamodb.CreateTableInput{
		TableName:            aws.String("ScoreboardsTest"),
		AttributeDefinitions: []types.AttributeDefinition{{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeS}},
		KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash}},
		BillingMode:          types.BillingModePayPerRequest,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = client.DeleteTable(context.TODO(), &dynamodb.DeleteTableInput{TableName: aws.String("ScoreboardsTest")})
	})

	s := &DynamoScoreboardStorage{Client: client, TableName: "ScoreboardsTest"}
	require.NoError(t, s.SetAll(context.TODO(), sampleCollection()))

	all, err := s.All(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, sampleCollection(), all)
}
