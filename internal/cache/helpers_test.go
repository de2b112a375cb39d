package cache

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/bbernstein/tidecal/internal/config"
	"github.com/bbernstein/tidecal/internal/models"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*3600)

// mockClock implements clock interface for testing
type mockClock struct {
	now time.Time
}

func (m *mockClock) Now() time.Time {
	return m.now
}

// Verify mockDynamoDBClient implements DynamoDBClient interface
var _ DynamoDBClient = (*mockDynamoDBClient)(nil)

type mockDynamoDBClient struct {
	getItemFunc        func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	putItemFunc        func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	batchWriteItemFunc func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	listTablesFunc     func(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
}

func (m *mockDynamoDBClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.getItemFunc != nil {
		return m.getItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (m *mockDynamoDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.putItemFunc != nil {
		return m.putItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamoDBClient) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if m.batchWriteItemFunc != nil {
		return m.batchWriteItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func (m *mockDynamoDBClient) ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	if m.listTablesFunc != nil {
		return m.listTablesFunc(ctx, params, optFns...)
	}
	return &dynamodb.ListTablesOutput{}, nil
}

func testCacheConfig() *config.CacheConfig {
	return &config.CacheConfig{
		TideLRUSize:        10,
		TideLRUTTLMinutes:  60,
		TideTableName:      "test-tides",
		TideDynamoTTLDays:  30,
		StationListTTLDays: 7,
		BatchSize:          25,
		MaxBatchRetries:    3,
		EnableLRUCache:     true,
		EnableDynamoCache:  true,
	}
}

// createTestTide builds a neap day with two highs and two lows in JST
func createTestTide(t *testing.T, date civil.Date) *models.Tide {
	t.Helper()
	at := func(hour int) time.Time {
		return time.Date(date.Year, date.Month, date.Day, hour, 0, 0, 0, jst)
	}
	events := []models.TideEvent{
		{Time: at(3), HeightCM: 150, Kind: models.EventHigh},
		{Time: at(9), HeightCM: 50, Kind: models.EventLow},
		{Time: at(15), HeightCM: 160, Kind: models.EventHigh},
		{Time: at(21), HeightCM: 55, Kind: models.EventLow},
	}
	window := &models.PrimeWindow{Start: at(1), End: at(5)}
	tide, err := models.NewTide(date, models.TideNeap, events, window)
	require.NoError(t, err)
	return tide
}

// assertSameTide compares aggregates by instant rather than zone pointer
func assertSameTide(t *testing.T, want, got *models.Tide) {
	t.Helper()
	require.NotNil(t, got)
	require.Equal(t, want.Date, got.Date)
	require.Equal(t, want.Type, got.Type)
	require.Len(t, got.Events, len(want.Events))
	for i := range want.Events {
		require.True(t, want.Events[i].Time.Equal(got.Events[i].Time), "event %d time", i)
		require.Equal(t, want.Events[i].HeightCM, got.Events[i].HeightCM)
		require.Equal(t, want.Events[i].Kind, got.Events[i].Kind)
	}
	if want.PrimeWindow == nil {
		require.Nil(t, got.PrimeWindow)
		return
	}
	require.NotNil(t, got.PrimeWindow)
	require.True(t, want.PrimeWindow.Start.Equal(got.PrimeWindow.Start))
	require.True(t, want.PrimeWindow.End.Equal(got.PrimeWindow.End))
}
