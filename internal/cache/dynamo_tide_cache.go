package cache

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bbernstein/tidecal/internal/config"
	"github.com/bbernstein/tidecal/internal/models"
	"github.com/rs/zerolog/log"
)

// DynamoTideCache stores daily tide aggregates in DynamoDB keyed by
// locationId and date
type DynamoTideCache struct {
	client    DynamoDBClient
	config    *config.CacheConfig
	tableName string
	clock     clock
	backoff   time.Duration
}

func NewDynamoTideCache(client DynamoDBClient, cacheConfig *config.CacheConfig) *DynamoTideCache {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}
	return &DynamoTideCache{
		client:    client,
		config:    cacheConfig,
		tableName: cacheConfig.TideTableName,
		clock:     &systemClock{},
		backoff:   100 * time.Millisecond,
	}
}

// TableExists reports whether the cache table is visible to the client
func (c *DynamoTideCache) TableExists(ctx context.Context) (bool, error) {
	paginator := dynamodb.NewListTablesPaginator(c.client, &dynamodb.ListTablesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return false, fmt.Errorf("listing DynamoDB tables: %w", err)
		}
		for _, name := range page.TableNames {
			if name == c.tableName {
				return true, nil
			}
		}
	}
	return false, nil
}

// GetTide retrieves a cached aggregate. A missing or expired item returns nil
// without error.
func (c *DynamoTideCache) GetTide(ctx context.Context, locationID string, date civil.Date) (*models.Tide, error) {
	dateStr := date.String()

	input := &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"locationId": &types.AttributeValueMemberS{Value: locationID},
			"date":       &types.AttributeValueMemberS{Value: dateStr},
		},
	}

	result, err := c.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("getting tide from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var record models.TideRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling tide record: %w", err)
	}

	if !c.isValid(record) {
		log.Debug().
			Str("location_id", locationID).
			Str("date", dateStr).
			Msg("Cache expired")
		return nil, nil
	}

	tide, err := record.ToTide()
	if err != nil {
		return nil, fmt.Errorf("decoding tide record: %w", err)
	}
	return tide, nil
}

// SaveTide writes a single aggregate
func (c *DynamoTideCache) SaveTide(ctx context.Context, locationID string, tide *models.Tide) error {
	item, err := c.marshalRecord(locationID, tide)
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	}

	if _, err := c.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("putting tide in DynamoDB: %w", err)
	}

	log.Debug().
		Str("location_id", locationID).
		Str("date", tide.Date.String()).
		Msg("Saved tide to cache")

	return nil
}

// SaveTidesBatch writes several aggregates for one location, chunked to the
// configured batch size and retried with exponential backoff
func (c *DynamoTideCache) SaveTidesBatch(ctx context.Context, locationID string, tides []*models.Tide) error {
	items := make([]map[string]types.AttributeValue, 0, len(tides))
	for _, tide := range tides {
		item, err := c.marshalRecord(locationID, tide)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	batchSize := c.config.BatchSize
	if batchSize <= 0 {
		batchSize = 25
	}
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}

		writeRequests := make([]types.WriteRequest, 0, end-i)
		for _, item := range items[i:end] {
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		if err := c.writeBatch(ctx, writeRequests); err != nil {
			return err
		}
	}

	return nil
}

func (c *DynamoTideCache) writeBatch(ctx context.Context, requests []types.WriteRequest) error {
	pending := requests
	var lastErr error
	for retry := 0; retry < c.config.MaxBatchRetries; retry++ {
		if retry > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(1<<(retry-1)) * c.backoff):
			}
		}

		output, err := c.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				c.tableName: pending,
			},
		})
		if err != nil {
			lastErr = err
			continue
		}

		unprocessed := output.UnprocessedItems[c.tableName]
		if len(unprocessed) == 0 {
			return nil
		}
		pending = unprocessed
		lastErr = fmt.Errorf("%d unprocessed items", len(unprocessed))
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no attempts made")
	}
	return fmt.Errorf("batch writing tides after %d retries: %w", c.config.MaxBatchRetries, lastErr)
}

func (c *DynamoTideCache) marshalRecord(locationID string, tide *models.Tide) (map[string]types.AttributeValue, error) {
	if tide == nil {
		return nil, fmt.Errorf("nil tide for location %s", locationID)
	}
	record := models.NewTideRecord(locationID, tide)
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tide record: %w", err)
	}

	now := c.clock.Now().Unix()
	record.LastUpdated = now
	record.TTL = now + int64(c.config.GetDynamoTTL().Seconds())

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("marshaling tide record: %w", err)
	}
	return item, nil
}

func (c *DynamoTideCache) isValid(record models.TideRecord) bool {
	return c.clock.Now().Unix() < record.TTL
}
