package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// All readings share one partition; the sort key orders them by time.
	partitionKey = "ISS"

	// sortKeyLayout is fixed width so lexical order equals time order
	sortKeyLayout = "2006-01-02T15:04:05.000000000Z"

	queryPageSize = 100
)

// DynamoDBAPI is the part of the DynamoDB client the store uses
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// locationItem is the DynamoDB item layout
type locationItem struct {
	PK           string  `dynamodbav:"pk"`
	SK           string  `dynamodbav:"sk"`
	ID           string  `dynamodbav:"id"`
	Timestamp    string  `dynamodbav:"timestamp"`
	Latitude     float64 `dynamodbav:"latitude"`
	Longitude    float64 `dynamodbav:"longitude"`
	LocationName string  `dynamodbav:"location_name"`
	Country      string  `dynamodbav:"country,omitempty"`
	CountryCode  string  `dynamodbav:"country_code,omitempty"`
	OverWater    bool    `dynamodbav:"over_water"`
	Timezone     string  `dynamodbav:"timezone,omitempty"`
	RawGeocoder  string  `dynamodbav:"raw_geocoder,omitempty"`
	StoredAt     string  `dynamodbav:"stored_at"`
}

// DynamoDBStore implements Store on a DynamoDB table keyed by (pk, sk)
type DynamoDBStore struct {
	client    DynamoDBAPI
	tableName string
	ids       *idSource
	now       func() time.Time
	logger    *slog.Logger
}

// NewDynamoDBStore creates a DynamoDB-backed history store
func NewDynamoDBStore(client DynamoDBAPI, tableName string, logger *slog.Logger) *DynamoDBStore {
	return &DynamoDBStore{
		client:    client,
		tableName: tableName,
		ids:       newIDSource(),
		now:       time.Now,
		logger:    logger.With("component", "history-dynamodb"),
	}
}

func sortKey(ts time.Time, id string) string {
	return ts.UTC().Format(sortKeyLayout) + "#" + id
}

func itemFromRecord(rec types.HistoryRecord) locationItem {
	return locationItem{
		PK:           partitionKey,
		SK:           sortKey(rec.Timestamp, rec.ID),
		ID:           rec.ID,
		Timestamp:    rec.Timestamp.UTC().Format(time.RFC3339Nano),
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		LocationName: rec.Details.LocationName,
		Country:      rec.Details.Country,
		CountryCode:  rec.Details.CountryCode,
		OverWater:    rec.Details.OverWater,
		Timezone:     rec.Timezone,
		RawGeocoder:  string(rec.Details.Raw),
		StoredAt:     rec.StoredAt.UTC().Format(time.RFC3339Nano),
	}
}

func recordFromItem(item locationItem) (types.HistoryRecord, error) {
	ts, err := time.Parse(time.RFC3339Nano, item.Timestamp)
	if err != nil {
		return types.HistoryRecord{}, fmt.Errorf("invalid timestamp %q: %w", item.Timestamp, err)
	}
	storedAt, err := time.Parse(time.RFC3339Nano, item.StoredAt)
	if err != nil {
		return types.HistoryRecord{}, fmt.Errorf("invalid stored_at %q: %w", item.StoredAt, err)
	}

	rec := types.HistoryRecord{
		ID: item.ID,
		EnrichedLocation: types.EnrichedLocation{
			LocationReading: types.NewLocationReading(ts, item.Latitude, item.Longitude),
			Details: types.LocationDetails{
				LocationName: item.LocationName,
				Country:      item.Country,
				CountryCode:  item.CountryCode,
				OverWater:    item.OverWater,
			},
			Timezone: item.Timezone,
		},
		StoredAt: storedAt.UTC(),
	}
	if item.RawGeocoder != "" {
		rec.Details.Raw = json.RawMessage(item.RawGeocoder)
	}
	return rec, nil
}

func (s *DynamoDBStore) Append(ctx context.Context, loc types.EnrichedLocation) (*types.HistoryRecord, error) {
	rec := newRecord(s.ids, loc, s.now())

	item, err := attributevalue.MarshalMap(itemFromRecord(rec))
	if err != nil {
		return nil, apperr.Persistence("Failed to store location", fmt.Errorf("failed to marshal location: %w", err))
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		s.logger.Error("failed to save location to DynamoDB", "id", rec.ID, "error", err)
		return nil, apperr.Persistence("Failed to store location", fmt.Errorf("failed to save location to DynamoDB: %w", err))
	}

	s.logger.Debug("location saved to DynamoDB", "id", rec.ID, "sk", sortKey(rec.Timestamp, rec.ID))
	return &rec, nil
}

func (s *DynamoDBStore) Latest(ctx context.Context) (*types.HistoryRecord, error) {
	var found *types.HistoryRecord
	err := s.scanDescending(ctx, time.Time{}, time.Time{}, 1, func(rec types.HistoryRecord) bool {
		found = &rec
		return false
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (s *DynamoDBStore) LatestOver(ctx context.Context, country string) (*types.HistoryRecord, error) {
	m := newCountryMatcher(country)
	if m.empty() {
		return nil, ErrNotFound
	}

	var found *types.HistoryRecord
	err := s.scanDescending(ctx, time.Time{}, time.Time{}, queryPageSize, func(rec types.HistoryRecord) bool {
		if m.matches(rec.Details.CountryCode, rec.Details.Country) {
			found = &rec
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Query reads the time window from the table and applies the remaining
// constraints, ordering and limit in memory.
func (s *DynamoDBStore) Query(ctx context.Context, filter Filter) ([]types.HistoryRecord, error) {
	f, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	byTime := f.OrderBy == OrderTimestamp
	records := []types.HistoryRecord{}
	err = s.scanDescending(ctx, f.Start, f.End, queryPageSize, func(rec types.HistoryRecord) bool {
		if !f.Matches(rec) {
			return true
		}
		records = append(records, rec)
		// Newest-first reads can stop early when no reordering is needed
		return !(byTime && f.Direction == Descending && len(records) >= f.Limit)
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return f.Less(records[i], records[j])
	})
	if len(records) > f.Limit {
		records = records[:f.Limit]
	}
	return records, nil
}

func (s *DynamoDBStore) Close() error {
	return nil
}

// scanDescending pages through the partition newest first, calling visit for
// each record until it returns false.
func (s *DynamoDBStore) scanDescending(ctx context.Context, start, end time.Time, pageSize int32, visit func(types.HistoryRecord) bool) error {
	keyCondition := "pk = :pk"
	values := map[string]dynamodbtypes.AttributeValue{
		":pk": &dynamodbtypes.AttributeValueMemberS{Value: partitionKey},
	}
	if !start.IsZero() || !end.IsZero() {
		lower := "0"
		upper := "~"
		if !start.IsZero() {
			lower = start.UTC().Format(sortKeyLayout)
		}
		if !end.IsZero() {
			// "~" sorts after "#" and every ULID character
			upper = end.UTC().Format(sortKeyLayout) + "~"
		}
		keyCondition += " AND sk BETWEEN :lower AND :upper"
		values[":lower"] = &dynamodbtypes.AttributeValueMemberS{Value: lower}
		values[":upper"] = &dynamodbtypes.AttributeValueMemberS{Value: upper}
	}

	var lastEvaluatedKey map[string]dynamodbtypes.AttributeValue
	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			KeyConditionExpression:    aws.String(keyCondition),
			ExpressionAttributeValues: values,
			ScanIndexForward:          aws.Bool(false),
			Limit:                     aws.Int32(pageSize),
		}
		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := s.client.Query(ctx, input)
		if err != nil {
			s.logger.Error("failed to query locations", "error", err)
			return apperr.Persistence("Failed to read location history", fmt.Errorf("failed to query locations: %w", err))
		}

		for _, raw := range result.Items {
			var item locationItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				s.logger.Warn("failed to unmarshal location", "error", err)
				continue
			}
			rec, err := recordFromItem(item)
			if err != nil {
				s.logger.Warn("skipping malformed location", "id", item.ID, "error", err)
				continue
			}
			if !visit(rec) {
				return nil
			}
		}

		lastEvaluatedKey = result.LastEvaluatedKey
		if len(lastEvaluatedKey) == 0 {
			return nil
		}
	}
}
