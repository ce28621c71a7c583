package driver

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"

	"github.com/lakesync/lakesync/constants"
	"github.com/lakesync/lakesync/logger"
	"github.com/lakesync/lakesync/types"
)

type Mongo struct {
	config *Config
	client *mongo.Client
}

func New() *Mongo {
	return &Mongo{}
}

// config reference; must be pointer
func (m *Mongo) GetConfigRef() any {
	m.config = &Config{}
	return m.config
}

func (m *Mongo) Spec() any {
	return Config{}
}

func (m *Mongo) Type() string {
	return "MongoDB"
}

func (m *Mongo) Check(ctx context.Context) error {
	if err := m.config.Validate(); err != nil {
		return fmt.Errorf("failed to validate source config: %s", err)
	}

	opts := options.Client()
	opts.ApplyURI(m.config.ConnectionURL)
	opts.SetCompressors([]string{"snappy"})
	opts.SetMaxPoolSize(m.config.MaxPoolSize)
	conn, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}

	m.client = conn
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	return conn.Ping(pingCtx, opts.ReadPreference)
}

func (m *Mongo) Setup(ctx context.Context) error {
	return m.Check(ctx)
}

func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// Discover lists the database's non-view collections intersected with the
// configured collection names; a configured name that doesn't exist is fatal.
func (m *Mongo) Discover(ctx context.Context) ([]string, error) {
	discoverCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	database := m.client.Database(m.config.Database)
	cursor, err := database.ListCollections(discoverCtx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(discoverCtx)

	available := map[string]bool{}
	for cursor.Next(discoverCtx) {
		var collectionInfo bson.M
		if err := cursor.Decode(&collectionInfo); err != nil {
			return nil, fmt.Errorf("failed to decode collection: %s", err)
		}
		if collectionType, ok := collectionInfo["type"].(string); ok && collectionType == "view" {
			logger.Debugf("skipping view %s", collectionInfo["name"])
			continue
		}
		available[collectionInfo["name"].(string)] = true
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	collections := []string{}
	for _, name := range m.config.Collections {
		if !available[name] {
			return nil, fmt.Errorf("collection %q not found in database %q", name, m.config.Database)
		}
		collections = append(collections, name)
	}

	return collections, nil
}

// Read scans the collection end to end, sanitizes each document and pushes it
// into channel. The channel is closed by the caller.
func (m *Mongo) Read(ctx context.Context, collectionName string, channel chan<- types.RawRecord) error {
	collection := m.client.
		Database(m.config.Database, options.Database().SetReadConcern(readconcern.Majority())).
		Collection(collectionName)

	opts := options.Find().SetBatchSize(m.config.BatchSize)
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("failed to create cursor on collection %q: %s", collectionName, err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var doc bson.M
		if _, err = cursor.Current.LookupErr(constants.MongoPrimaryID); err != nil {
			return fmt.Errorf("looking up idProperty: %s", err)
		} else if err = cursor.Decode(&doc); err != nil {
			return fmt.Errorf("failed to decode document: %s", err)
		}

		filterMongoObject(doc)
		record := types.CreateRawRecord(
			fmt.Sprintf("%v", doc[constants.MongoPrimaryID]),
			types.Record(doc),
			time.Now().UTC(),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case channel <- record:
		}
		count++
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	logger.Infof("read %d documents from collection %s", count, collectionName)
	return nil
}
