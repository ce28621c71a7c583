package protocol

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lakesync/lakesync/config"
	"github.com/lakesync/lakesync/constants"
	"github.com/lakesync/lakesync/destination/iceberg"
	driver "github.com/lakesync/lakesync/drivers/mongodb"
	"github.com/lakesync/lakesync/logger"
	"github.com/lakesync/lakesync/types"
	"github.com/lakesync/lakesync/utils"
	"github.com/lakesync/lakesync/utils/safego"
)

// syncCmd runs the pipeline: MongoDB collections stream into Iceberg tables,
// one write per batch.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "sync command",
	Long:  `Sync command initiates the MongoDB reader and routes record batches into the Iceberg destination`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		syncID := uuid.New().String()[:8]
		startTime := time.Now()

		sourceConfig, err := config.MongoFromEnv()
		if err != nil {
			return err
		}
		// fail fast on destination misconfiguration before touching the source
		if _, err := config.ConnectionFromEnv(); err != nil {
			return err
		}

		source := driver.New()
		if err := utils.Unmarshal(sourceConfig, source.GetConfigRef()); err != nil {
			return err
		}
		if err := source.Setup(ctx); err != nil {
			return err
		}
		defer source.Close(ctx)

		collections, err := source.Discover(ctx)
		if err != nil {
			return err
		}

		for _, collection := range collections {
			if err := syncCollection(ctx, source, collection); err != nil {
				return fmt.Errorf("failed to sync collection %q: %s", collection, err)
			}
		}

		logger.Infof("[%s] sync finished in %v", syncID, time.Since(startTime))
		return nil
	},
}

// syncCollection streams one collection through a bounded channel and flushes
// a batch at a time into the destination.
func syncCollection(ctx context.Context, source *driver.Mongo, collection string) error {
	group, groupCtx := errgroup.WithContext(ctx)
	records := make(chan types.RawRecord, batchSize)

	group.Go(func() error {
		defer safego.Recovery(false)
		defer safego.Close(records)
		return source.Read(groupCtx, collection, records)
	})

	group.Go(func() error {
		defer safego.Recovery(false)

		batch := make([]types.Record, 0, batchSize)
		batchIndex := 0
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			if err := writeBatch(groupCtx, collection, batch, batchIndex); err != nil {
				return err
			}
			batchIndex++
			batch = batch[:0]
			return nil
		}

		for record := range records {
			record.Data[constants.LakesyncID] = record.ID
			record.Data[constants.LakesyncTimestamp] = record.ExtractedAt
			batch = append(batch, record.Data)
			if int64(len(batch)) >= batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		return flush()
	})

	return group.Wait()
}

// writeBatch re-derives configuration and credentials, builds a fresh writer
// and performs exactly one write. Rebuilding per batch picks up credential
// rotation mid-run.
func writeBatch(ctx context.Context, collection string, batch []types.Record, batchIndex int) error {
	conn, err := config.ConnectionFromEnv()
	if err != nil {
		return err
	}

	writer, err := iceberg.NewWriter(ctx, conn)
	if err != nil {
		return err
	}

	data, err := iceberg.RecordsToArrow(batch)
	if err != nil {
		return err
	}
	defer data.Release()

	tableName := utils.Ternary(conn.Table != "", conn.Table, collection).(string)
	destination := fmt.Sprintf("%s.%s", conn.Namespace, tableName)

	// overwrite replaces the table once; later batches of the same run append
	mode := conn.WriteMode
	if mode == types.Overwrite && batchIndex > 0 {
		mode = types.Append
	}

	return writer.Write(ctx, data, destination, mode)
}
