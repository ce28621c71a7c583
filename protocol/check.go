package protocol

import (
	"github.com/spf13/cobra"

	"github.com/lakesync/lakesync/config"
	"github.com/lakesync/lakesync/destination/iceberg"
	driver "github.com/lakesync/lakesync/drivers/mongodb"
	"github.com/lakesync/lakesync/logger"
	"github.com/lakesync/lakesync/utils"
)

// checkCmd validates the full env configuration and both connections.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "check command",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		err := utils.ErrExecSequential(
			utils.ErrExecFormat("source check failed: %s", func() error {
				sourceConfig, err := config.MongoFromEnv()
				if err != nil {
					return err
				}
				source := driver.New()
				if err := utils.Unmarshal(sourceConfig, source.GetConfigRef()); err != nil {
					return err
				}
				if err := source.Check(ctx); err != nil {
					return err
				}
				return source.Close(ctx)
			}),
			utils.ErrExecFormat("destination check failed: %s", func() error {
				conn, err := config.ConnectionFromEnv()
				if err != nil {
					return err
				}
				_, err = iceberg.NewWriter(ctx, conn)
				return err
			}),
		)
		if err != nil {
			return err
		}

		logger.Info("connection check passed")
		return nil
	},
}
