package protocol

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/lakesync/lakesync/config"
	driver "github.com/lakesync/lakesync/drivers/mongodb"
	"github.com/lakesync/lakesync/utils"
)

// discoverCmd prints the resolved collection list as JSON.
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "discover command",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		sourceConfig, err := config.MongoFromEnv()
		if err != nil {
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
		if len(collections) == 0 {
			return fmt.Errorf("no collections found")
		}

		encoded, err := json.MarshalIndent(collections, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	},
}
