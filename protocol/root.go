package protocol

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lakesync/lakesync/constants"
	"github.com/lakesync/lakesync/logger"
	"github.com/lakesync/lakesync/utils"
)

var (
	configFolder string
	batchSize    int64

	commands = []*cobra.Command{}
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "lakesync",
	Short: "root command",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		viper.SetDefault(constants.ConfigFolder, os.TempDir())
		if configFolder != "" {
			viper.Set(constants.ConfigFolder, configFolder)
		}

		// logger uses CONFIG_FOLDER
		logger.Init()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		if ok := utils.IsValidSubcommand(commands, args[0]); !ok {
			return fmt.Errorf("'%s' is an invalid command. Use 'lakesync --help' to display usage guide", args[0])
		}

		return nil
	},
}

func CreateRootCommand() *cobra.Command {
	RootCmd.AddCommand(commands...)
	return RootCmd
}

func init() {
	commands = append(commands, specCmd, checkCmd, discoverCmd, syncCmd)

	RootCmd.PersistentFlags().StringVar(&configFolder, "config-folder", "", "folder for logs and run artifacts")
	RootCmd.PersistentFlags().Int64Var(&batchSize, "batch-size", 1024, "records per destination write")
}
