package protocol

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/lakesync/lakesync/constants"
)

type envSpec struct {
	Required bool   `json:"required"`
	Default  string `json:"default,omitempty"`
	About    string `json:"about"`
}

// specCmd prints the environment-variable contract of the connector.
var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "spec command",
	RunE: func(_ *cobra.Command, _ []string) error {
		spec := map[string]envSpec{
			constants.EnvCloudProvider:       {Required: true, About: "target object store: s3 | abfss | gcs"},
			constants.EnvCatalog:             {Required: true, About: "iceberg catalog name"},
			constants.EnvWarehousePath:       {Required: true, About: "warehouse root location"},
			constants.EnvMetastoreURL:        {Required: true, About: "rest catalog endpoint"},
			constants.EnvTable:               {Required: false, About: "destination table; defaults to the collection name"},
			constants.EnvNamespace:           {Required: false, Default: constants.DefaultNamespace, About: "destination namespace"},
			constants.EnvWriteMode:           {Required: false, Default: "append", About: "append | overwrite (first batch only)"},
			constants.EnvS3AccessKeyID:       {Required: true, About: "aws access key id (provider s3)"},
			constants.EnvS3SecretAccessKey:   {Required: true, About: "aws secret access key (provider s3)"},
			constants.EnvS3Region:            {Required: false, Default: constants.DefaultRegion, About: "aws region (provider s3)"},
			constants.EnvAzureEndpointSuffix: {Required: true, About: "azure endpoint suffix (provider abfss)"},
			constants.EnvAzureAccountName:    {Required: true, About: "azure storage account name (provider abfss)"},
			constants.EnvAzureAccountKey:     {Required: true, About: "azure storage account key (provider abfss)"},
			constants.EnvGCSProjectID:        {Required: true, About: "gcp project id (provider gcs)"},
			constants.EnvGCSSecretFilePath:   {Required: true, About: "service account key file path (provider gcs)"},
			constants.EnvMongoConnectionURL:  {Required: true, About: "mongodb connection string"},
			constants.EnvMongoDatabase:       {Required: true, About: "mongodb database"},
			constants.EnvMongoCollections:    {Required: true, About: "comma-separated collection names"},
		}

		encoded, err := json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	},
}
