package constants

const (
	MongoPrimaryID    = "_id"
	LakesyncID        = "_lakesync_id"
	LakesyncTimestamp = "_lakesync_extracted_at"

	ConfigFolder = "CONFIG_FOLDER"

	DefaultNamespace = "default"
	DefaultRegion    = "ap-south-1"
)

// Environment variable contract. These are the only external inputs of
// the connector; everything else is derived per run.
const (
	EnvCloudProvider = "DESTINATION__ICEBERG__CONFIG__CLOUD_PROVIDER"
	EnvCatalog       = "DESTINATION__ICEBERG__CONFIG__CATALOG"
	EnvWarehousePath = "DESTINATION__ICEBERG__CONFIG__WAREHOUSE_PATH"
	EnvMetastoreURL  = "DESTINATION__ICEBERG__CONFIG__METASTORE_URL"
	EnvTable         = "DESTINATION__ICEBERG__CONFIG__TABLE"
	EnvNamespace     = "DESTINATION__ICEBERG__CONFIG__NAMESPACE"
	EnvWriteMode     = "DESTINATION__ICEBERG__CONFIG__WRITE_MODE"

	EnvS3AccessKeyID     = "S3__CREDENTIALS__AWS_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "S3__CREDENTIALS__AWS_SECRET_ACCESS_KEY"
	EnvS3Region          = "S3__CREDENTIALS__REGION"

	EnvAzureEndpointSuffix = "ABFSS__CREDENTIALS__AZUREENDPOINTSUFFIX"
	EnvAzureAccountName    = "ABFSS__CREDENTIALS__AZURESTORAGEACCOUNTNAME"
	EnvAzureAccountKey     = "ABFSS__CREDENTIALS__AZURESTORAGEACCOUNTKEY"

	EnvGCSProjectID      = "GCS__CREDENTIALS__PROJECT_ID"
	EnvGCSSecretFilePath = "GCS__CREDENTIALS__SECRET_FILE_PATH"

	EnvMongoConnectionURL = "SOURCES__MONGODB__CONNECTION_URL"
	EnvMongoDatabase      = "SOURCES__MONGODB__DATABASE"
	EnvMongoCollections   = "SOURCES__MONGODB__COLLECTION_NAMES"
)
