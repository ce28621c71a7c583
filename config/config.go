package config

import (
	"fmt"
	"strings"

	"github.com/lakesync/lakesync/constants"
	"github.com/lakesync/lakesync/types"
	"github.com/lakesync/lakesync/utils"
)

// Destination carries the general Iceberg sink settings.
type Destination struct {
	CloudProvider types.CloudProvider `json:"cloud_provider" validate:"required"`
	Catalog       string              `json:"catalog" validate:"required"`
	WarehousePath string              `json:"warehouse_path" validate:"required"`
	MetastoreURL  string              `json:"metastore_url" validate:"required"`
	// Table is optional; when empty every collection lands in a table named
	// after itself.
	Table     string          `json:"table"`
	Namespace string          `json:"namespace" validate:"required"`
	WriteMode types.WriteMode `json:"write_mode" validate:"required"`
}

// S3Credentials are the static AWS credentials for the s3 provider.
type S3Credentials struct {
	AccessKeyID     string `json:"aws_access_key_id" validate:"required"`
	SecretAccessKey string `json:"aws_secret_access_key" validate:"required"`
	Region          string `json:"region" validate:"required"`
}

// ABFSSCredentials are the shared-key credentials for the abfss provider.
type ABFSSCredentials struct {
	EndpointSuffix string `json:"azureendpointsuffix" validate:"required"`
	AccountName    string `json:"azurestorageaccountname" validate:"required"`
	AccountKey     string `json:"azurestorageaccountkey" validate:"required"`
}

// GCSCredentials locate the service-account key for the gcs provider.
type GCSCredentials struct {
	ProjectID      string `json:"project_id" validate:"required"`
	SecretFilePath string `json:"secret_file_path" validate:"required"`
}

// Credentials holds exactly one provider's secret set.
type Credentials struct {
	S3    *S3Credentials    `json:"s3,omitempty"`
	ABFSS *ABFSSCredentials `json:"abfss,omitempty"`
	GCS   *GCSCredentials   `json:"gcs,omitempty"`
}

// Connection is the normalized union of destination settings and the selected
// provider's credentials; it is the writer's only input.
type Connection struct {
	Destination
	Credentials
}

// Mongo carries the source connection settings.
type Mongo struct {
	ConnectionURL string   `json:"connection_url" validate:"required"`
	Database      string   `json:"database" validate:"required"`
	Collections   []string `json:"collection_names" validate:"required,min=1,dive,required"`
}

// DestinationFromEnv assembles the general Iceberg destination settings from
// the process environment.
func DestinationFromEnv() (*Destination, error) {
	provider, err := Env(constants.EnvCloudProvider)
	if err != nil {
		return nil, err
	}
	cloudProvider, err := types.ParseCloudProvider(provider)
	if err != nil {
		return nil, err
	}

	catalog, err := Env(constants.EnvCatalog)
	if err != nil {
		return nil, err
	}
	warehousePath, err := Env(constants.EnvWarehousePath)
	if err != nil {
		return nil, err
	}
	metastoreURL, err := Env(constants.EnvMetastoreURL)
	if err != nil {
		return nil, err
	}
	writeMode, err := types.ParseWriteMode(EnvDefault(constants.EnvWriteMode, string(types.Append)))
	if err != nil {
		return nil, err
	}

	destination := &Destination{
		CloudProvider: cloudProvider,
		Catalog:       catalog,
		WarehousePath: warehousePath,
		MetastoreURL:  metastoreURL,
		Table:         EnvDefault(constants.EnvTable, ""),
		Namespace:     EnvDefault(constants.EnvNamespace, constants.DefaultNamespace),
		WriteMode:     writeMode,
	}
	if err := utils.Validate(destination); err != nil {
		return nil, fmt.Errorf("failed to validate destination config: %s", err)
	}
	return destination, nil
}

// CredentialsFromEnv assembles the secret set for exactly the given provider.
func CredentialsFromEnv(provider types.CloudProvider) (*Credentials, error) {
	creds := &Credentials{}

	switch provider {
	case types.S3:
		accessKeyID, err := Env(constants.EnvS3AccessKeyID)
		if err != nil {
			return nil, err
		}
		secretAccessKey, err := Env(constants.EnvS3SecretAccessKey)
		if err != nil {
			return nil, err
		}
		creds.S3 = &S3Credentials{
			AccessKeyID:     accessKeyID,
			SecretAccessKey: secretAccessKey,
			Region:          EnvDefault(constants.EnvS3Region, constants.DefaultRegion),
		}
		return creds, utils.Validate(creds.S3)
	case types.ABFSS:
		endpointSuffix, err := Env(constants.EnvAzureEndpointSuffix)
		if err != nil {
			return nil, err
		}
		accountName, err := Env(constants.EnvAzureAccountName)
		if err != nil {
			return nil, err
		}
		accountKey, err := Env(constants.EnvAzureAccountKey)
		if err != nil {
			return nil, err
		}
		creds.ABFSS = &ABFSSCredentials{
			EndpointSuffix: endpointSuffix,
			AccountName:    accountName,
			AccountKey:     accountKey,
		}
		return creds, utils.Validate(creds.ABFSS)
	case types.GCS:
		projectID, err := Env(constants.EnvGCSProjectID)
		if err != nil {
			return nil, err
		}
		secretFilePath, err := Env(constants.EnvGCSSecretFilePath)
		if err != nil {
			return nil, err
		}
		creds.GCS = &GCSCredentials{
			ProjectID:      projectID,
			SecretFilePath: secretFilePath,
		}
		return creds, utils.Validate(creds.GCS)
	default:
		return nil, fmt.Errorf("unsupported cloud provider %q; supported providers are 's3', 'abfss' and 'gcs'", provider)
	}
}

// ConnectionFromEnv rebuilds the full writer connection from scratch. Called
// once per batch so credential rotation between batches is picked up.
func ConnectionFromEnv() (*Connection, error) {
	destination, err := DestinationFromEnv()
	if err != nil {
		return nil, err
	}
	credentials, err := CredentialsFromEnv(destination.CloudProvider)
	if err != nil {
		return nil, err
	}
	return &Connection{Destination: *destination, Credentials: *credentials}, nil
}

// MongoFromEnv assembles the source settings.
func MongoFromEnv() (*Mongo, error) {
	connectionURL, err := Env(constants.EnvMongoConnectionURL)
	if err != nil {
		return nil, err
	}
	database, err := Env(constants.EnvMongoDatabase)
	if err != nil {
		return nil, err
	}
	collectionNames, err := Env(constants.EnvMongoCollections)
	if err != nil {
		return nil, err
	}

	collections := []string{}
	for _, name := range strings.Split(collectionNames, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			collections = append(collections, trimmed)
		}
	}

	source := &Mongo{
		ConnectionURL: connectionURL,
		Database:      database,
		Collections:   collections,
	}
	if err := utils.Validate(source); err != nil {
		return nil, fmt.Errorf("failed to validate source config: %s", err)
	}
	return source, nil
}
