package iceberg

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/apache/iceberg-go"
	"github.com/apache/iceberg-go/catalog"
	"github.com/apache/iceberg-go/catalog/rest"
	icebergio "github.com/apache/iceberg-go/io"
	icebergutils "github.com/apache/iceberg-go/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/lakesync/lakesync/config"
	"github.com/lakesync/lakesync/logger"
	"github.com/lakesync/lakesync/types"
)

// Property keys without an iceberg-go io constant; they mirror the catalog's
// fsspec-compatible configuration surface.
const (
	uriKey                   = "uri"
	adlsAccountName          = "adls.account-name"
	adlsAccountKey           = "adls.account-key"
	adlsEndpointSuffix       = "adls.endpoint-suffix"
	gcsProjectID             = "gcs.project-id"
	gcsDefaultBucketLocation = "gcs.default-bucket-location"
	gcsOAuthToken            = "gcs.oauth2.token"
	gcsOAuthTokenExpiresAt   = "gcs.oauth2.token-expires-at"
)

// catalogProperties builds the provider-specific catalog client parameter
// set. Each branch emits exactly the keys its provider needs; a provider
// outside the supported set is a configuration error.
func catalogProperties(ctx context.Context, conn *config.Connection) (iceberg.Properties, error) {
	switch conn.CloudProvider {
	case types.S3:
		if conn.S3 == nil {
			return nil, fmt.Errorf("s3 credentials are not configured")
		}
		return iceberg.Properties{
			uriKey:                      conn.MetastoreURL,
			icebergio.S3AccessKeyID:     conn.S3.AccessKeyID,
			icebergio.S3SecretAccessKey: conn.S3.SecretAccessKey,
			icebergio.S3Region:          conn.S3.Region,
		}, nil
	case types.ABFSS:
		if conn.ABFSS == nil {
			return nil, fmt.Errorf("abfss credentials are not configured")
		}
		return iceberg.Properties{
			uriKey:             conn.MetastoreURL,
			adlsAccountName:    conn.ABFSS.AccountName,
			adlsAccountKey:     conn.ABFSS.AccountKey,
			adlsEndpointSuffix: conn.ABFSS.EndpointSuffix,
		}, nil
	case types.GCS:
		if conn.GCS == nil {
			return nil, fmt.Errorf("gcs credentials are not configured")
		}
		token, err := fetchGCSToken(ctx, conn.GCS.SecretFilePath, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire gcs access token: %s", err)
		}
		expiry := token.Expiry
		if expiry.IsZero() {
			expiry = time.Now().Add(gcsTokenExpiryFallback)
		}
		return iceberg.Properties{
			uriKey:                   conn.MetastoreURL,
			gcsProjectID:             conn.GCS.ProjectID,
			gcsDefaultBucketLocation: conn.WarehousePath,
			gcsOAuthToken:            token.AccessToken,
			gcsOAuthTokenExpiresAt:   strconv.FormatInt(expiry.Unix(), 10),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported cloud provider %q; supported providers are 's3', 'abfss' and 'gcs'", conn.CloudProvider)
	}
}

// newCatalog initializes the REST catalog client for the connection. For s3
// the static AWS credentials are additionally pushed into the context so the
// catalog's file IO picks them up.
func newCatalog(ctx context.Context, conn *config.Connection) (catalog.Catalog, error) {
	props, err := catalogProperties(ctx, conn)
	if err != nil {
		return nil, err
	}

	if conn.CloudProvider == types.S3 {
		staticCreds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(conn.S3.AccessKeyID, conn.S3.SecretAccessKey, ""))
		cfg := aws.Config{
			Region:      conn.S3.Region,
			Credentials: staticCreds,
		}
		ctx = icebergutils.WithAwsConfig(ctx, &cfg)
	}

	logger.Debugf("initializing rest catalog %q at %s", conn.Catalog, conn.MetastoreURL)
	cat, err := rest.NewCatalog(ctx, conn.Catalog, conn.MetastoreURL,
		rest.WithAdditionalProps(props),
		rest.WithWarehouseLocation(conn.WarehousePath),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rest catalog: %s", err)
	}
	return cat, nil
}
