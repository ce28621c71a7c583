package iceberg

import (
	"context"
	"strconv"
	"testing"
	"time"

	icebergio "github.com/apache/iceberg-go/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/lakesync/lakesync/config"
	"github.com/lakesync/lakesync/types"
)

func testConnection(provider types.CloudProvider) *config.Connection {
	conn := &config.Connection{
		Destination: config.Destination{
			CloudProvider: provider,
			Catalog:       "iceberg_catalog",
			WarehousePath: "s3://warehouse/lake",
			MetastoreURL:  "http://metastore:8181",
			Namespace:     "analytics",
			WriteMode:     types.Append,
		},
	}
	switch provider {
	case types.S3:
		conn.S3 = &config.S3Credentials{
			AccessKeyID:     "AKIA_TEST",
			SecretAccessKey: "secret",
			Region:          "ap-south-1",
		}
	case types.ABFSS:
		conn.ABFSS = &config.ABFSSCredentials{
			EndpointSuffix: "core.windows.net",
			AccountName:    "lakestore",
			AccountKey:     "key==",
		}
	case types.GCS:
		conn.GCS = &config.GCSCredentials{
			ProjectID:      "lake-project",
			SecretFilePath: "/secrets/sa.json",
		}
	}
	return conn
}

func stubGCSToken(t *testing.T, token *oauth2.Token, err error) {
	t.Helper()
	original := fetchGCSToken
	fetchGCSToken = func(_ context.Context, _ string, _ []string) (*oauth2.Token, error) {
		return token, err
	}
	t.Cleanup(func() { fetchGCSToken = original })
}

func TestCatalogPropertiesS3(t *testing.T) {
	props, err := catalogProperties(context.Background(), testConnection(types.S3))
	require.NoError(t, err)

	expected := map[string]string{
		"uri":                       "http://metastore:8181",
		icebergio.S3AccessKeyID:     "AKIA_TEST",
		icebergio.S3SecretAccessKey: "secret",
		icebergio.S3Region:          "ap-south-1",
	}
	assert.Equal(t, len(expected), len(props), "s3 props must contain exactly the s3 keys")
	for key, value := range expected {
		assert.Equal(t, value, props[key], "key %s", key)
	}
}

func TestCatalogPropertiesABFSS(t *testing.T) {
	props, err := catalogProperties(context.Background(), testConnection(types.ABFSS))
	require.NoError(t, err)

	expected := map[string]string{
		"uri":              "http://metastore:8181",
		adlsAccountName:    "lakestore",
		adlsAccountKey:     "key==",
		adlsEndpointSuffix: "core.windows.net",
	}
	assert.Equal(t, len(expected), len(props), "abfss props must contain exactly the abfss keys")
	for key, value := range expected {
		assert.Equal(t, value, props[key], "key %s", key)
	}
}

func TestCatalogPropertiesGCS(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	stubGCSToken(t, &oauth2.Token{AccessToken: "short-lived-token", Expiry: expiry}, nil)

	props, err := catalogProperties(context.Background(), testConnection(types.GCS))
	require.NoError(t, err)

	expected := map[string]string{
		"uri":                    "http://metastore:8181",
		gcsProjectID:             "lake-project",
		gcsDefaultBucketLocation: "s3://warehouse/lake",
		gcsOAuthToken:            "short-lived-token",
		gcsOAuthTokenExpiresAt:   strconv.FormatInt(expiry.Unix(), 10),
	}
	assert.Equal(t, len(expected), len(props), "gcs props must contain exactly the gcs keys")
	for key, value := range expected {
		assert.Equal(t, value, props[key], "key %s", key)
	}
}

func TestCatalogPropertiesGCSExpiryFallback(t *testing.T) {
	stubGCSToken(t, &oauth2.Token{AccessToken: "short-lived-token"}, nil)

	before := time.Now().Add(gcsTokenExpiryFallback).Unix()
	props, err := catalogProperties(context.Background(), testConnection(types.GCS))
	require.NoError(t, err)
	after := time.Now().Add(gcsTokenExpiryFallback).Unix()

	expiresAt, err := strconv.ParseInt(props[gcsOAuthTokenExpiresAt], 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, expiresAt, before)
	assert.LessOrEqual(t, expiresAt, after)
}

func TestCatalogPropertiesUnsupportedProvider(t *testing.T) {
	conn := testConnection(types.S3)
	conn.CloudProvider = types.CloudProvider("azure")

	_, err := catalogProperties(context.Background(), conn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported cloud provider")
}

func TestCatalogPropertiesMissingCredentialSet(t *testing.T) {
	conn := testConnection(types.S3)
	conn.S3 = nil

	_, err := catalogProperties(context.Background(), conn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3 credentials are not configured")
}
