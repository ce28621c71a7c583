package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCloudProvider(t *testing.T) {
	for _, valid := range []string{"s3", "abfss", "gcs"} {
		provider, err := ParseCloudProvider(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, provider.String())
	}

	for _, invalid := range []string{"", "azure", "S3", "minio"} {
		_, err := ParseCloudProvider(invalid)
		require.Error(t, err, "provider %q should be rejected", invalid)
		assert.Contains(t, err.Error(), "unsupported cloud provider")
	}
}

func TestCloudProviderUnmarshalText(t *testing.T) {
	var provider CloudProvider
	require.NoError(t, provider.UnmarshalText([]byte("abfss")))
	assert.Equal(t, ABFSS, provider)

	require.Error(t, provider.UnmarshalText([]byte("ftp")))
}

func TestParseWriteMode(t *testing.T) {
	for _, valid := range []string{"append", "overwrite"} {
		mode, err := ParseWriteMode(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, mode.String())
	}

	for _, invalid := range []string{"", "upsert", "merge", "Append"} {
		_, err := ParseWriteMode(invalid)
		require.Error(t, err, "mode %q should be rejected", invalid)
		assert.Contains(t, err.Error(), "unsupported write mode")
	}
}
