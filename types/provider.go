package types

import "fmt"

// CloudProvider is the closed set of object stores the Iceberg destination
// can talk to. Anything outside the set is rejected at config time.
type CloudProvider string

const (
	S3    CloudProvider = "s3"
	ABFSS CloudProvider = "abfss"
	GCS   CloudProvider = "gcs"
)

func ParseCloudProvider(value string) (CloudProvider, error) {
	switch CloudProvider(value) {
	case S3, ABFSS, GCS:
		return CloudProvider(value), nil
	default:
		return "", fmt.Errorf("unsupported cloud provider %q; supported providers are 's3', 'abfss' and 'gcs'", value)
	}
}

func (p *CloudProvider) UnmarshalText(text []byte) error {
	parsed, err := ParseCloudProvider(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p CloudProvider) String() string {
	return string(p)
}

// WriteMode controls how a batch lands in the destination table.
type WriteMode string

const (
	Append    WriteMode = "append"
	Overwrite WriteMode = "overwrite"
)

func ParseWriteMode(value string) (WriteMode, error) {
	switch WriteMode(value) {
	case Append, Overwrite:
		return WriteMode(value), nil
	default:
		return "", fmt.Errorf("unsupported write mode %q; supported modes are 'append' and 'overwrite'", value)
	}
}

func (m *WriteMode) UnmarshalText(text []byte) error {
	parsed, err := ParseWriteMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m WriteMode) String() string {
	return string(m)
}
