package types

import "time"

// RawRecord is a single source document together with the metadata the
// connector attaches before writing.
type RawRecord struct {
	Data        Record    `json:"data"`
	ID          string    `json:"id"`
	ExtractedAt time.Time `json:"extracted_at"`
}

func CreateRawRecord(id string, data Record, extractedAt time.Time) RawRecord {
	return RawRecord{
		ID:          id,
		Data:        data,
		ExtractedAt: extractedAt,
	}
}
