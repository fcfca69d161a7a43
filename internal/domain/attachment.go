package domain

// Attachment is a stored file attached to every email of an execution. Data
// holds the object bytes, fetched from storage at dispatch time and never
// persisted with the record.
type Attachment struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	StorageBucket string  `json:"storage_bucket"`
	StoragePath   string  `json:"storage_path"`
	FileType      *string `json:"file_type"`
	Data          []byte  `json:"-"`
}

// ContentType returns the declared MIME type, defaulting to a generic binary
// type the way ESPs expect.
func (a *Attachment) ContentType() string {
	if a.FileType != nil && *a.FileType != "" {
		return *a.FileType
	}
	return "application/octet-stream"
}
