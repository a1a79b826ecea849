package util

// Storage backends accepted by storage.type.
const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	// AttachmentField is the multipart field carrying feedback attachments.
	AttachmentField = "attachments"
)
