package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxResourceNameLength is the maximum length for resource display
	// names and original filenames. Same bound as folder names.
	MaxResourceNameLength = 255

	// MaxUploadBatchSize is the maximum number of files accepted in a
	// single upload request.
	MaxUploadBatchSize = 50

	// MaxUploadFileBytes is the per-file size cap for uploads. 100 MB
	// covers the media this system manages; anything larger belongs in a
	// dedicated large-file flow.
	MaxUploadFileBytes = 100 << 20
)
