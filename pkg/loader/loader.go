package loader

import (
	"context"
)

// DatasetFile points at the people dataset. The actual content is
// retrieved via the associated DatasetLoader, so the same file description
// works for the local filesystem and for object storage.
type DatasetFile struct {
	ID       string
	FilePath string
	Loader   DatasetLoader
}

// NewDatasetFileParams defines the input parameters for creating a new
// DatasetFile.
type NewDatasetFileParams struct {
	ID       string
	FilePath string
	Loader   DatasetLoader
}

// NewDatasetFile creates a DatasetFile. An empty ID defaults to the path.
func NewDatasetFile(params NewDatasetFileParams) DatasetFile {
	id := params.ID
	if id == "" {
		id = params.FilePath
	}
	return DatasetFile{
		ID:       id,
		FilePath: params.FilePath,
		Loader:   params.Loader,
	}
}

// GetBytes retrieves the raw content of the file using its Loader.
//
// Example:
//
//	content, err := file.GetBytes(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
func (f *DatasetFile) GetBytes(ctx context.Context) ([]byte, error) {
	return f.Loader.GetFileBytes(ctx, *f)
}

// DatasetLoader defines the interface for loading the contents of a
// DatasetFile. Implementations may load files from disk, object storage or
// other sources.
type DatasetLoader interface {
	GetFileBytes(ctx context.Context, file DatasetFile) ([]byte, error)
}
