package entities

import (
	"context"
	"io"
)

// FilesClient manages files attached to a project
type FilesClient struct {
	core *core
}

// filesEntity scopes cache keys to one project's files
func filesEntity(projectID string) string {
	return "projects/" + projectID + "/files"
}

// List fetches a project's files, degrading to an empty list on backend
// failure.
func (f *FilesClient) List(ctx context.Context, projectID string) ([]ProjectFile, error) {
	entity := filesEntity(projectID)
	var files []ProjectFile
	if err := f.core.get(ctx, entity, "", nil, "/projects/"+projectID+"/files", &files); err != nil {
		if !f.core.degradeList(entity, err) {
			return nil, err
		}
		return []ProjectFile{}, nil
	}
	return files, nil
}

// Upload attaches a file to the project via multipart upload
func (f *FilesClient) Upload(ctx context.Context, projectID, fileName string, r io.Reader) (*ProjectFile, error) {
	var file ProjectFile
	if err := f.core.upload(ctx, filesEntity(projectID), "/projects/"+projectID+"/files", "file", fileName, r, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// Delete removes a file from the project
func (f *FilesClient) Delete(ctx context.Context, projectID, fileID string) error {
	return f.core.remove(ctx, filesEntity(projectID), fileID, "/projects/"+projectID+"/files/"+fileID)
}
