package files

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

// Bucket is the storage bucket holding project file attachments.
const Bucket = "project-files"

// ObjectStore is the slice of the storage backend the file service needs.
// The gateway provides the real implementation; tests substitute fakes.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data io.Reader) error
	Remove(ctx context.Context, key string) error
}

// Catalog is the metadata side of the file store.
type Catalog interface {
	Insert(ctx context.Context, file models.ProjectFile) (models.ProjectFile, error)
	Delete(ctx context.Context, projectID, fileID uuid.UUID) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectFile, error)
}

// Service implements project file upload, listing and deletion. Upload and
// delete are two-leg writes against storage and catalog with explicit,
// partial compensation; there is no transaction spanning both.
type Service struct {
	objects ObjectStore
	catalog Catalog
	log     *logrus.Logger
}

// NewService builds a file service over the given storage and catalog.
func NewService(objects ObjectStore, catalog Catalog, log *logrus.Logger) *Service {
	return &Service{objects: objects, catalog: catalog, log: log}
}

// StorageKey derives the object key for a project file deterministically from
// the project id and the original file name. No collision-avoidance suffix is
// appended: re-uploading the same name into the same project hits the
// no-overwrite rule and fails with ErrObjectExists.
func StorageKey(projectID uuid.UUID, name string) string {
	return fmt.Sprintf("%s/%s", projectID.String(), name)
}

// Upload stores the binary and then catalogs it. Requires a signed-in
// identity. If the catalog insert fails after a successful upload, the
// just-uploaded object is deleted before the error is surfaced so no orphaned
// object survives without a catalog entry. The compensation is best effort:
// a failed rollback is logged, not reported.
func (s *Service) Upload(ctx context.Context, ident *gateway.Identity, projectID uuid.UUID, name string, sizeBytes int64, data io.Reader) (models.ProjectFile, error) {
	if ident == nil {
		return models.ProjectFile{}, gateway.ErrNotSignedIn
	}

	key := StorageKey(projectID, name)
	if err := s.objects.Upload(ctx, key, data); err != nil {
		return models.ProjectFile{}, err
	}

	file := models.ProjectFile{
		ProjectID: projectID,
		Name:      name,
		URL:       key,
		SizeBytes: sizeBytes,
		CreatedAt: time.Now(),
	}

	created, err := s.catalog.Insert(ctx, file)
	if err != nil {
		if rbErr := s.objects.Remove(ctx, key); rbErr != nil {
			s.log.WithFields(logrus.Fields{
				"project_id":  projectID.String(),
				"storage_key": key,
				"error":       rbErr.Error(),
			}).Error("Rollback of uploaded object failed; object may be orphaned")
		}
		return models.ProjectFile{}, fmt.Errorf("cataloguing file %s: %w", name, err)
	}

	s.log.WithFields(logrus.Fields{
		"project_id":  projectID.String(),
		"storage_key": key,
		"size_bytes":  sizeBytes,
	}).Info("Project file uploaded")
	return created, nil
}

// List returns the project's files, newest first. Backend errors propagate
// unchanged.
func (s *Service) List(ctx context.Context, projectID uuid.UUID) ([]models.ProjectFile, error) {
	return s.catalog.ListByProject(ctx, projectID)
}

// Delete removes the storage object first and only then the catalog row,
// scoped by both file id and project id to defend against cross-project id
// collisions. If the object delete fails the catalog row is deliberately left
// intact, so this path never produces metadata without a backing object.
func (s *Service) Delete(ctx context.Context, ident *gateway.Identity, projectID, fileID uuid.UUID, key string) error {
	if ident == nil {
		return gateway.ErrNotSignedIn
	}
	if err := s.objects.Remove(ctx, key); err != nil {
		return err
	}
	return s.catalog.Delete(ctx, projectID, fileID)
}
