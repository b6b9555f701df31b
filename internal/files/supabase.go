package files

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

const fileTable = "project_files"

// NewSupabaseService wires a Service to the real gateway-backed storage and
// catalog.
func NewSupabaseService(gw *gateway.Gateway, log *logrus.Logger) *Service {
	return NewService(supabaseObjects{gw: gw}, supabaseCatalog{gw: gw}, log)
}

type supabaseObjects struct {
	gw *gateway.Gateway
}

func (o supabaseObjects) Upload(ctx context.Context, key string, data io.Reader) error {
	return o.gw.UploadObject(ctx, Bucket, key, data)
}

func (o supabaseObjects) Remove(ctx context.Context, key string) error {
	return o.gw.RemoveObject(ctx, Bucket, key)
}

type supabaseCatalog struct {
	gw *gateway.Gateway
}

func (c supabaseCatalog) Insert(ctx context.Context, file models.ProjectFile) (models.ProjectFile, error) {
	// Insert via a map so the database generates the row id.
	row := map[string]interface{}{
		"project_id": file.ProjectID.String(),
		"name":       file.Name,
		"url":        file.URL,
		"size_bytes": file.SizeBytes,
		"created_at": file.CreatedAt,
	}

	body, _, err := c.gw.From(fileTable).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return models.ProjectFile{}, fmt.Errorf("inserting file metadata: %w", err)
	}

	var results []models.ProjectFile
	if err := json.Unmarshal(body, &results); err != nil {
		return models.ProjectFile{}, fmt.Errorf("decoding file metadata response: %w", err)
	}
	if len(results) == 0 {
		return models.ProjectFile{}, fmt.Errorf("no row returned after file metadata insert")
	}
	return results[0], nil
}

func (c supabaseCatalog) Delete(ctx context.Context, projectID, fileID uuid.UUID) error {
	_, _, err := c.gw.From(fileTable).
		Delete("", "").
		Eq("id", fileID.String()).
		Eq("project_id", projectID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("deleting file metadata: %w", err)
	}
	return nil
}

func (c supabaseCatalog) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectFile, error) {
	body, _, err := c.gw.From(fileTable).
		Select("*", "", false).
		Eq("project_id", projectID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing project files: %w", err)
	}

	var results []models.ProjectFile
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decoding project files: %w", err)
	}
	if results == nil {
		results = []models.ProjectFile{}
	}
	return results, nil
}
