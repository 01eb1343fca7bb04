package restclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ousmanedev/boutik/internal/domain/repository"
	"github.com/ousmanedev/boutik/pkg/apperror"
)

// BackupRepository implements repository.BackupRepository over the
// /backup download and /restore multipart upload pair. These are the two
// endpoints that do not speak the JSON envelope.
type BackupRepository struct {
	client *Client
}

// NewBackupRepository creates a backup repository backed by the shared
// client.
func NewBackupRepository(client *Client) *BackupRepository {
	return &BackupRepository{client: client}
}

var _ repository.BackupRepository = (*BackupRepository)(nil)

func (r *BackupRepository) Download(ctx context.Context, w io.Writer) error {
	resp, err := r.client.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get("/backup")
	if err != nil {
		return apperror.NewNetworkError("GET /backup")
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() >= http.StatusBadRequest {
		return apperror.NewAPIError(fmt.Sprintf("backup download failed with status %d", resp.StatusCode()))
	}
	if _, err := io.Copy(w, body); err != nil {
		return apperror.NewNetworkError("GET /backup (stream)")
	}
	return nil
}

func (r *BackupRepository) Restore(ctx context.Context, filename string, file io.Reader) error {
	out := &statusOnly{}
	resp, err := r.client.http.R().
		SetContext(ctx).
		SetFileReader("backup", filename, file).
		SetResult(out).
		SetError(out).
		Post("/restore")
	if err != nil {
		return apperror.NewNetworkError("POST /restore")
	}
	if ok, message := out.status(); !ok {
		if message == "" {
			message = fmt.Sprintf("restore failed with status %d", resp.StatusCode())
		}
		return apperror.NewAPIError(message)
	}
	return nil
}
