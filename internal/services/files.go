package services

import (
	"context"

	"github.com/rs/zerolog"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/storage"
)

// ErrStorageNotConfigured is returned by operations that move bytes when
// the service was built without file storage.
var ErrStorageNotConfigured = apperrors.ErrStorageNotConfigured

// purgeFiles removes stored objects whose document rows are already gone.
// A failure leaves an orphaned object behind and is only logged.
func purgeFiles(ctx context.Context, store storage.FileStorage, log zerolog.Logger, files []string) {
	if store == nil {
		return
	}

	for _, ref := range files {
		if err := store.Delete(ctx, ref); err != nil {
			log.Warn().Err(err).Str("file", ref).Msg("Failed to delete stored document")
		}
	}
}
