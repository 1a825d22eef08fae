// Package job holds the asynq task handlers for book maintenance. The
// author_name column is a point-in-time snapshot; these tasks are the only
// place it is ever recomputed.
package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"quotebook-backend/internal/domains/book/service"
)

const (
	TypeRefreshAuthorNames = "book:refresh_author_names"
	TypeRefreshOne         = "book:refresh_one"
)

type refreshOnePayload struct {
	BookID uuid.UUID `json:"book_id"`
}

// NewRefreshAuthorNamesTask enqueues a full snapshot recompute.
func NewRefreshAuthorNamesTask() *asynq.Task {
	return asynq.NewTask(TypeRefreshAuthorNames, nil)
}

// NewRefreshOneTask enqueues a recompute for a single book.
func NewRefreshOneTask(bookID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(refreshOnePayload{BookID: bookID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal refresh payload: %w", err)
	}
	return asynq.NewTask(TypeRefreshOne, payload), nil
}

type RefreshHandler struct {
	books service.ServiceInterface
}

func NewRefreshHandler(books service.ServiceInterface) *RefreshHandler {
	return &RefreshHandler{books: books}
}

// HandleRefreshAuthorNames processes TypeRefreshAuthorNames.
func (h *RefreshHandler) HandleRefreshAuthorNames(ctx context.Context, _ *asynq.Task) error {
	updated, err := h.books.RefreshAuthorNames(ctx)
	if err != nil {
		return fmt.Errorf("refresh author names: %w", err)
	}

	log.Info().Int64("updated", updated).Msg("refreshed stale author_name snapshots")
	return nil
}

// HandleRefreshOne processes TypeRefreshOne.
func (h *RefreshHandler) HandleRefreshOne(ctx context.Context, t *asynq.Task) error {
	var payload refreshOnePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal refresh payload: %w", err)
	}

	if err := h.books.RefreshAuthorName(ctx, payload.BookID); err != nil {
		return fmt.Errorf("refresh author name for book %s: %w", payload.BookID, err)
	}

	log.Info().Str("book_id", payload.BookID.String()).Msg("refreshed author_name snapshot")
	return nil
}
