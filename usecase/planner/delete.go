package planner

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/studyplanner/domain"
)

// DeletePrompt is the question Presentation shows before deleting.
const DeletePrompt = "Tem certeza que deseja excluir esta atividade?"

// ConfirmationToken identifies one pending delete request.
type ConfirmationToken struct {
	ID         string
	ActivityID domain.ID
	Title      string
}

// RequestDelete starts the two-step delete. Nothing is removed until the
// returned token is passed to ConfirmDelete.
func (r *Repository) RequestDelete(id domain.ID) (ConfirmationToken, error) {
	activity, ok := r.Get(id)
	if !ok {
		return ConfirmationToken{}, domain.ErrActivityNotFound
	}
	token := ConfirmationToken{
		ID:         uuid.NewString(),
		ActivityID: activity.ID,
		Title:      activity.Title,
	}
	r.tokenMu.Lock()
	r.pending[token.ID] = token.ActivityID
	r.tokenMu.Unlock()
	return token, nil
}

// ConfirmDelete consumes the token and deletes the activity it names.
// A token can be used once.
func (r *Repository) ConfirmDelete(ctx context.Context, token ConfirmationToken) error {
	r.tokenMu.Lock()
	id, ok := r.pending[token.ID]
	delete(r.pending, token.ID)
	r.tokenMu.Unlock()
	if !ok {
		return domain.ErrTokenNotFound
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.delete(ctx, id)
}

// CancelDelete drops a pending token; the activity is kept.
func (r *Repository) CancelDelete(token ConfirmationToken) {
	r.tokenMu.Lock()
	delete(r.pending, token.ID)
	r.tokenMu.Unlock()
}
