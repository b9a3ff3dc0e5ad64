package items

import (
	"context"
	"errors"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
)

var (
	// ErrNotFound means no item exists with the given id.
	ErrNotFound = errors.New("item not found")
	// ErrVerificationPair is returned when only one of question/answer is
	// supplied; an item carries either both or neither.
	ErrVerificationPair = errors.New("verification question and answer must be set together")
	// ErrInvalidKind is returned for kinds other than lost/found.
	ErrInvalidKind = errors.New("item kind must be lost or found")
)

// Filter narrows List results; zero values mean no constraint.
type Filter struct {
	Kind    string
	Status  string
	OwnerID string
}

// Store holds the item records. Implementations normalize the verification
// answer before persisting it, so the ledger can compare against it directly.
type Store interface {
	Create(ctx context.Context, item models.Item) (models.Item, error)
	Update(ctx context.Context, item models.Item) (models.Item, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (models.Item, error)
	List(ctx context.Context, f Filter) ([]models.Item, error)
}

func validate(item models.Item) error {
	if item.Kind != models.ItemKindLost && item.Kind != models.ItemKindFound {
		return ErrInvalidKind
	}
	if (item.VerificationQuestion == nil) != (item.VerificationAnswer == nil) {
		return ErrVerificationPair
	}
	if item.VerificationQuestion != nil && (*item.VerificationQuestion == "" || *item.VerificationAnswer == "") {
		return ErrVerificationPair
	}
	return nil
}
