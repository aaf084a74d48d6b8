package osmgw

import (
	"context"
	"log"

	"trailmap/pkg/utils"
)

// RunInChangeset wraps one logical edit in a changeset: open, mutate, close.
// The close is attempted whenever the open succeeded, even when the mutation
// failed, and a close failure never masks a mutation failure. Callers must
// perform any follow-up work (such as the search-index re-sync) only when
// the returned error is nil.
func RunInChangeset(ctx context.Context, api API, comment string, mutate func(changesetID int64) (int64, error)) (elementID int64, err error) {
	changesetID, openErr := api.OpenChangeset(ctx, comment)
	if openErr != nil {
		log.Printf("Error opening changeset: %v", openErr)
		return 0, utils.ErrChangesetOpenFailed
	}

	defer func() {
		// Close regardless of caller cancellation; an abandoned request
		// must not leave the changeset open.
		closeErr := api.CloseChangeset(context.WithoutCancel(ctx), changesetID)
		if closeErr == nil {
			return
		}
		if err != nil {
			log.Printf("Error closing changeset %d after failed mutation: %v", changesetID, closeErr)
			return
		}
		log.Printf("Error closing changeset %d: %v", changesetID, closeErr)
		err = utils.ErrChangesetCloseFailed
	}()

	elementID, err = mutate(changesetID)
	return elementID, err
}
