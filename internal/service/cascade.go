package service

import (
	"context"

	"github.com/strand-dev/strand/internal/domain"
	internal_errors "github.com/strand-dev/strand/internal/errors"
	"github.com/strand-dev/strand/internal/logger"
)

// Delete removes a thread and its full descendant closure, then pulls the
// removed ids out of affected user and community back-references.
//
// The steps run in a fixed order because there is no cross-collection
// transaction: resolve target, compute closure, bulk-delete threads, then
// clean back-references scoped to the collected author/community ids.
// Once the bulk delete has happened, any later failure is reported as
// CascadeIncompleteError so callers can tell "deleted but dirty" from
// "nothing happened".
func (s *Thread) Delete(ctx context.Context, threadId string, callerExternalId domain.ExternalId) error {
	targetId, err := parseThreadId(threadId)
	if err != nil {
		return err
	}

	caller, err := s.storage.GetUserByExternalId(ctx, callerExternalId)
	if err != nil {
		return err
	}

	target, err := s.storage.GetThreadWithRefs(ctx, targetId)
	if err != nil {
		return err
	}
	if target.Author != caller.Id {
		return internal_errors.Forbidden("Only the author can delete a thread")
	}

	connected, err := s.storage.FindConnected(ctx, targetId)
	if err != nil {
		return err
	}

	ids, authorIds, communityIds, err := closure(target, connected)
	if err != nil {
		return err
	}

	deleted, err := s.storage.DeleteThreads(ctx, ids)
	if err != nil {
		// nothing was removed; plain failure, caller may retry the whole delete
		return err
	}

	incomplete := &internal_errors.CascadeIncompleteError{
		ThreadId: threadId,
		Expected: len(ids),
		Deleted:  deleted,
	}

	// Back-reference cleanup still runs even if the delete count is off;
	// leaving more dangling refs around would only make things worse.
	if _, err := s.storage.PullThreadsFromUsers(ctx, authorIds, ids); err != nil {
		incomplete.Cause = err
		logger.Log.Error("cascade delete left dangling user references", "thread", threadId, "err", err)
		return incomplete
	}
	if _, err := s.storage.PullThreadsFromCommunities(ctx, communityIds, ids); err != nil {
		incomplete.Cause = err
		logger.Log.Error("cascade delete left dangling community references", "thread", threadId, "err", err)
		return incomplete
	}

	if deleted != int64(len(ids)) {
		logger.Log.Error("cascade delete count mismatch", "thread", threadId, "expected", len(ids), "deleted", deleted)
		return incomplete
	}

	logger.Log.Info("thread cascade deleted", "thread", threadId, "removed", deleted)
	return nil
}
