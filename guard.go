package blog

import "github.com/goliatone/go-errors"

// AuthorizeMutation allows a mutation only when the caller owns the record.
// Callers run this after the load step so a missing record reports 404
// before ownership is ever considered.
func AuthorizeMutation(caller Identity, ownerID int64) error {
	if caller.ID != ownerID {
		return errors.New("caller does not own this resource", errors.CategoryAuthz).
			WithCode(errors.CodeForbidden).
			WithMetadata(map[string]any{
				"caller_id": caller.ID,
				"owner_id":  ownerID,
			})
	}
	return nil
}

// AuthorizeReplyParent rejects a reply addressed through the wrong board,
// even when the caller owns the reply itself.
func AuthorizeReplyParent(reply *Reply, boardID int64) error {
	if reply == nil || reply.BoardID != boardID {
		return errors.New("reply does not belong to the given board", errors.CategoryAuthz).
			WithCode(errors.CodeForbidden).
			WithMetadata(map[string]any{
				"board_id": boardID,
			})
	}
	return nil
}
