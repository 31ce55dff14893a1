package service

import "taskhub/internal/domain"

// Ownership checks gate every task operation. Both checks report a denial
// as domain.ErrNotFound so the response to a cross-tenant probe is
// byte-identical to a miss on a nonexistent id; answering 403 here would
// confirm the resource exists.

// AuthorizePathOwner verifies, before anything is fetched, that the owner
// segment of the request path names the authenticated account.
func AuthorizePathOwner(session *domain.Account, pathUserID string) error {
	if session == nil || session.ID != pathUserID {
		return domain.ErrNotFound
	}
	return nil
}

// AuthorizeResourceOwner verifies that a loaded row actually belongs to the
// authenticated account. Task ids are unique across all owners, so this
// re-check catches a key lookup that crossed a tenant boundary even after
// the path check passed.
func AuthorizeResourceOwner(session *domain.Account, resourceOwnerID string) error {
	if session == nil || session.ID != resourceOwnerID {
		return domain.ErrNotFound
	}
	return nil
}
