package cart

import "gorm.io/gorm"

// Identity scopes every cart operation to its owner: a logged-in user or an
// anonymous guest session. Exactly one field is set.
type Identity struct {
	UserID       string
	SessionToken string
}

func UserIdentity(userID string) Identity {
	return Identity{UserID: userID}
}

func GuestIdentity(token string) Identity {
	return Identity{SessionToken: token}
}

func (id Identity) valid() bool {
	return (id.UserID != "") != (id.SessionToken != "")
}

// scopeCarts narrows a carts query to this identity's active cart. The table
// prefix lets the same clause serve joined line-item lookups.
func (id Identity) scopeCarts(q *gorm.DB, prefix string) *gorm.DB {
	q = q.Where(prefix+"is_active = ?", true)
	if id.UserID != "" {
		return q.Where(prefix+"user_id = ?", id.UserID)
	}
	return q.Where(prefix+"session_token = ?", id.SessionToken)
}
