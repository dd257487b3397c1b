package models

// Viewer is the identity of the current session, resolved from the signed
// session token the Discord bridge issues after OAuth. It is not a database
// model: Discord is the identity source and nothing about users is persisted
// here. Viewer is passed explicitly wherever identity matters rather than
// held in any global session state.
type Viewer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	// IsOwner is the elevated moderation role ("server owner"). It grants
	// hide rights over any listing or image regardless of listing ownership.
	IsOwner bool `json:"is_owner"`
}

// Anonymous reports whether the session has not been resolved to a user
func (v Viewer) Anonymous() bool {
	return v.ID == ""
}
