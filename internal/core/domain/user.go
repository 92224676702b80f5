package domain

// TokenPurposeAuth is the only purpose issued today. The purpose tag travels
// inside the signed token and alongside the stored copy, so a future token
// kind (e.g. password reset) can never be replayed as a session credential.
const TokenPurposeAuth = "auth"

// AuthToken is one entry in a user's active token list.
type AuthToken struct {
	Access string `json:"access" bson:"access"`
	Token  string `json:"token" bson:"token"`
}

// User models a registered account. Tokens is append-ordered: the last entry
// is the most recently issued credential, and a user may hold several at once
// (one per logged-in device).
type User struct {
	ID           string      `json:"_id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Tokens       []AuthToken `json:"-"`
}

// HasToken reports whether the exact token string is currently held for the
// given purpose.
func (u *User) HasToken(token, access string) bool {
	for _, t := range u.Tokens {
		if t.Token == token && t.Access == access {
			return true
		}
	}
	return false
}
