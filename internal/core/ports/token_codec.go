package ports

// TokenCodec signs and verifies the opaque credential binding a user id to a
// token purpose. It is stateless; revocation lives in the user's stored token
// list, not here.
type TokenCodec interface {
	Issue(userID, purpose string) (string, error)
	// Verify returns the embedded user id and purpose, or
	// domain.ErrInvalidSignature on any structural or cryptographic mismatch.
	Verify(token string) (userID, purpose string, err error)
}
