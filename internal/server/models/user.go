// Package models holds the server-side persistence records. The server is
// deliberately blind: item and share payloads are opaque envelopes, so no
// plaintext field of the photo library ever appears here.
package models

// User is one registered account. PasswordHash is a bcrypt hash; the
// password itself authenticates sessions only and never decrypts anything.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte
}
