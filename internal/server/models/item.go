package models

// Item is one encrypted envelope stored for a user. Item ids are scoped per
// user: two users both own an item called "library".
type Item struct {
	ID     string
	UserID string
	Nonce  string
	Base64 string
}
