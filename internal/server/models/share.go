package models

// Share is a published share record: the encrypted share envelope, a bcrypt
// hash of the share password and the set of item and blob ids a grant for
// this share unlocks.
type Share struct {
	ID           string
	UserID       string
	PasswordHash []byte
	Nonce        string
	Base64       string
	ItemIDs      []string
}

// Accessible reports whether the share unlocks the given item or blob id.
func (s *Share) Accessible(id string) bool {
	for _, item := range s.ItemIDs {
		if item == id {
			return true
		}
	}
	return false
}
