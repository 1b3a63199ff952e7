package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/cryptox"
)

// Envelope is the wire shape of one encrypted item: `{nonce, base64}`.
// Both fields are base64; the server never interprets either. (An earlier
// design passed the raw nonce bytes as a UTF-8 string, which breaks for
// nonces that are not valid UTF-8.)
type Envelope struct {
	Nonce  string `json:"nonce"`
	Base64 string `json:"base64"`
}

// EncodeItem serializes item to JSON and seals it under key with a fresh
// nonce.
func EncodeItem(key []byte, item Item) (*Envelope, error) {
	plaintext, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEncoding, err)
	}
	nonce, ciphertext, err := cryptox.Encrypt(key, plaintext)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		Nonce:  base64.StdEncoding.EncodeToString(nonce),
		Base64: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// DecodeItem opens an envelope and deserializes the contained item.
// Malformed base64 or JSON surfaces as common.ErrEncoding; an AEAD tag
// mismatch surfaces as common.ErrCrypto.
func DecodeItem(key []byte, env *Envelope) (*Item, error) {
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: bad nonce base64: %v", common.ErrEncoding, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Base64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad ciphertext base64: %v", common.ErrEncoding, err)
	}
	plaintext, err := cryptox.Decrypt(key, nonce, ciphertext)
	if err != nil {
		return nil, err
	}
	var item Item
	if err := json.Unmarshal(plaintext, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEncoding, err)
	}
	return &item, nil
}
