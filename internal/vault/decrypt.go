package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/scrypt"
)

const masterKeyLen = 32 // AES-256

var (
	// ErrWrongPassword means no password slot could be opened with the
	// supplied password. Recoverable: re-prompt and retry.
	ErrWrongPassword = errors.New("vault: wrong password")
	// ErrMalformedVault means the file parsed as JSON but does not follow
	// the Aegis export format.
	ErrMalformedVault = errors.New("vault: malformed vault file")
)

// Open reads an Aegis export at path and returns the decrypted vault.
// Plain (unencrypted) exports are detected by their db field being a JSON
// object rather than a base64 string and need no password.
func Open(path, password string) (*Vault, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vault: read %s: %w", path, err)
	}
	return Decrypt(raw, password)
}

// Decrypt parses an Aegis export and decrypts its database.
func Decrypt(raw []byte, password string) (*Vault, error) {
	var file File
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVault, err)
	}
	if len(file.DB) == 0 {
		return nil, fmt.Errorf("%w: missing db field", ErrMalformedVault)
	}

	// Plain export: db is the database object itself.
	if file.DB[0] == '{' {
		var db DB
		if err := json.Unmarshal(file.DB, &db); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedVault, err)
		}
		return &Vault{Version: file.Version, DB: db}, nil
	}

	var dbB64 string
	if err := json.Unmarshal(file.DB, &dbB64); err != nil {
		return nil, fmt.Errorf("%w: db is neither object nor string", ErrMalformedVault)
	}
	if file.Header.Params == nil {
		return nil, fmt.Errorf("%w: encrypted vault without header params", ErrMalformedVault)
	}

	masterKey, err := findMasterKey(file.Header.Slots, password)
	if err != nil {
		return nil, err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(dbB64)
	if err != nil {
		return nil, fmt.Errorf("%w: db base64: %v", ErrMalformedVault, err)
	}
	plaintext, err := gcmOpen(masterKey, *file.Header.Params, ciphertext)
	if err != nil {
		// The master key opened, so a failure here is corruption rather
		// than a bad password.
		return nil, fmt.Errorf("%w: database does not authenticate", ErrMalformedVault)
	}

	var db DB
	if err := json.Unmarshal(plaintext, &db); err != nil {
		return nil, fmt.Errorf("%w: decrypted db: %v", ErrMalformedVault, err)
	}
	return &Vault{Version: file.Version, DB: db}, nil
}

// findMasterKey tries every password slot in order and returns the first
// master key that authenticates.
func findMasterKey(slots []Slot, password string) ([]byte, error) {
	sawPasswordSlot := false
	for _, slot := range slots {
		if slot.Type != 1 {
			continue
		}
		sawPasswordSlot = true

		salt, err := hex.DecodeString(slot.Salt)
		if err != nil {
			continue
		}
		derived, err := scrypt.Key([]byte(password), salt, slot.N, slot.R, slot.P, masterKeyLen)
		if err != nil {
			continue
		}
		encryptedKey, err := hex.DecodeString(slot.Key)
		if err != nil {
			continue
		}
		masterKey, err := gcmOpen(derived, slot.KeyParams, encryptedKey)
		if err != nil {
			continue
		}
		return masterKey, nil
	}

	if !sawPasswordSlot {
		return nil, fmt.Errorf("%w: no password slots", ErrMalformedVault)
	}
	return nil, ErrWrongPassword
}

// gcmOpen decrypts ciphertext with the hex nonce/tag pair Aegis stores
// separately from the data.
func gcmOpen(key []byte, params Params, ciphertext []byte) ([]byte, error) {
	nonce, err := hex.DecodeString(params.Nonce)
	if err != nil {
		return nil, fmt.Errorf("bad nonce: %w", err)
	}
	tag, err := hex.DecodeString(params.Tag)
	if err != nil {
		return nil, fmt.Errorf("bad tag: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, len(nonce))
	if err != nil {
		return nil, err
	}

	// Go's GCM expects the tag appended to the ciphertext.
	return gcm.Open(nil, nonce, append(append([]byte{}, ciphertext...), tag...), nil)
}
