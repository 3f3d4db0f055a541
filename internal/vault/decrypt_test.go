package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/scrypt"
)

// Low-cost scrypt parameters keep the fixtures fast; the decrypt path does
// not care about the cost settings, it reads them from the slot.
const (
	testN = 4096
	testR = 8
	testP = 1
)

func testDB() DB {
	return DB{
		Version: 2,
		Entries: []Entry{
			{
				Type:   "totp",
				UUID:   "11111111-1111-1111-1111-111111111111",
				Name:   "alice@example.com",
				Issuer: "Example",
				Groups: []string{"aaaaaaaa-0000-0000-0000-000000000000"},
				Info:   Info{Secret: "JBSWY3DPEHPK3PXP", Algo: "SHA1", Digits: 6, Period: 30},
			},
			{
				Type: "hotp",
				UUID: "22222222-2222-2222-2222-222222222222",
				Name: "bob",
				Info: Info{Secret: "JBSWY3DPEHPK3PXP", Algo: "SHA1", Digits: 6, Counter: 5},
			},
		},
		Groups: []Group{
			{UUID: "aaaaaaaa-0000-0000-0000-000000000000", Name: "Work"},
		},
	}
}

func gcmSealParams(t *testing.T, key, plaintext []byte) (string, Params) {
	t.Helper()

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		t.Fatalf("new gcm: %v", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		t.Fatalf("nonce: %v", err)
	}
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	body, tag := sealed[:len(sealed)-16], sealed[len(sealed)-16:]

	return hex.EncodeToString(body), Params{
		Nonce: hex.EncodeToString(nonce),
		Tag:   hex.EncodeToString(tag),
	}
}

// encryptFixture builds an encrypted Aegis export the same way the Android
// app does: a random master key wrapped by a scrypt-derived slot key.
func encryptFixture(t *testing.T, db DB, password string) []byte {
	t.Helper()

	masterKey := make([]byte, masterKeyLen)
	if _, err := rand.Read(masterKey); err != nil {
		t.Fatalf("master key: %v", err)
	}
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		t.Fatalf("salt: %v", err)
	}

	slotKey, err := scrypt.Key([]byte(password), salt, testN, testR, testP, masterKeyLen)
	if err != nil {
		t.Fatalf("scrypt: %v", err)
	}
	wrappedKeyHex, keyParams := gcmSealParams(t, slotKey, masterKey)

	dbJSON, err := json.Marshal(db)
	if err != nil {
		t.Fatalf("marshal db: %v", err)
	}
	dbCipherHex, dbParams := gcmSealParams(t, masterKey, dbJSON)
	dbCipher, _ := hex.DecodeString(dbCipherHex)

	envelope := map[string]any{
		"version": 1,
		"header": map[string]any{
			"slots": []map[string]any{
				{
					"type":       1,
					"uuid":       "33333333-3333-3333-3333-333333333333",
					"key":        wrappedKeyHex,
					"key_params": map[string]string{"nonce": keyParams.Nonce, "tag": keyParams.Tag},
					"n":          testN,
					"r":          testR,
					"p":          testP,
					"salt":       hex.EncodeToString(salt),
					"repaired":   false,
					"is_backup":  false,
				},
			},
			"params": map[string]string{"nonce": dbParams.Nonce, "tag": dbParams.Tag},
		},
		"db": base64.StdEncoding.EncodeToString(dbCipher),
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return raw
}

func TestDecryptRoundTrip(t *testing.T) {
	raw := encryptFixture(t, testDB(), "correct horse")

	v, err := Decrypt(raw, "correct horse")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}

	if len(v.DB.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(v.DB.Entries))
	}
	if v.DB.Entries[0].Name != "alice@example.com" || v.DB.Entries[0].Info.Period != 30 {
		t.Fatalf("first entry mangled: %+v", v.DB.Entries[0])
	}
	if v.DB.Entries[1].Info.Counter != 5 {
		t.Fatalf("hotp counter lost: %+v", v.DB.Entries[1])
	}
	if len(v.DB.Groups) != 1 || v.DB.Groups[0].Name != "Work" {
		t.Fatalf("groups mangled: %+v", v.DB.Groups)
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	raw := encryptFixture(t, testDB(), "correct horse")

	_, err := Decrypt(raw, "battery staple")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestDecryptMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{"not json", []byte("not a vault")},
		{"missing db", []byte(`{"version":1,"header":{"slots":[],"params":null}}`)},
		{"db wrong type", []byte(`{"version":1,"header":{"slots":[],"params":null},"db":42}`)},
		{"encrypted without params", []byte(`{"version":1,"header":{"slots":[]},"db":"AAAA"}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decrypt(tc.raw, "pw"); !errors.Is(err, ErrMalformedVault) {
				t.Fatalf("expected ErrMalformedVault, got %v", err)
			}
		})
	}
}

func TestDecryptPlainExport(t *testing.T) {
	dbJSON, err := json.Marshal(testDB())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	raw := []byte(`{"version":1,"header":{"slots":null,"params":null},"db":` + string(dbJSON) + `}`)

	v, err := Decrypt(raw, "")
	if err != nil {
		t.Fatalf("plain export: %v", err)
	}
	if len(v.DB.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(v.DB.Entries))
	}
}

func TestOpenReadsFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "aegis-export-20240101.json")
	if err := os.WriteFile(path, encryptFixture(t, testDB(), "pw"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	v, err := Open(path, "pw")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(v.DB.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(v.DB.Entries))
	}
}

func TestFindPathPicksNewest(t *testing.T) {
	tmpDir := t.TempDir()

	old := filepath.Join(tmpDir, "aegis-backup-20230101.json")
	newer := filepath.Join(tmpDir, "aegis-export-20240101-120000.json")
	ignored := filepath.Join(tmpDir, "notes.json")
	for _, p := range []string{old, newer, ignored} {
		if err := os.WriteFile(p, []byte("{}"), 0o600); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := FindPath(tmpDir)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != newer {
		t.Fatalf("expected %s, got %s", newer, got)
	}
}

func TestFindPathEmpty(t *testing.T) {
	if _, err := FindPath(t.TempDir()); !errors.Is(err, ErrVaultNotFound) {
		t.Fatalf("expected ErrVaultNotFound, got %v", err)
	}
}
