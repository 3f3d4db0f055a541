package vault

import "encoding/json"

// Params carries the AES-GCM nonce and tag for one encrypted blob,
// hex-encoded as Aegis stores them.
type Params struct {
	Nonce string `json:"nonce"`
	Tag   string `json:"tag"`
}

// Slot is one key slot from the vault header. Password slots (Type == 1)
// hold the master key encrypted with a scrypt-derived key.
type Slot struct {
	Type      int    `json:"type"`
	UUID      string `json:"uuid"`
	Key       string `json:"key"`
	KeyParams Params `json:"key_params"`
	N         int    `json:"n"`
	R         int    `json:"r"`
	P         int    `json:"p"`
	Salt      string `json:"salt"`
	Repaired  bool   `json:"repaired"`
	IsBackup  bool   `json:"is_backup"`
}

type Header struct {
	Slots  []Slot  `json:"slots"`
	Params *Params `json:"params"`
}

// Info holds the OTP parameters of an entry. Period applies to totp/steam/motp,
// Counter to hotp, Pin to motp only.
type Info struct {
	Secret  string `json:"secret"`
	Algo    string `json:"algo"`
	Digits  int    `json:"digits"`
	Period  int    `json:"period,omitempty"`
	Counter uint64 `json:"counter,omitempty"`
	Pin     string `json:"pin,omitempty"`
}

type Entry struct {
	Type     string   `json:"type"`
	UUID     string   `json:"uuid"`
	Name     string   `json:"name"`
	Issuer   string   `json:"issuer"`
	Note     string   `json:"note"`
	Favorite bool     `json:"favorite"`
	Info     Info     `json:"info"`
	Groups   []string `json:"groups"`
}

type Group struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type DB struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
	Groups  []Group `json:"groups"`
}

// Vault is a decrypted vault ready for use.
type Vault struct {
	Version int
	DB      DB
}

// File is the on-disk envelope. For encrypted exports DB is a base64 JSON
// string, for plain exports it is the db object itself, so it stays raw
// until Open decides which it is.
type File struct {
	Version int             `json:"version"`
	Header  Header          `json:"header"`
	DB      json.RawMessage `json:"db"`
}
