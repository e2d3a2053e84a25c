// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"encoding/json"
	"os"

	"github.com/bvk/predictbot/telegram"
)

type SigningKey struct {
	// KeyName identifies the signing key. It is included as the "kid"
	// header of issued tokens.
	KeyName string `json:"name"`

	// KeyPEM holds the EC private key in PEM format.
	KeyPEM string `json:"pem"`
}

type Secrets struct {
	Telegram *telegram.Secrets `json:"telegram"`
	Signing  *SigningKey       `json:"signing"`
}

func SecretsFromFile(fpath string) (*Secrets, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	s := new(Secrets)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (v *Secrets) Check() error {
	if v.Telegram != nil {
		if err := v.Telegram.Check(); err != nil {
			return err
		}
	}
	return nil
}
