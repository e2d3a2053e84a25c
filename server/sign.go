// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"os"
	"time"

	"github.com/bvk/predictbot/api"
	jose "gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

type nonceSource struct{}

func (n nonceSource) Nonce() (string, error) {
	r, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

type requestClaims struct {
	*jwt.Claims
	URI string `json:"uri"`
}

// doSign issues a short-lived ES256 token authorizing one upstream request.
func (s *Server) doSign(ctx context.Context, req *api.SignRequest) (*api.SignResponse, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	if s.signingKey == nil {
		return nil, fmt.Errorf("no signing key is configured: %w", os.ErrNotExist)
	}

	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.ES256, Key: s.signingKey},
		(&jose.SignerOptions{NonceSource: nonceSource{}}).WithType("JWT").WithHeader("kid", s.keyName),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create signer: %w", err)
	}

	now := time.Now()
	cl := &requestClaims{
		Claims: &jwt.Claims{
			Subject:   s.keyName,
			Issuer:    "predictbot",
			NotBefore: jwt.NewNumericDate(now),
			Expiry:    jwt.NewNumericDate(now.Add(s.opts.SignTokenLifetime)),
		},
		URI: fmt.Sprintf("%s %s", req.Method, req.RequestPath),
	}
	token, err := jwt.Signed(signer).Claims(cl).CompactSerialize()
	if err != nil {
		return nil, fmt.Errorf("could not sign the request claims: %w", err)
	}
	return &api.SignResponse{Token: token, Timestamp: now.Unix()}, nil
}
