// Copyright (c) 2025 BVK Chaitanya

package api

const SignPath = "/sign"

type SignRequest struct {
	// Method and RequestPath identify the upstream request being signed.
	Method      string
	RequestPath string
}

type SignResponse struct {
	// Token is a compact-serialized ES256 JWT over the request metadata.
	Token string

	Timestamp int64
}
