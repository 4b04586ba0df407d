/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/suparena/docstore/errors"
)

// KeyCredential holds the account's shared-key secret, decoded and
// validated at construction time. It is immutable and safe to share.
type KeyCredential struct {
	key []byte
}

// NewKeyCredential validates and decodes a base64 shared-key secret.
// An empty or malformed key fails immediately; a shared key is the only
// credential shape this client supports.
func NewKeyCredential(key string) (KeyCredential, error) {
	if key == "" {
		return KeyCredential{}, errors.NewCredentialError("key is empty")
	}
	decoded, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return KeyCredential{}, errors.NewCredentialError("key is not valid base64")
	}
	return KeyCredential{key: decoded}, nil
}

// authorize computes the shared-key authorization header value for one
// request: an HMAC-SHA256 over the lowercased verb, resource type and
// date plus the resource link, URL-escaped into the header format the
// service expects.
func (c KeyCredential) authorize(verb, resourceType, resourceLink, date string) string {
	payload := strings.ToLower(verb) + "\n" +
		strings.ToLower(resourceType) + "\n" +
		resourceLink + "\n" +
		strings.ToLower(date) + "\n" +
		"\n"

	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(payload))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return url.QueryEscape("type=master&ver=1.0&sig=" + signature)
}
