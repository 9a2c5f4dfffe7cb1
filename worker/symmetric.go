package worker

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/esrlabs/sindri/jobs"
	"github.com/esrlabs/sindri/keystore"
)

// ErrInvalidNonceSize is returned when a request's Nonce isn't exactly
// chacha20poly1305.NonceSize bytes.
var ErrInvalidNonceSize = errors.New("worker: invalid nonce size")

// NewSymmetricWorker constructs a Worker answering
// GenerateSymmetricKeyRequest, EncryptChaCha20Poly1305Request, and
// DecryptChaCha20Poly1305Request. Generated and looked-up keys live in
// keyStore, shared with the dispatch core's key-store shim, which imports
// and deletes keys in the same store.
func NewSymmetricWorker(source jobs.RequestSource, sink jobs.ResponseSink, keyStore *keystore.Handle, opts ...Option) *Worker {
	return New(source, sink, symmetricHandler(keyStore), opts...)
}

func symmetricHandler(h *keystore.Handle) Handler {
	return func(ctx context.Context, req jobs.Request) jobs.Response {
		switch r := req.(type) {
		case jobs.GenerateSymmetricKeyRequest:
			return generateSymmetricKey(h, req, r)
		case jobs.EncryptChaCha20Poly1305Request:
			return encryptChaCha20Poly1305(h, req, r)
		case jobs.DecryptChaCha20Poly1305Request:
			return decryptChaCha20Poly1305(h, req, r)
		default:
			return jobs.NewErrorResponse(req, jobs.ErrUnknownRequestType)
		}
	}
}

func generateSymmetricKey(h *keystore.Handle, req jobs.Request, r jobs.GenerateSymmetricKeyRequest) jobs.Response {
	size := r.KeySize
	if size <= 0 {
		size = chacha20poly1305.KeySize
	}

	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return jobs.NewErrorResponse(req, err)
	}

	store, unlock := h.Lock()
	defer unlock()

	if err := store.Import(r.KeyID, key); err != nil {
		return jobs.NewErrorResponse(req, jobs.NewKeyStoreError(err))
	}

	return jobs.NewGenerateSymmetricKeyResponse(req, r.KeyID)
}

func encryptChaCha20Poly1305(h *keystore.Handle, req jobs.Request, r jobs.EncryptChaCha20Poly1305Request) jobs.Response {
	if len(r.Nonce) != chacha20poly1305.NonceSize {
		return jobs.NewErrorResponse(req, ErrInvalidNonceSize)
	}

	aead, err := lookupAEAD(h, r.KeyID)
	if err != nil {
		return jobs.NewErrorResponse(req, err)
	}

	ciphertext := aead.Seal(nil, r.Nonce, r.Plaintext, r.AAD)
	return jobs.NewEncryptChaCha20Poly1305Response(req, ciphertext)
}

func decryptChaCha20Poly1305(h *keystore.Handle, req jobs.Request, r jobs.DecryptChaCha20Poly1305Request) jobs.Response {
	if len(r.Nonce) != chacha20poly1305.NonceSize {
		return jobs.NewErrorResponse(req, ErrInvalidNonceSize)
	}

	aead, err := lookupAEAD(h, r.KeyID)
	if err != nil {
		return jobs.NewErrorResponse(req, err)
	}

	plaintext, err := aead.Open(nil, r.Nonce, r.Ciphertext, r.AAD)
	if err != nil {
		return jobs.NewErrorResponse(req, err)
	}
	return jobs.NewDecryptChaCha20Poly1305Response(req, plaintext)
}

func lookupAEAD(h *keystore.Handle, keyID string) (cipher.AEAD, error) {
	store, unlock := h.Lock()
	defer unlock()

	key, ok := store.Lookup(keyID)
	if !ok {
		return nil, keystore.ErrNotFound
	}
	return chacha20poly1305.New(key)
}
