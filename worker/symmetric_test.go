package worker

import (
	"bytes"
	"context"
	"testing"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/esrlabs/sindri/jobs"
	"github.com/esrlabs/sindri/keystore"
	"github.com/esrlabs/sindri/queue"
)

func TestSymmetricWorker_GenerateEncryptDecryptRoundTrip(t *testing.T) {
	reqQ, respQ := queue.NewRequestQueue(4), queue.NewResponseQueue(4)
	store := keystore.NewHandle(keystore.NewMemoryStore())
	w := NewSymmetricWorker(reqQ, respQ, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	const keyID = "k1"
	if err := reqQ.PushRequest(ctx, jobs.NewGenerateSymmetricKeyRequest(0, 1, keyID, 0)); err != nil {
		t.Fatalf("PushRequest (generate): %v", err)
	}
	genResp := waitForResponse(t, respQ)
	if _, ok := genResp.(jobs.GenerateSymmetricKeyResponse); !ok {
		t.Fatalf("generate response type = %T, want jobs.GenerateSymmetricKeyResponse", genResp)
	}

	nonce := make([]byte, chacha20poly1305.NonceSize)
	plaintext := []byte("secret payload")
	aad := []byte("context")

	if err := reqQ.PushRequest(ctx, jobs.NewEncryptChaCha20Poly1305Request(0, 2, keyID, nonce, plaintext, aad)); err != nil {
		t.Fatalf("PushRequest (encrypt): %v", err)
	}
	encResp := waitForResponse(t, respQ)
	enc, ok := encResp.(jobs.EncryptChaCha20Poly1305Response)
	if !ok {
		t.Fatalf("encrypt response type = %T, want jobs.EncryptChaCha20Poly1305Response", encResp)
	}
	if bytes.Equal(enc.Ciphertext, plaintext) {
		t.Fatal("ciphertext must not equal plaintext")
	}

	if err := reqQ.PushRequest(ctx, jobs.NewDecryptChaCha20Poly1305Request(0, 3, keyID, nonce, enc.Ciphertext, aad)); err != nil {
		t.Fatalf("PushRequest (decrypt): %v", err)
	}
	decResp := waitForResponse(t, respQ)
	dec, ok := decResp.(jobs.DecryptChaCha20Poly1305Response)
	if !ok {
		t.Fatalf("decrypt response type = %T, want jobs.DecryptChaCha20Poly1305Response", decResp)
	}
	if !bytes.Equal(dec.Plaintext, plaintext) {
		t.Fatalf("decrypted plaintext = %q, want %q", dec.Plaintext, plaintext)
	}
}

func TestSymmetricWorker_EncryptRejectsWrongNonceSize(t *testing.T) {
	reqQ, respQ := queue.NewRequestQueue(2), queue.NewResponseQueue(2)
	store := keystore.NewHandle(keystore.NewMemoryStore())
	w := NewSymmetricWorker(reqQ, respQ, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	req := jobs.NewEncryptChaCha20Poly1305Request(0, 1, "k1", []byte{1, 2, 3}, []byte("x"), nil)
	if err := reqQ.PushRequest(ctx, req); err != nil {
		t.Fatalf("PushRequest: %v", err)
	}

	resp := waitForResponse(t, respQ)
	errResp, ok := resp.(jobs.ErrorResponse)
	if !ok {
		t.Fatalf("response type = %T, want jobs.ErrorResponse", resp)
	}
	if errResp.Err != ErrInvalidNonceSize {
		t.Fatalf("err = %v, want ErrInvalidNonceSize", errResp.Err)
	}
}

func TestSymmetricWorker_EncryptUnknownKeyReturnsError(t *testing.T) {
	reqQ, respQ := queue.NewRequestQueue(2), queue.NewResponseQueue(2)
	store := keystore.NewHandle(keystore.NewMemoryStore())
	w := NewSymmetricWorker(reqQ, respQ, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	nonce := make([]byte, chacha20poly1305.NonceSize)
	req := jobs.NewEncryptChaCha20Poly1305Request(0, 1, "missing", nonce, []byte("x"), nil)
	if err := reqQ.PushRequest(ctx, req); err != nil {
		t.Fatalf("PushRequest: %v", err)
	}

	resp := waitForResponse(t, respQ)
	if _, ok := resp.(jobs.ErrorResponse); !ok {
		t.Fatalf("response type = %T, want jobs.ErrorResponse", resp)
	}
}
