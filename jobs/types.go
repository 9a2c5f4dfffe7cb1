package jobs

// ClientID identifies a registered client. It is assigned by the core on
// registration (0-based, contiguous, never reused) and is opaque to the
// client itself.
type ClientID uint16

// RequestID is chosen by the client and is opaque to the core; it exists
// purely for client-side correlation of a Response with its Request.
type RequestID uint32

// RequestType tags a Request (and, transitively, the Response it produces)
// so the core can resolve the single worker advertising it. The set is
// closed at compile time of the core binary.
type RequestType uint8

const (
	RequestTypeImportKey RequestType = iota
	RequestTypeDeleteKey
	RequestTypeGetRandom
	RequestTypeGenerateSymmetricKey
	RequestTypeEncryptChaCha20Poly1305
	RequestTypeDecryptChaCha20Poly1305
	RequestTypeHash
)

// String returns a human-readable name, used in log fields and error text.
func (t RequestType) String() string {
	switch t {
	case RequestTypeImportKey:
		return "ImportKey"
	case RequestTypeDeleteKey:
		return "DeleteKey"
	case RequestTypeGetRandom:
		return "GetRandom"
	case RequestTypeGenerateSymmetricKey:
		return "GenerateSymmetricKey"
	case RequestTypeEncryptChaCha20Poly1305:
		return "EncryptChaCha20Poly1305"
	case RequestTypeDecryptChaCha20Poly1305:
		return "DecryptChaCha20Poly1305"
	case RequestTypeHash:
		return "Hash"
	default:
		return "Unknown"
	}
}

// IsKeyStoreOp reports whether t is handled locally by the key-store shim,
// rather than forwarded to a worker.
func (t RequestType) IsKeyStoreOp() bool {
	return t == RequestTypeImportKey || t == RequestTypeDeleteKey
}

// Request is a tagged variant carrying a client id (assigned by the core on
// admission), a request id (chosen by the client), a request type tag
// derivable in O(1), and a variant-specific payload.
//
// withClientID is unexported, which closes the set of implementations to
// this package: the core is the only party permitted to stamp a request
// with its admitted client id.
type Request interface {
	ClientID() ClientID
	RequestID() RequestID
	Type() RequestType
	withClientID(ClientID) Request
}

// Response mirrors Request: it carries the client id of the request that
// produced it, and the originating request id.
type Response interface {
	ClientID() ClientID
	RequestID() RequestID
}

// base embeds the correlation fields shared by every Request and Response
// variant.
type base struct {
	clientID  ClientID
	requestID RequestID
}

func (b base) ClientID() ClientID   { return b.clientID }
func (b base) RequestID() RequestID { return b.requestID }

// WithClientID returns a copy of req stamped with the admitting client's
// registered id. Only the dispatch core is expected to call this, on
// admission of a freshly peeked request; it exists because withClientID
// itself is unexported, closing the set of Request implementations to this
// package.
func WithClientID(req Request, id ClientID) Request {
	return req.withClientID(id)
}

type (
	// ImportKeyRequest imports key material under KeyID. Handled locally by
	// the key-store shim; never forwarded to a worker.
	ImportKeyRequest struct {
		base
		KeyID string
		Data  []byte
	}

	// ImportKeyResponse acknowledges a successful ImportKeyRequest.
	ImportKeyResponse struct{ base }

	// DeleteKeyRequest removes key material under KeyID. Handled locally by
	// the key-store shim.
	DeleteKeyRequest struct {
		base
		KeyID string
	}

	// DeleteKeyResponse acknowledges a successful DeleteKeyRequest.
	DeleteKeyResponse struct{ base }

	// GetRandomRequest asks the RNG worker for Len bytes of randomness.
	GetRandomRequest struct {
		base
		Len int
	}

	// GetRandomResponse carries the requested random bytes.
	GetRandomResponse struct {
		base
		Data []byte
	}

	// GenerateSymmetricKeyRequest asks the symmetric worker to generate a
	// fresh key of KeySize bytes and import it into the key store under
	// KeyID.
	GenerateSymmetricKeyRequest struct {
		base
		KeyID   string
		KeySize int
	}

	// GenerateSymmetricKeyResponse acknowledges key generation.
	GenerateSymmetricKeyResponse struct {
		base
		KeyID string
	}

	// EncryptChaCha20Poly1305Request asks the symmetric worker to seal
	// Plaintext under the key KeyID, using Nonce and additional data AAD.
	EncryptChaCha20Poly1305Request struct {
		base
		KeyID     string
		Nonce     []byte
		Plaintext []byte
		AAD       []byte
	}

	// EncryptChaCha20Poly1305Response carries the sealed ciphertext
	// (including the appended authentication tag).
	EncryptChaCha20Poly1305Response struct {
		base
		Ciphertext []byte
	}

	// DecryptChaCha20Poly1305Request asks the symmetric worker to open
	// Ciphertext under the key KeyID, using Nonce and additional data AAD.
	DecryptChaCha20Poly1305Request struct {
		base
		KeyID      string
		Nonce      []byte
		Ciphertext []byte
		AAD        []byte
	}

	// DecryptChaCha20Poly1305Response carries the recovered plaintext.
	DecryptChaCha20Poly1305Response struct {
		base
		Plaintext []byte
	}

	// HashRequest asks the hash worker for a digest of Data.
	HashRequest struct {
		base
		Data []byte
	}

	// HashResponse carries the digest.
	HashResponse struct {
		base
		Digest []byte
	}

	// ErrorResponse is returned in place of any other Response variant when
	// a request could not be serviced. Err is always non-nil.
	ErrorResponse struct {
		base
		Err error
	}
)

func (r ImportKeyRequest) Type() RequestType                  { return RequestTypeImportKey }
func (r DeleteKeyRequest) Type() RequestType                  { return RequestTypeDeleteKey }
func (r GetRandomRequest) Type() RequestType                  { return RequestTypeGetRandom }
func (r GenerateSymmetricKeyRequest) Type() RequestType       { return RequestTypeGenerateSymmetricKey }
func (r EncryptChaCha20Poly1305Request) Type() RequestType    { return RequestTypeEncryptChaCha20Poly1305 }
func (r DecryptChaCha20Poly1305Request) Type() RequestType    { return RequestTypeDecryptChaCha20Poly1305 }
func (r HashRequest) Type() RequestType                       { return RequestTypeHash }

func (r ImportKeyRequest) withClientID(id ClientID) Request {
	r.base.clientID = id
	return r
}
func (r DeleteKeyRequest) withClientID(id ClientID) Request {
	r.base.clientID = id
	return r
}
func (r GetRandomRequest) withClientID(id ClientID) Request {
	r.base.clientID = id
	return r
}
func (r GenerateSymmetricKeyRequest) withClientID(id ClientID) Request {
	r.base.clientID = id
	return r
}
func (r EncryptChaCha20Poly1305Request) withClientID(id ClientID) Request {
	r.base.clientID = id
	return r
}
func (r DecryptChaCha20Poly1305Request) withClientID(id ClientID) Request {
	r.base.clientID = id
	return r
}
func (r HashRequest) withClientID(id ClientID) Request {
	r.base.clientID = id
	return r
}

// NewImportKeyRequest constructs an ImportKeyRequest. clientID is a
// placeholder: the core overwrites it with the admitting client's registered
// index when the request is dequeued.
func NewImportKeyRequest(clientID ClientID, requestID RequestID, keyID string, data []byte) ImportKeyRequest {
	return ImportKeyRequest{base: base{clientID, requestID}, KeyID: keyID, Data: data}
}

// NewDeleteKeyRequest constructs a DeleteKeyRequest.
func NewDeleteKeyRequest(clientID ClientID, requestID RequestID, keyID string) DeleteKeyRequest {
	return DeleteKeyRequest{base: base{clientID, requestID}, KeyID: keyID}
}

// NewGetRandomRequest constructs a GetRandomRequest for n bytes.
func NewGetRandomRequest(clientID ClientID, requestID RequestID, n int) GetRandomRequest {
	return GetRandomRequest{base: base{clientID, requestID}, Len: n}
}

// NewGenerateSymmetricKeyRequest constructs a GenerateSymmetricKeyRequest.
func NewGenerateSymmetricKeyRequest(clientID ClientID, requestID RequestID, keyID string, keySize int) GenerateSymmetricKeyRequest {
	return GenerateSymmetricKeyRequest{base: base{clientID, requestID}, KeyID: keyID, KeySize: keySize}
}

// NewEncryptChaCha20Poly1305Request constructs an encryption request.
func NewEncryptChaCha20Poly1305Request(clientID ClientID, requestID RequestID, keyID string, nonce, plaintext, aad []byte) EncryptChaCha20Poly1305Request {
	return EncryptChaCha20Poly1305Request{base: base{clientID, requestID}, KeyID: keyID, Nonce: nonce, Plaintext: plaintext, AAD: aad}
}

// NewDecryptChaCha20Poly1305Request constructs a decryption request.
func NewDecryptChaCha20Poly1305Request(clientID ClientID, requestID RequestID, keyID string, nonce, ciphertext, aad []byte) DecryptChaCha20Poly1305Request {
	return DecryptChaCha20Poly1305Request{base: base{clientID, requestID}, KeyID: keyID, Nonce: nonce, Ciphertext: ciphertext, AAD: aad}
}

// NewHashRequest constructs a HashRequest.
func NewHashRequest(clientID ClientID, requestID RequestID, data []byte) HashRequest {
	return HashRequest{base: base{clientID, requestID}, Data: data}
}

// NewImportKeyResponse acknowledges req.
func NewImportKeyResponse(req Request) ImportKeyResponse {
	return ImportKeyResponse{base: base{req.ClientID(), req.RequestID()}}
}

// NewDeleteKeyResponse acknowledges req.
func NewDeleteKeyResponse(req Request) DeleteKeyResponse {
	return DeleteKeyResponse{base: base{req.ClientID(), req.RequestID()}}
}

// NewGetRandomResponse correlates data to req.
func NewGetRandomResponse(req Request, data []byte) GetRandomResponse {
	return GetRandomResponse{base: base{req.ClientID(), req.RequestID()}, Data: data}
}

// NewGenerateSymmetricKeyResponse correlates keyID to req.
func NewGenerateSymmetricKeyResponse(req Request, keyID string) GenerateSymmetricKeyResponse {
	return GenerateSymmetricKeyResponse{base: base{req.ClientID(), req.RequestID()}, KeyID: keyID}
}

// NewEncryptChaCha20Poly1305Response correlates ciphertext to req.
func NewEncryptChaCha20Poly1305Response(req Request, ciphertext []byte) EncryptChaCha20Poly1305Response {
	return EncryptChaCha20Poly1305Response{base: base{req.ClientID(), req.RequestID()}, Ciphertext: ciphertext}
}

// NewDecryptChaCha20Poly1305Response correlates plaintext to req.
func NewDecryptChaCha20Poly1305Response(req Request, plaintext []byte) DecryptChaCha20Poly1305Response {
	return DecryptChaCha20Poly1305Response{base: base{req.ClientID(), req.RequestID()}, Plaintext: plaintext}
}

// NewHashResponse correlates digest to req.
func NewHashResponse(req Request, digest []byte) HashResponse {
	return HashResponse{base: base{req.ClientID(), req.RequestID()}, Digest: digest}
}

// NewErrorResponse constructs an ErrorResponse correlated to req.
func NewErrorResponse(req Request, err error) ErrorResponse {
	return ErrorResponse{base: base{req.ClientID(), req.RequestID()}, Err: err}
}

// NewErrorResponseFor constructs an ErrorResponse for a client/request id
// pair directly, for callers that have no Request to correlate against.
func NewErrorResponseFor(clientID ClientID, requestID RequestID, err error) ErrorResponse {
	return ErrorResponse{base: base{clientID, requestID}, Err: err}
}
