// Command sindrid wires a complete in-memory dispatch core — key store, RNG,
// symmetric, and hash workers, a rate guard, an audit log, and one demo
// client — and runs it until interrupted.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"

	"github.com/esrlabs/sindri/audit"
	"github.com/esrlabs/sindri/client"
	"github.com/esrlabs/sindri/hsm"
	"github.com/esrlabs/sindri/jobs"
	"github.com/esrlabs/sindri/keystore"
	"github.com/esrlabs/sindri/queue"
	"github.com/esrlabs/sindri/ratelimit"
	"github.com/esrlabs/sindri/worker"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := izerolog.L.New(
		izerolog.L.WithZerolog(zerolog.New(os.Stderr).With().Timestamp().Logger()),
		izerolog.L.WithLevel(izerolog.L.LevelDebug()),
	)

	store := keystore.NewHandle(keystore.NewMemoryStore())
	auditLog := audit.NewLog(logger)
	guard := ratelimit.NewGuard(nil)

	clientReqQ := queue.NewRequestQueue(64)
	clientRespQ := queue.NewResponseQueue(64)

	rngReqQ := queue.NewRequestQueue(64)
	rngRespQ := queue.NewResponseQueue(64)

	symReqQ := queue.NewRequestQueue(64)
	symRespQ := queue.NewResponseQueue(64)

	hashReqQ := queue.NewRequestQueue(64)
	hashRespQ := queue.NewResponseQueue(64)

	core := hsm.NewBuilder(
		hsm.WithLogger(logger),
		hsm.WithRateLimiter(guard),
		hsm.WithAuditRecorder(auditLog),
	).
		WithKeyStore(store).
		WithClient(clientReqQ, clientRespQ).
		WithWorker([]jobs.RequestType{jobs.RequestTypeGetRandom}, rngReqQ, rngRespQ).
		WithWorker([]jobs.RequestType{
			jobs.RequestTypeGenerateSymmetricKey,
			jobs.RequestTypeEncryptChaCha20Poly1305,
			jobs.RequestTypeDecryptChaCha20Poly1305,
		}, symReqQ, symRespQ).
		WithWorker([]jobs.RequestType{jobs.RequestTypeHash}, hashReqQ, hashRespQ).
		Build()

	clientReqQ.SetNotify(core.Notify)
	rngRespQ.SetNotify(core.Notify)
	symRespQ.SetNotify(core.Notify)
	hashRespQ.SetNotify(core.Notify)

	rngWorker := worker.NewRngWorker(rngReqQ, rngRespQ, worker.RngWorkerConfig{}, worker.WithLogger(logger))
	symWorker := worker.NewSymmetricWorker(symReqQ, symRespQ, store, worker.WithLogger(logger))
	hashWorker := worker.NewHashWorker(hashReqQ, hashRespQ, worker.WithLogger(logger))

	rngReqQ.SetNotify(rngWorker.Notify)
	symReqQ.SetNotify(symWorker.Notify)
	hashReqQ.SetNotify(hashWorker.Notify)

	api := client.New(clientReqQ, clientRespQ)
	clientRespQ.SetNotify(api.Notify)

	var wg sync.WaitGroup
	runErrs := make(chan error, 8)
	runner := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil && ctx.Err() == nil {
				runErrs <- fmt.Errorf("%s: %w", name, err)
				cancel()
			}
		}()
	}

	runner("core", core.Run)
	runner("rng-worker", rngWorker.Run)
	runner("symmetric-worker", symWorker.Run)
	runner("hash-worker", hashWorker.Run)
	runner("audit-log", auditLog.Run)
	runner("client-api", api.Run)

	go demo(ctx, api, logger)

	wg.Wait()
	close(runErrs)
	for err := range runErrs {
		return err
	}
	return nil
}

// demo exercises every request type once, logging each round trip. It's not
// load-bearing wiring; a real deployment drives api.Submit from its own
// client-facing transport instead.
func demo(ctx context.Context, api *client.API, logger *logiface.Logger[*izerolog.Event]) {
	time.Sleep(50 * time.Millisecond)

	const clientID = 0 // placeholder; the core stamps the real id on admission
	keyID := "demo-key"

	submit := func(req jobs.Request) jobs.Response {
		resp, err := api.Submit(ctx, req)
		if err != nil {
			logger.Err().Err(err).Log("demo: submit failed")
			return nil
		}
		return resp
	}

	submit(jobs.NewGenerateSymmetricKeyRequest(clientID, api.NextRequestID(), keyID, 32))

	nonce := make([]byte, 12)
	plaintext := []byte("sindri demo payload")
	encResp := submit(jobs.NewEncryptChaCha20Poly1305Request(clientID, api.NextRequestID(), keyID, nonce, plaintext, nil))
	if enc, ok := encResp.(jobs.EncryptChaCha20Poly1305Response); ok {
		submit(jobs.NewDecryptChaCha20Poly1305Request(clientID, api.NextRequestID(), keyID, nonce, enc.Ciphertext, nil))
	}

	submit(jobs.NewImportKeyRequest(clientID, api.NextRequestID(), "demo-imported-key", make([]byte, 32)))
	submit(jobs.NewGetRandomRequest(clientID, api.NextRequestID(), 16))
	submit(jobs.NewHashRequest(clientID, api.NextRequestID(), plaintext))
	submit(jobs.NewDeleteKeyRequest(clientID, api.NextRequestID(), keyID))
}
