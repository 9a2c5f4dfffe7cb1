package hsm

import "github.com/esrlabs/sindri/jobs"

// logForward emits a Debug record for a successfully forwarded request or
// response. c.logger is nil-safe: every method on a nil *Logger is a no-op,
// so callers never need to guard on WithLogger having been called.
func (c *Core) logForward(direction string, clientID jobs.ClientID, t jobs.RequestType) {
	c.logger.Debug().
		Str("direction", direction).
		Int("client_id", int(clientID)).
		Stringer("request_type", t).
		Log("forwarded")
}

// logResponse emits a Debug record for a successfully forwarded response.
// Response carries no RequestType of its own (only the request that
// produced it does), so this is logged distinctly from logForward.
func (c *Core) logResponse(clientID jobs.ClientID) {
	c.logger.Debug().
		Str("direction", "response").
		Int("client_id", int(clientID)).
		Log("forwarded")
}

// logClass1 emits an Error record for a recoverable (class 1) failure,
// answered to the client as an ErrorResponse rather than halting the core.
func (c *Core) logClass1(clientID jobs.ClientID, t jobs.RequestType, err error) {
	c.logger.Err().
		Int("client_id", int(clientID)).
		Stringer("request_type", t).
		Err(err).
		Log("request failed")
}

// logFatal emits an Emerg record immediately before Run returns a class-3
// error and halts the core.
func (c *Core) logFatal(err error) {
	c.logger.Emerg().
		Err(err).
		Log("dispatch core halted")
}
