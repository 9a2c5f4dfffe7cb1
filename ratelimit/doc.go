// Package ratelimit implements hsm.RateLimiter as a per-client sliding
// window submission throttle, a supplemental admission-control measure the
// dispatch core consults before forwarding a client's head request to a
// worker. Key-store requests are not throttled.
package ratelimit
