package domain

import "errors"

// ErrUpstreamUnavailable marks an upstream lookup that failed before a
// record page could be read: transport errors, timeouts, non-2xx statuses.
// Resolution maps it deterministically to "unavailable".
var ErrUpstreamUnavailable = errors.New("upstream catalog unavailable")
