package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// describeFailure converts a request error into an outcome string that
// identifies the failure category and message. The *url.Error wrapper
// added by net/http is stripped first so the category reflects the
// underlying cause.
func describeFailure(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		err = uerr.Err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("timeout: %v", err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Sprintf("timeout: %v", err)
	}
	var operr *net.OpError
	if errors.As(err, &operr) {
		return fmt.Sprintf("connection: %v", operr)
	}

	// Unexpected failure classes (TLS handshake, protocol errors, ...)
	// keep their Go type so the caller can tell them apart.
	return fmt.Sprintf("%T: %v", err, err)
}
