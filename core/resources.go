package core

import (
	"io"

	"github.com/hashicorp/go-multierror"
)

// closeResource merges a close failure into the named error of the caller.
func closeResource(closer io.Closer, err *error) {
	if closeErr := closer.Close(); closeErr != nil {
		if *err == nil {
			*err = closeErr
		} else {
			*err = multierror.Append(*err, closeErr)
		}
	}
}
