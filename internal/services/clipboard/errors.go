package clipboard

import "errors"

// ErrUnsupported reports a platform without a usable clipboard.
var ErrUnsupported = errors.New("clipboard is not supported on this system")
