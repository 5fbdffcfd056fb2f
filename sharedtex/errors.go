package sharedtex

import "errors"

// ErrUnsupportedFormat is returned when a caller requests a pixel format
// none of the three platform backends can express.
var ErrUnsupportedFormat = errors.New("sharedtex: unsupported texture format")
