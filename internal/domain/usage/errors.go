package usage

import "errors"

var ErrInvalidPolicy = errors.New("invalid usage policy thresholds")
