package export

import "errors"

var ErrDuplicateFilename = errors.New("duplicate export filename")
var ErrNothingToExport = errors.New("no valid scoreboards found for the selected voting system")
var ErrRenderFailed = errors.New("render failed")
