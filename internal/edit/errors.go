package edit

import "errors"

// ErrBlockOperationNoMark covers both spec.md §7 cases that share one
// error kind: copy/cut without a valid mark, and paste with an empty
// clipboard.
var ErrBlockOperationNoMark = errors.New("no marked block")
