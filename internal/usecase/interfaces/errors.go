package interfaces

import "errors"

// ErrConditionFailed is returned by repositories when a conditional write was
// rejected because the stored item no longer matches the expected state.
var ErrConditionFailed = errors.New("conditional write rejected")
