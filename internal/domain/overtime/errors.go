package overtime

import "errors"

var ErrOvertimeNotFound = errors.New("Overtime record not found")
