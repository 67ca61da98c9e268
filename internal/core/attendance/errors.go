package attendance

import "errors"

var (
	ErrInvalidUserID          = errors.New("attendance: invalid user id")
	ErrInvalidName            = errors.New("attendance: invalid name")
	ErrInvalidDepartment      = errors.New("attendance: invalid department")
	ErrInvalidClockIn         = errors.New("attendance: invalid clock-in time")
	ErrInvalidDate            = errors.New("attendance: invalid date")
	ErrInvalidStatus          = errors.New("attendance: invalid status")
	ErrInvalidID              = errors.New("attendance: invalid record id")
	ErrMissingRecordID        = errors.New("attendance: record has no persisted id")
	ErrNoActiveSession        = errors.New("attendance: no active session")
	ErrRecordNotFound         = errors.New("attendance: record not found")
	ErrMultipleActiveSessions = errors.New("attendance: multiple active sessions observed")
	ErrEmptyUpdate            = errors.New("attendance: update contains no fields")
)
