package report

import "errors"

var (
	ErrInvalidBackup      = errors.New("backup file is not valid")
	ErrUnsupportedVersion = errors.New("unsupported backup version")
)
