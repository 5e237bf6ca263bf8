package storage

import "errors"

// ErrObjectNotFound 对象不存在
var ErrObjectNotFound = errors.New("object not found")
