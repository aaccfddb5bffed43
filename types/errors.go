package types

import (
	"errors"
	"fmt"
)

// 录入校验错误
var (
	ErrDuplicateNode = errors.New("node already exists")
	ErrMissingNode   = errors.New("node does not exist")
	ErrSameNode      = errors.New("endpoints must be different nodes")
	ErrNonPositive   = errors.New("value must be positive")
	ErrNodeInUse     = errors.New("node is referenced")
	ErrUnknownType   = errors.New("unknown element type")
	ErrDuplicateName = errors.New("name already used")
	ErrEmptyNetwork  = errors.New("no components or sources to analyze")
)

// ValidationError 录入时被拒绝的实体
type ValidationError struct {
	Op    string // 操作, 如 "add component"
	Field string // 出错字段或节点名
	Err   error  // 具体原因
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(op, field string, err error) error {
	return &ValidationError{Op: op, Field: field, Err: err}
}
