package onboarding

import (
	"errors"
	"fmt"

	pkgerrors "VendorHub/pkg/errors"
)

var (
	// ErrBusy 网络请求进行中，其他操作被拒绝
	ErrBusy           = errors.New("onboarding: request in flight")
	ErrCompleted      = errors.New("onboarding: flow already completed")
	ErrStepInvalid    = errors.New("onboarding: step is not valid")
	ErrEmailTaken     = errors.New("onboarding: email already registered")
	ErrFieldNotOnStep = errors.New("onboarding: field does not belong to the current step")
	ErrUnknownService = errors.New("onboarding: service not offered by the selected business")
	ErrBlankService   = errors.New("onboarding: service name is empty")
)

// ValidationError 当前步骤的字段错误
type ValidationError struct {
	Fields pkgerrors.FieldErrors
	Step   Step
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("onboarding: %s step invalid: %s", e.Step, e.Fields.Error())
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrStepInvalid
}

func (e *ValidationError) Unwrap() error {
	return e.Fields
}

func newValidationError(step Step, err error) error {
	var fields pkgerrors.FieldErrors
	if !errors.As(err, &fields) {
		return err
	}
	return &ValidationError{Step: step, Fields: fields}
}

// SubmitErrorKind 注册失败的类别
type SubmitErrorKind int

const (
	// KindNetwork 请求没有拿到服务端响应
	KindNetwork SubmitErrorKind = iota + 1
	// KindRejected 服务端返回了错误响应
	KindRejected
)

func (k SubmitErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// SubmitError 最后一步注册失败，流程停留在第五步
type SubmitError struct {
	Err  error
	Kind SubmitErrorKind
}

func newSubmitError(err error) *SubmitError {
	var remote *pkgerrors.RemoteError
	if errors.As(err, &remote) {
		return &SubmitError{Kind: KindRejected, Err: err}
	}
	return &SubmitError{Kind: KindNetwork, Err: err}
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("onboarding: registration failed (%s): %v", e.Kind, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Reason 展示给用户的失败原因
func (e *SubmitError) Reason() string {
	if e.Kind == KindNetwork {
		return "Network error"
	}
	var remote *pkgerrors.RemoteError
	if errors.As(e.Err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return "Unknown error"
}
