package errors

import (
	"errors"
	"fmt"
)

// ErrorType은 에러의 종류를 나타냅니다
type ErrorType string

const (
	// ErrorTypeValidation은 유효성 검증 실패를 나타냅니다
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound는 디바이스 노드를 찾을 수 없음을 나타냅니다
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypePermission은 디바이스 접근 권한이 없음을 나타냅니다
	ErrorTypePermission ErrorType = "PERMISSION"

	// ErrorTypeDevice는 제어 요청(ioctl) 또는 디바이스 읽기 실패를 나타냅니다
	ErrorTypeDevice ErrorType = "DEVICE"

	// ErrorTypeShortRead는 요청한 바이트보다 적게 읽혔음을 나타냅니다
	ErrorTypeShortRead ErrorType = "SHORT_READ"

	// ErrorTypeSystem은 시스템 레벨 에러를 나타냅니다
	ErrorTypeSystem ErrorType = "SYSTEM"
)

// DomainError는 도메인 레벨의 에러를 나타냅니다
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error는 error 인터페이스를 구현합니다
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap은 내부 에러를 반환합니다
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is는 에러 비교를 위한 메서드입니다
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// 생성자 함수들

// NewValidationError는 유효성 검증 에러를 생성합니다
func NewValidationError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError는 디바이스를 찾을 수 없는 에러를 생성합니다
func NewNotFoundError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Cause:   cause,
	}
}

// NewPermissionError는 권한 에러를 생성합니다
func NewPermissionError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypePermission,
		Message: message,
		Cause:   cause,
	}
}

// NewDeviceError는 디바이스 제어 에러를 생성합니다
func NewDeviceError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeDevice,
		Message: message,
		Cause:   cause,
	}
}

// NewShortReadError는 읽기 부족 에러를 생성합니다
func NewShortReadError(want, got int, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeShortRead,
		Message: fmt.Sprintf("short read: wanted %d bytes, got %d", want, got),
		Cause:   cause,
	}
}

// NewSystemError는 시스템 에러를 생성합니다
func NewSystemError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeSystem,
		Message: message,
		Cause:   cause,
	}
}

// 에러 타입 확인 헬퍼 함수들

func hasType(err error, errType ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == errType
	}
	return false
}

// IsValidationError는 유효성 검증 에러인지 확인합니다
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsNotFoundError는 디바이스를 찾을 수 없는 에러인지 확인합니다
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsPermissionError는 권한 에러인지 확인합니다
func IsPermissionError(err error) bool {
	return hasType(err, ErrorTypePermission)
}

// IsDeviceError는 디바이스 제어 에러인지 확인합니다
func IsDeviceError(err error) bool {
	return hasType(err, ErrorTypeDevice)
}

// IsShortReadError는 읽기 부족 에러인지 확인합니다
func IsShortReadError(err error) bool {
	return hasType(err, ErrorTypeShortRead)
}

// IsSystemError는 시스템 에러인지 확인합니다
func IsSystemError(err error) bool {
	return hasType(err, ErrorTypeSystem)
}

// TypeOf는 에러의 ErrorType을 반환합니다. DomainError가 아니면 빈 문자열입니다.
func TypeOf(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}
