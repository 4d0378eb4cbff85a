package errors

import "fmt"

type Managed struct {
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

type FunctionalError struct {
	Managed
}

type ConflictError struct {
	Managed
}

type TechnicalError struct {
	Managed
}

type ResourceNotFoundError struct {
	Managed
}

type ForbiddenError struct {
	Managed
}

type UnauthorizedError struct {
	Managed
}

type OriginNotAllowedError struct {
	Managed
}

func (e *Managed) Error() string {
	return fmt.Sprintf("Managed %s", e.Message)
}

// ---------------------------------------------------------------------------------------------------------------------

// Functional error
func Functional(message string, details ...any) error {
	return &FunctionalError{Managed{Kind: "error.functional", Message: message, Details: getDetails(details...)}}
}

func (e *FunctionalError) Error() string {
	return fmt.Sprintf("FunctionalError %s", e.Message)
}

// ---------------------------------------------------------------------------------------------------------------------

// Technical error
func Technical(message string, details ...any) error {
	return &TechnicalError{Managed{Kind: "error.technical", Message: message, Details: getDetails(details...)}}
}

func (e *TechnicalError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("TechnicalError %s: %v", e.Message, e.Details)
	}
	return fmt.Sprintf("TechnicalError %s", e.Message)
}

// ---------------------------------------------------------------------------------------------------------------------

// ResourceNotFound error
func ResourceNotFound(message string, details ...any) error {
	return &ResourceNotFoundError{Managed{Kind: "error.resource_not_found", Message: message, Details: getDetails(details...)}}
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("ResourceNotFoundError %s", e.Message)
}

// ---------------------------------------------------------------------------------------------------------------------

// Forbidden error
func Forbidden(message string, details ...any) error {
	return &ForbiddenError{Managed{Kind: "error.forbidden", Message: message, Details: getDetails(details...)}}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("ForbiddenError %s", e.Message)
}

// ---------------------------------------------------------------------------------------------------------------------

// Unauthorized error
func Unauthorized(message string, details ...any) error {
	return &UnauthorizedError{Managed{Kind: "error.unauthorized", Message: message, Details: getDetails(details...)}}
}

func (e *UnauthorizedError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("UnauthorizedError %s: %v", e.Message, e.Details)
	}
	return fmt.Sprintf("UnauthorizedError %s", e.Message)
}

// ---------------------------------------------------------------------------------------------------------------------

// Conflict error
func Conflict(message string, details ...any) error {
	return &ConflictError{Managed{Kind: "error.conflict", Message: message, Details: getDetails(details...)}}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Conflict %s", e.Message)
}

// ---------------------------------------------------------------------------------------------------------------------

// OriginNotAllowed is raised by the request pipeline before any other stage runs.
// A missing origin header and a non allow-listed origin share the same kind.
func OriginNotAllowed(details ...any) error {
	return &OriginNotAllowedError{Managed{Kind: "error.origin_not_allowed", Message: "origin_not_allowed", Details: getDetails(details...)}}
}

func (e *OriginNotAllowedError) Error() string {
	return fmt.Sprintf("OriginNotAllowedError %s", e.Message)
}

// ---------------------------------------------------------------------------------------------------------------------
// Authentication/authorization taxonomy. All of these are terminal for the request.

func RouteNotFound(details ...any) error {
	return ResourceNotFound("route_not_found", details...)
}

func BadRequest(message string, details ...any) error {
	return Functional(message, details...)
}

func InvalidCredentials(details ...any) error {
	return Unauthorized("invalid_credentials", details...)
}

func InvalidToken(details ...any) error {
	return Unauthorized("invalid_token", details...)
}

func UnknownSubject() error {
	return Unauthorized("unknown_subject")
}

func ClientInvalid() error {
	return Unauthorized("client_invalid")
}

// TokenSigning is a server fault. The cause stays in Details for the boundary
// log; the response never carries it.
func TokenSigning(details ...any) error {
	return Technical("token_signing_error", details...)
}

func NotAllowedAccess() error {
	return Forbidden("not_allowed_access")
}

// ---------------------------------------------------------------------------------------------------------------------

func getDetails(details ...any) any {
	if len(details) == 0 {
		return nil
	}
	return details[0]
}
