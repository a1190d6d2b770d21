package api

import (
	"errors"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"

	"github.com/dmitrijs2005/crickshots/internal/common"
)

// ErrorDomain tags the ErrorInfo details attached to storefront statuses.
const ErrorDomain = "crickshots"

type reasonEntry struct {
	err    error
	reason string
	code   codes.Code
	// field is reported as a BadRequest violation for InvalidArgument
	field string
}

// order matters: the first entry matching via errors.Is wins
var reasonTable = []reasonEntry{
	{common.ErrUserNotFound, "USER_NOT_FOUND", codes.NotFound, ""},
	{common.ErrInvalidCredentials, "INVALID_CREDENTIALS", codes.Unauthenticated, ""},
	{common.ErrPasswordMismatch, "PASSWORD_MISMATCH", codes.InvalidArgument, "confirm_password"},
	{common.ErrWeakPassword, "WEAK_PASSWORD", codes.InvalidArgument, "password"},
	{common.ErrMissingField, "MISSING_FIELD", codes.InvalidArgument, ""},
	{common.ErrDuplicateUser, "DUPLICATE_USER", codes.AlreadyExists, ""},
	{common.ErrTokenExpired, "TOKEN_EXPIRED", codes.Unauthenticated, ""},
	{common.ErrRefreshTokenExpired, "REFRESH_TOKEN_EXPIRED", codes.Unauthenticated, ""},
	{common.ErrInvalidToken, "INVALID_TOKEN", codes.Unauthenticated, ""},
	{common.ErrorUnauthorized, "UNAUTHORIZED", codes.Unauthenticated, ""},
	{common.ErrEmptyCart, "EMPTY_CART", codes.InvalidArgument, "image_ids"},
	{common.ErrInvalidPaymentMethod, "INVALID_PAYMENT_METHOD", codes.InvalidArgument, "method"},
	{common.ErrInvalidUPIID, "INVALID_UPI_ID", codes.InvalidArgument, "upi_id"},
	{common.ErrorNotFound, "NOT_FOUND", codes.NotFound, ""},
}

// ToStatus converts a service error into a gRPC status error. Known
// sentinels keep their message and carry an ErrorInfo reason; everything
// else becomes a bare Internal.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	for _, e := range reasonTable {
		if !errors.Is(err, e.err) {
			continue
		}
		st := status.New(e.code, err.Error())
		details := []protoadapt.MessageV1{&errdetails.ErrorInfo{Reason: e.reason, Domain: ErrorDomain}}
		if e.code == codes.InvalidArgument {
			details = append(details, badRequest(e, err))
		}
		if detailed, derr := st.WithDetails(details...); derr == nil {
			st = detailed
		}
		return st.Err()
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func badRequest(e reasonEntry, err error) *errdetails.BadRequest {
	field := e.field
	if field == "" {
		// "required field is missing: email" names its own field
		field = strings.TrimPrefix(err.Error(), e.err.Error()+": ")
	}
	return &errdetails.BadRequest{FieldViolations: []*errdetails.BadRequest_FieldViolation{
		{Field: field, Description: err.Error()},
	}}
}

// FieldViolations lists the BadRequest violations attached to st.
func FieldViolations(st *status.Status) []*errdetails.BadRequest_FieldViolation {
	var out []*errdetails.BadRequest_FieldViolation
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			out = append(out, br.GetFieldViolations()...)
		}
	}
	return out
}

// remoteError keeps the server's message while matching the local sentinel.
type remoteError struct {
	msg   string
	cause error
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.cause }

// FromStatus is the client-side inverse of ToStatus. Statuses without a
// known reason are returned unchanged, except bare Unauthenticated which
// maps to common.ErrorUnauthorized.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.OK {
		return err
	}

	if reason := Reason(st); reason != "" {
		for _, e := range reasonTable {
			if e.reason != reason {
				continue
			}
			if st.Message() == e.err.Error() {
				return e.err
			}
			return &remoteError{msg: st.Message(), cause: e.err}
		}
	}

	switch st.Code() {
	case codes.Unauthenticated:
		return &remoteError{msg: st.Message(), cause: common.ErrorUnauthorized}
	case codes.Internal:
		return &remoteError{msg: st.Message(), cause: common.ErrorInternal}
	}
	return err
}

// Reason returns the storefront ErrorInfo reason attached to st, if any.
func Reason(st *status.Status) string {
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return info.GetReason()
		}
	}
	return ""
}
