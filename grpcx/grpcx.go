/*
   Copyright 2026 The Axisgate Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package grpcx projects faultline classifications onto gRPC statuses.
//
// The unary interceptor classifies handler errors and returns a status
// carrying google.rpc error details: ErrorInfo with the stable code and
// category, RetryInfo when a retry delay is suggested, and BadRequest field
// violations when the error wraps a validation report.
package grpcx

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"

	"axisgate.dev/faultline"
	"axisgate.dev/faultline/apis"
	"axisgate.dev/faultline/validation"
)

// Domain identifies this error contract inside ErrorInfo details.
const Domain = "faultline.axisgate.dev"

// ValidationError adapts an invalid report to the error interface so
// handlers can return it through the normal error path and still get
// BadRequest details on the wire.
type ValidationError struct {
	Report *validation.Report
}

func (e *ValidationError) Error() string {
	return "request validation failed"
}

// statusError is the shape of errors that already carry a gRPC status.
type statusError interface {
	GRPCStatus() *gstatus.Status
}

// UnaryServerInterceptor classifies every handler error through cls and
// replaces it with a rich gRPC status. Errors that already carry a status
// pass through untouched; the handler made its own transport choice.
func UnaryServerInterceptor(cls apis.Classifier) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		var se statusError
		if errors.As(err, &se) {
			return nil, err
		}

		cl := cls.Classify(err, &faultline.ErrorContext{
			Endpoint: info.FullMethod,
		})

		st := gstatus.New(cl.Category.GRPCCode(), cl.Message)
		return nil, withDetails(st, cl, err).Err()
	}
}

// withDetails attaches the google.rpc detail messages for cl. Attachment is
// best effort; whatever attached so far goes out if a step fails.
func withDetails(st *gstatus.Status, cl *faultline.Classification, err error) *gstatus.Status {
	info := &errdetails.ErrorInfo{
		Reason: cl.Code,
		Domain: Domain,
		Metadata: map[string]string{
			"category": string(cl.Category),
			"severity": string(cl.Severity),
		},
	}
	if with, derr := st.WithDetails(info); derr == nil {
		st = with
	}

	if cl.RetryDelay > 0 {
		ri := &errdetails.RetryInfo{RetryDelay: durationpb.New(cl.RetryDelay)}
		if with, derr := st.WithDetails(ri); derr == nil {
			st = with
		}
	}

	var ve *ValidationError
	if errors.As(err, &ve) && ve.Report != nil {
		br := &errdetails.BadRequest{}
		for _, fe := range ve.Report.Errors {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       fe.Path,
				Description: fe.Message,
			})
		}
		if with, derr := st.WithDetails(br); derr == nil {
			st = with
		}
	}
	return st
}

// ExtractErrorInfo pulls the ErrorInfo detail out of a gRPC error, if
// present. Useful in tests and client code.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := gstatus.FromError(err)
	if err == nil || !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}

// ExtractRetryInfo pulls the RetryInfo detail out of a gRPC error, if
// present.
func ExtractRetryInfo(err error) (*errdetails.RetryInfo, bool) {
	st, ok := gstatus.FromError(err)
	if err == nil || !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if ri, ok := d.(*errdetails.RetryInfo); ok {
			return ri, true
		}
	}
	return nil, false
}
