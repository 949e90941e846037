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

package grpcx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

	"axisgate.dev/faultline/classifier"
	"axisgate.dev/faultline/validation"
)

func invoke(t *testing.T, handlerErr error) error {
	t.Helper()
	ic := UnaryServerInterceptor(classifier.New())
	_, err := ic(context.Background(), nil,
		&grpc.UnaryServerInfo{FullMethod: "/axisgate.v1.Gateway/Complete"},
		func(context.Context, any) (any, error) { return nil, handlerErr },
	)
	return err
}

func TestInterceptorPassesSuccessThrough(t *testing.T) {
	ic := UnaryServerInterceptor(classifier.New())
	resp, err := ic(context.Background(), nil,
		&grpc.UnaryServerInfo{FullMethod: "/m"},
		func(context.Context, any) (any, error) { return "ok", nil },
	)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestInterceptorClassifies(t *testing.T) {
	err := invoke(t, errors.New("token expired"))
	require.Error(t, err)

	st, ok := gstatus.FromError(err)
	require.True(t, ok)
	assert.Equal(t, gcodes.Unauthenticated, st.Code())

	info, ok := ExtractErrorInfo(err)
	require.True(t, ok)
	assert.Equal(t, "AUTHENTICATION_FAILED", info.Reason)
	assert.Equal(t, Domain, info.Domain)
	assert.Equal(t, "authentication_error", info.Metadata["category"])
}

func TestInterceptorRetryInfo(t *testing.T) {
	err := invoke(t, errors.New("rate limit exceeded"))

	st, _ := gstatus.FromError(err)
	assert.Equal(t, gcodes.ResourceExhausted, st.Code())

	ri, ok := ExtractRetryInfo(err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, ri.RetryDelay.AsDuration().Seconds(), 1.0)
}

func TestInterceptorBadRequestDetails(t *testing.T) {
	v := validation.New()
	rep := v.Validate(map[string]any{"model": "x"}, "chat_completion", nil)
	require.False(t, rep.Valid)

	err := invoke(t, &ValidationError{Report: rep})

	st, _ := gstatus.FromError(err)
	assert.Equal(t, gcodes.InvalidArgument, st.Code())

	var br *errdetails.BadRequest
	for _, d := range st.Details() {
		if b, ok := d.(*errdetails.BadRequest); ok {
			br = b
		}
	}
	require.NotNil(t, br)
	require.Len(t, br.FieldViolations, 1)
	assert.Equal(t, "messages", br.FieldViolations[0].Field)
}

func TestInterceptorPassesStatusErrorsThrough(t *testing.T) {
	original := gstatus.Error(gcodes.NotFound, "no such session")
	err := invoke(t, original)

	st, ok := gstatus.FromError(err)
	require.True(t, ok)
	assert.Equal(t, gcodes.NotFound, st.Code())
	_, hasInfo := ExtractErrorInfo(err)
	assert.False(t, hasInfo, "pre-built statuses are not rewritten")
}
