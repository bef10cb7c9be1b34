package apierr

import (
	"errors"
	"net/http"
	"testing"

	domainagg "github.com/yungbote/productflow-backend/internal/domain/aggregates"
)

func TestFromErrorMapsAggregateCodes(t *testing.T) {
	cases := []struct {
		code   domainagg.ErrorCode
		status int
		msg    string
	}{
		{domainagg.CodeNotFound, http.StatusNotFound, "product missing"},
		{domainagg.CodeConflict, http.StatusConflict, "overlap"},
		{domainagg.CodeInvalidRequest, http.StatusBadRequest, "bad photo"},
		{domainagg.CodeInternal, http.StatusInternalServerError, "internal error"},
	}
	for _, tc := range cases {
		err := domainagg.NewError(tc.code, "Products.Product.Update", tc.msg, errors.New("driver said no"))
		got := FromError(err)
		if got.Status != tc.status || got.Code != string(tc.code) {
			t.Fatalf("%s: got status=%d code=%q", tc.code, got.Status, got.Code)
		}
		if got.Error() != tc.msg {
			t.Fatalf("%s: message=%q want %q", tc.code, got.Error(), tc.msg)
		}
	}
}

func TestFromErrorUntypedIsInternal(t *testing.T) {
	got := FromError(errors.New("boom"))
	if got.Status != http.StatusInternalServerError {
		t.Fatalf("status=%d", got.Status)
	}
	if got.Error() == "boom" {
		t.Fatalf("internal detail leaked")
	}
	if FromError(nil) != nil {
		t.Fatalf("nil error should map to nil")
	}
}

func TestFromErrorPassesAPIErrorThrough(t *testing.T) {
	in := New(http.StatusRequestEntityTooLarge, "too_large", errors.New("file too large"))
	if got := FromError(in); got != in {
		t.Fatalf("expected passthrough, got %+v", got)
	}
}
