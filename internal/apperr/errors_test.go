package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_IsAndKind(t *testing.T) {
	err := fmt.Errorf("保存失败: %w", Persistence("insert artifact", errors.New("disk full")))

	if !IsKind(err, KindPersistence) {
		t.Error("IsKind(err, persistence) = false, want true")
	}
	if IsKind(err, KindValidation) {
		t.Error("IsKind(err, validation) = true, want false")
	}
	if errors.Unwrap(errors.Unwrap(err)).Error() != "disk full" {
		t.Error("底层错误应可通过 Unwrap 取得")
	}
	if KindOf(err) != KindPersistence {
		t.Errorf("KindOf = %s, want persistence", KindOf(err))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("普通错误不应有分类")
	}
}

func TestError_Message(t *testing.T) {
	err := SchemaViolation("personas[0].painPoints", "required field missing")
	want := "schema_violation: personas[0].painPoints: required field missing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("ad1", "required"), http.StatusBadRequest},
		{Unauthenticated("login required"), http.StatusUnauthorized},
		{NotEntitled("trial used"), http.StatusPaymentRequired},
		{NotFound("artifact"), http.StatusNotFound},
		{MalformedResponse("no json", nil), http.StatusBadGateway},
		{SchemaViolation("x", "y"), http.StatusBadGateway},
		{ProviderUnavailable("timeout", nil), http.StatusServiceUnavailable},
		{Persistence("db", nil), http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
