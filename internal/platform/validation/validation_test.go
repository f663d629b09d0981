package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrors_ErrNilWhenEmpty(t *testing.T) {
	errs := Errors{}
	if errs.Err() != nil {
		t.Fatalf("expected nil error for empty Errors")
	}

	errs.Add("name", MsgBlank)
	err := errs.Err()
	if err == nil {
		t.Fatalf("expected non-nil error")
	}

	var got Errors
	if !errors.As(err, &got) || !got.Has("name") {
		t.Fatalf("expected errors.As to recover field errors, got %#v", err)
	}
}

func TestErrors_MergeAndWrite(t *testing.T) {
	errs := Errors{}
	errs.Add("taken_at", MsgDatetime)
	errs.Merge(Errors{"medication": {MsgRequired}, "taken_at": {MsgRequired}})
	errs.Merge(nil)

	rec := httptest.NewRecorder()
	errs.Write(rec)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if len(body["taken_at"]) != 1 || len(body["medication"]) != 1 {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestErrors_ErrorIsStable(t *testing.T) {
	errs := Errors{"b": {"two"}, "a": {"one"}}
	want := "validation failed: a: one; b: two"
	if errs.Error() != want {
		t.Fatalf("expected %q, got %q", want, errs.Error())
	}
}
