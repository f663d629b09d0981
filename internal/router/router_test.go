package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"medtracker/internal/ports/druginfo"
	"medtracker/internal/router"

	"github.com/rs/zerolog"
)

type stubFetcher struct {
	info  druginfo.Info
	err   error
	names []string
}

func (s *stubFetcher) Fetch(_ context.Context, name string) (druginfo.Info, error) {
	s.names = append(s.names, name)
	return s.info, s.err
}

func newServer(t *testing.T, fetcher druginfo.Fetcher) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Logger:   zerolog.Nop(),
		DrugInfo: fetcher,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_Medications_CRUD(t *testing.T) {
	ts := newServer(t, nil)

	// 1) Crear
	medID := createMedication(t, ts.URL, map[string]any{
		"name":               "Aspirin",
		"dosage_mg":          100,
		"prescribed_per_day": 2,
	})

	// 2) Listar
	{
		st, body := doReq(t, ts.URL, "GET", "/medications/", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing medications, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		mustDecode(t, body, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 medication, got %d", len(items))
		}
	}

	// 3) Obtener (sin registros => adherence 0)
	{
		st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get medication, got %d body=%s", st, string(body))
		}
		var m map[string]any
		mustDecode(t, body, &m)
		if m["name"] != "Aspirin" || m["adherence"] != 0.0 {
			t.Fatalf("unexpected medication: %#v", m)
		}
	}

	// 4) Reemplazar (ppd 0 se acepta)
	{
		st, body := doReq(t, ts.URL, "PUT", "/medications/"+medID+"/", map[string]any{
			"name":               "Aspirin Forte",
			"dosage_mg":          500,
			"prescribed_per_day": 4,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var m map[string]any
		mustDecode(t, body, &m)
		if m["prescribed_per_day"] != 4.0 || m["dosage_mg"] != 500.0 {
			t.Fatalf("unexpected updated medication: %#v", m)
		}
	}

	// 5) Eliminar
	{
		st, body := doReq(t, ts.URL, "DELETE", "/medications/"+medID+"/", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d body=%s", st, string(body))
		}
		if n := countItems(t, ts.URL, "/medications/"); n != 0 {
			t.Fatalf("expected 0 medications after delete, got %d", n)
		}
	}
}

func TestHTTP_Medications_InvalidDataOmitsPrescribedPerDay(t *testing.T) {
	ts := newServer(t, nil)

	st, body := doReq(t, ts.URL, "POST", "/medications/", map[string]any{
		"name":               "",
		"dosage_mg":          -10,
		"prescribed_per_day": 0,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}

	errs := decodeErrors(t, body)
	for _, f := range []string{"name", "dosage_mg"} {
		if _, ok := errs[f]; !ok {
			t.Fatalf("expected %q error, got %v", f, errs)
		}
	}
	if _, ok := errs["prescribed_per_day"]; ok {
		t.Fatalf("prescribed_per_day == 0 must not be reported, got %v", errs)
	}

	// Mismo contrato en PUT
	medID := createMedication(t, ts.URL, map[string]any{"name": "Aspirin", "dosage_mg": 100, "prescribed_per_day": 2})
	st, body = doReq(t, ts.URL, "PUT", "/medications/"+medID+"/", map[string]any{
		"name":               "",
		"dosage_mg":          0,
		"prescribed_per_day": 0,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 on update, got %d body=%s", st, string(body))
	}
	errs = decodeErrors(t, body)
	if _, ok := errs["prescribed_per_day"]; ok {
		t.Fatalf("prescribed_per_day == 0 must not be reported on update, got %v", errs)
	}
}

func TestHTTP_NotFound(t *testing.T) {
	ts := newServer(t, nil)

	missing := "00000000-0000-0000-0000-000000000000"
	cases := []struct{ method, path string }{
		{"GET", "/medications/" + missing + "/"},
		{"GET", "/medications/999/"},
		{"DELETE", "/medications/999/"},
		{"GET", "/medications/" + missing + "/expected-doses/?days=1"},
		{"GET", "/logs/999/"},
		{"DELETE", "/logs/" + missing + "/"},
		{"GET", "/doctors_notes/999/"},
		{"DELETE", "/doctors_notes/" + missing + "/"},
	}
	for _, c := range cases {
		st, body := doReq(t, ts.URL, c.method, c.path, nil)
		if st != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d body=%s", c.method, c.path, st, string(body))
		}
	}
}

func TestHTTP_ExpectedDoses(t *testing.T) {
	ts := newServer(t, nil)

	medID := createMedication(t, ts.URL, map[string]any{"name": "Aspirin", "dosage_mg": 100, "prescribed_per_day": 2})

	{
		st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/expected-doses/?days=2", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", st, string(body))
		}
		var out map[string]any
		mustDecode(t, body, &out)
		if out["medication_id"] != medID || out["days"] != 2.0 || out["expected_doses"] != 4.0 {
			t.Fatalf("unexpected expected-doses response: %#v", out)
		}
	}

	for _, q := range []string{"?days=-1", "", "?days=abc"} {
		st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/expected-doses/"+q, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("days%q: expected 400, got %d body=%s", q, st, string(body))
		}
		if _, ok := decodeErrors(t, body)["days"]; !ok {
			t.Fatalf("days%q: expected days error, got %s", q, string(body))
		}
	}

	// Desborde de prescribed_per_day * days => 400, nunca un número negativo
	{
		st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/expected-doses/?days=4611686018427387904", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for overflowing days, got %d body=%s", st, string(body))
		}
	}

	// ppd 0 se acepta al crear pero el cálculo lo rechaza => 400
	zeroID := createMedication(t, ts.URL, map[string]any{"name": "Placebo", "dosage_mg": 1, "prescribed_per_day": 0})
	st, body := doReq(t, ts.URL, "GET", "/medications/"+zeroID+"/expected-doses/?days=2", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for ppd 0, got %d body=%s", st, string(body))
	}
}

func TestHTTP_DoseLogs(t *testing.T) {
	ts := newServer(t, nil)

	medID := createMedication(t, ts.URL, map[string]any{"name": "Ibuprofen", "dosage_mg": 200, "prescribed_per_day": 3})

	// Crear (was_taken por defecto true)
	logID := createLog(t, ts.URL, map[string]any{
		"medication": medID,
		"taken_at":   "2025-12-01T08:00:00Z",
	})

	{
		st, body := doReq(t, ts.URL, "GET", "/logs/"+logID+"/", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get log, got %d body=%s", st, string(body))
		}
		var l map[string]any
		mustDecode(t, body, &l)
		if l["medication"] != medID || l["was_taken"] != true {
			t.Fatalf("unexpected log: %#v", l)
		}
	}

	// Inválido: medication null + taken_at roto; was_taken válido no se lista
	{
		st, body := doReq(t, ts.URL, "POST", "/logs/", map[string]any{
			"medication": nil,
			"taken_at":   "bad-date",
			"was_taken":  true,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", st, string(body))
		}
		errs := decodeErrors(t, body)
		if _, ok := errs["medication"]; !ok {
			t.Fatalf("expected medication error, got %v", errs)
		}
		if _, ok := errs["taken_at"]; !ok {
			t.Fatalf("expected taken_at error, got %v", errs)
		}
		if _, ok := errs["was_taken"]; ok {
			t.Fatalf("was_taken must not be listed, got %v", errs)
		}
	}

	// Referencia a medicamento inexistente
	{
		st, body := doReq(t, ts.URL, "POST", "/logs/", map[string]any{
			"medication": "00000000-0000-0000-0000-000000000000",
			"taken_at":   "2025-12-01T08:00:00Z",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown medication, got %d body=%s", st, string(body))
		}
		if _, ok := decodeErrors(t, body)["medication"]; !ok {
			t.Fatalf("expected medication error, got %s", string(body))
		}
	}

	// Update válido
	{
		st, body := doReq(t, ts.URL, "PUT", "/logs/"+logID+"/", map[string]any{
			"medication": medID,
			"taken_at":   "2025-12-01T09:00:00Z",
			"was_taken":  false,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var l map[string]any
		mustDecode(t, body, &l)
		if l["was_taken"] != false {
			t.Fatalf("expected was_taken false, got %#v", l)
		}
	}

	// Update inválido: los tres campos listados
	{
		st, body := doReq(t, ts.URL, "PUT", "/logs/"+logID+"/", map[string]any{
			"medication": nil,
			"taken_at":   "invalid-date",
			"was_taken":  "not-a-boolean",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 update, got %d body=%s", st, string(body))
		}
		errs := decodeErrors(t, body)
		for _, f := range []string{"medication", "taken_at", "was_taken"} {
			if _, ok := errs[f]; !ok {
				t.Fatalf("expected %q error, got %v", f, errs)
			}
		}
	}

	// Delete
	{
		st, body := doReq(t, ts.URL, "DELETE", "/logs/"+logID+"/", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204, got %d body=%s", st, string(body))
		}
		if n := countItems(t, ts.URL, "/logs/"); n != 0 {
			t.Fatalf("expected 0 logs, got %d", n)
		}
	}
}

func TestHTTP_LogsFilterAndAdherence(t *testing.T) {
	ts := newServer(t, nil)

	medID := createMedication(t, ts.URL, map[string]any{"name": "Aspirin", "dosage_mg": 100, "prescribed_per_day": 2})

	createLog(t, ts.URL, map[string]any{"medication": medID, "taken_at": "2025-12-01T08:00:00Z", "was_taken": true})
	createLog(t, ts.URL, map[string]any{"medication": medID, "taken_at": "2025-12-01T20:00:00Z", "was_taken": false})
	createLog(t, ts.URL, map[string]any{"medication": medID, "taken_at": "2025-12-03T08:00:00Z", "was_taken": true})

	// Adherencia histórica: 2 de 3
	{
		st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", st, string(body))
		}
		var m map[string]any
		mustDecode(t, body, &m)
		rate, _ := m["adherence"].(float64)
		if rate < 66.66 || rate > 66.67 {
			t.Fatalf("expected ~66.67 adherence, got %v", m["adherence"])
		}
	}

	// Filtro por fecha (inclusive)
	{
		st, body := doReq(t, ts.URL, "GET", "/logs/filter/?start=2025-12-01&end=2025-12-01", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 filter, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		mustDecode(t, body, &items)
		if len(items) != 2 {
			t.Fatalf("expected 2 logs on 2025-12-01, got %d", len(items))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/logs/filter/?start=2025-12-03&end=2025-12-01", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for inverted range, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/logs/filter/?start=yesterday", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad params, got %d body=%s", st, string(body))
		}
		errs := decodeErrors(t, body)
		if _, ok := errs["start"]; !ok {
			t.Fatalf("expected start error, got %v", errs)
		}
		if _, ok := errs["end"]; !ok {
			t.Fatalf("expected end error, got %v", errs)
		}
	}

	// Adherencia en período: 1 tomada / (2 ppd * 1 día) = 50
	{
		st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/adherence/?start=2025-12-01&end=2025-12-01", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 adherence, got %d body=%s", st, string(body))
		}
		var out map[string]any
		mustDecode(t, body, &out)
		if out["adherence"] != 50.0 {
			t.Fatalf("expected 50 adherence, got %#v", out)
		}
	}

	// Período sin registros => 0
	{
		st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/adherence/?start=2026-01-01&end=2026-01-05", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 adherence, got %d body=%s", st, string(body))
		}
		var out map[string]any
		mustDecode(t, body, &out)
		if out["adherence"] != 0.0 {
			t.Fatalf("expected 0 adherence, got %#v", out)
		}
	}

	// Rango invertido => 400
	st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/adherence/?start=2025-12-05&end=2025-12-01", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d body=%s", st, string(body))
	}
}

func TestHTTP_DoctorsNotes(t *testing.T) {
	ts := newServer(t, nil)

	medID := createMedication(t, ts.URL, map[string]any{"name": "Aspirin", "dosage_mg": 100, "prescribed_per_day": 2})

	var noteID string
	{
		st, body := doReq(t, ts.URL, "POST", "/doctors_notes/", map[string]any{
			"medication": medID,
			"content":    "Take with food.",
			"created_at": "1999-01-01T00:00:00Z",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create note, got %d body=%s", st, string(body))
		}
		var n map[string]any
		mustDecode(t, body, &n)
		noteID, _ = n["id"].(string)
		if noteID == "" || n["content"] != "Take with food." || n["medication"] != medID {
			t.Fatalf("unexpected note: %#v", n)
		}
		if n["created_at"] == "1999-01-01T00:00:00Z" {
			t.Fatalf("created_at must be set by the server")
		}
	}

	// Faltan campos
	{
		st, body := doReq(t, ts.URL, "POST", "/doctors_notes/", map[string]any{})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", st, string(body))
		}
		errs := decodeErrors(t, body)
		if _, ok := errs["medication"]; !ok {
			t.Fatalf("expected medication error, got %v", errs)
		}
		if _, ok := errs["content"]; !ok {
			t.Fatalf("expected content error, got %v", errs)
		}
	}

	// Medicamento inexistente
	{
		st, body := doReq(t, ts.URL, "POST", "/doctors_notes/", map[string]any{
			"medication": "00000000-0000-0000-0000-000000000000",
			"content":    "x",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", st, string(body))
		}
	}

	// Get / list
	{
		st, body := doReq(t, ts.URL, "GET", "/doctors_notes/"+noteID+"/", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get note, got %d body=%s", st, string(body))
		}
		if n := countItems(t, ts.URL, "/doctors_notes/"); n != 1 {
			t.Fatalf("expected 1 note, got %d", n)
		}
	}

	// Las notas no se editan
	for _, method := range []string{"PUT", "PATCH"} {
		st, body := doReq(t, ts.URL, method, "/doctors_notes/"+noteID+"/", map[string]any{"content": "changed"})
		if st != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405 on %s, got %d body=%s", method, st, string(body))
		}
	}

	// Delete
	st, body := doReq(t, ts.URL, "DELETE", "/doctors_notes/"+noteID+"/", nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", st, string(body))
	}
	if n := countItems(t, ts.URL, "/doctors_notes/"); n != 0 {
		t.Fatalf("expected 0 notes, got %d", n)
	}
}

func TestHTTP_DeleteMedicationCascades(t *testing.T) {
	ts := newServer(t, nil)

	medID := createMedication(t, ts.URL, map[string]any{"name": "Aspirin", "dosage_mg": 100, "prescribed_per_day": 2})
	otherID := createMedication(t, ts.URL, map[string]any{"name": "Ibuprofen", "dosage_mg": 200, "prescribed_per_day": 1})

	for i := 0; i < 3; i++ {
		createLog(t, ts.URL, map[string]any{"medication": medID, "taken_at": fmt.Sprintf("2025-12-0%dT08:00:00Z", i+1)})
	}
	createLog(t, ts.URL, map[string]any{"medication": otherID, "taken_at": "2025-12-01T08:00:00Z"})

	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "POST", "/doctors_notes/", map[string]any{"medication": medID, "content": "note"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 note, got %d body=%s", st, string(body))
		}
	}

	st, body := doReq(t, ts.URL, "DELETE", "/medications/"+medID+"/", nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", st, string(body))
	}

	if n := countItems(t, ts.URL, "/logs/"); n != 1 {
		t.Fatalf("expected only the other medication's log to remain, got %d", n)
	}
	if n := countItems(t, ts.URL, "/doctors_notes/"); n != 0 {
		t.Fatalf("expected 0 notes after cascade, got %d", n)
	}
}

func TestHTTP_DrugInfo(t *testing.T) {
	fetcher := &stubFetcher{info: druginfo.Info{
		Name:         "Ibuprofen",
		Manufacturer: "McKesson",
		Warnings:     []string{"Keep out of reach of children."},
		Purpose:      []string{"Pain reliever"},
	}}
	ts := newServer(t, fetcher)

	medID := createMedication(t, ts.URL, map[string]any{"name": "Ibuprofen", "dosage_mg": 200, "prescribed_per_day": 3})

	st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/info/", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 info, got %d body=%s", st, string(body))
	}
	var info druginfo.Info
	mustDecode(t, body, &info)
	if info.Manufacturer != "McKesson" || len(info.Warnings) != 1 {
		t.Fatalf("unexpected info: %#v", info)
	}
	if len(fetcher.names) != 1 || fetcher.names[0] != "Ibuprofen" {
		t.Fatalf("expected lookup by medication name, got %v", fetcher.names)
	}

	// Falla externa => 502, no 500
	failing := newServer(t, &stubFetcher{err: fmt.Errorf("%w: upstream status 500", druginfo.ErrLookup)})
	failID := createMedication(t, failing.URL, map[string]any{"name": "Ibuprofen", "dosage_mg": 200, "prescribed_per_day": 3})
	st, body = doReq(t, failing.URL, "GET", "/medications/"+failID+"/info/", nil)
	if st != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d body=%s", st, string(body))
	}

	// Sin fetcher configurado => 502
	bare := newServer(t, nil)
	bareID := createMedication(t, bare.URL, map[string]any{"name": "Ibuprofen", "dosage_mg": 200, "prescribed_per_day": 3})
	st, _ = doReq(t, bare.URL, "GET", "/medications/"+bareID+"/info/", nil)
	if st != http.StatusBadGateway {
		t.Fatalf("expected 502 without fetcher, got %d", st)
	}
}

func TestHTTP_HealthAndTrailingSlash(t *testing.T) {
	ts := newServer(t, nil)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health response %d %q", st, string(body))
	}

	for _, p := range []string{"/medications", "/medications/", "/logs", "/logs/", "/doctors_notes", "/doctors_notes/"} {
		st, body := doReq(t, ts.URL, "GET", p, nil)
		if st != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d body=%s", p, st, string(body))
		}
	}
}

// ---------- helpers ----------

func createMedication(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/medications/", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create medication, got %d body=%s", st, string(body))
	}
	return idFrom(t, body)
}

func createLog(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/logs/", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create log, got %d body=%s", st, string(body))
	}
	return idFrom(t, body)
}

func countItems(t *testing.T, baseURL, path string) int {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing %s, got %d body=%s", path, st, string(body))
	}
	var items []map[string]any
	mustDecode(t, body, &items)
	return len(items)
}

func idFrom(t *testing.T, body []byte) string {
	t.Helper()

	var out map[string]any
	mustDecode(t, body, &out)
	id, _ := out["id"].(string)
	if id == "" {
		t.Fatalf("missing id in response: %s", string(body))
	}
	return id
}

func decodeErrors(t *testing.T, body []byte) map[string][]string {
	t.Helper()

	var errs map[string][]string
	mustDecode(t, body, &errs)
	return errs
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode json: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
