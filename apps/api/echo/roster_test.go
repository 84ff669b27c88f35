package echoapi

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/lophoc/roster/core"
	"github.com/lophoc/roster/core/roster"
	emailsvc "github.com/lophoc/roster/services/email"
	logsvc "github.com/lophoc/roster/services/logger"
	"github.com/lophoc/roster/storage/database/inmem"
)

func newTestServer(t *testing.T) (Server, *inmem.AccountRepository) {
	t.Helper()

	conf := &core.Config{AppName: "Roster", Env: "TEST", TestMode: true, ClassYear: 2024}
	repo := inmem.NewAccountRepository()
	logger := logsvc.NewConsoleLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	svc := roster.NewService(repo, emailsvc.NewDummyService(), conf, logger)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	srv := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		RosterSvc:  svc,
		Validate:   validate,
		Translator: translator,
	})
	return srv, repo
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonEqual(t *testing.T, got []byte, want interface{}) {
	t.Helper()
	var j1, j2 interface{}
	if err := json.Unmarshal(got, &j1); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if err := json.Unmarshal(marshallObj(t, want), &j2); err != nil {
		t.Fatalf("unmarshalling expected: %v", err)
	}
	if !reflect.DeepEqual(j1, j2) {
		t.Errorf("failed! data = %s; want %s", got, marshallObj(t, want))
	}
}

func Test_home(t *testing.T) {
	srv, _ := newTestServer(t)

	req, rec := newRequest(http.MethodGet, "/")
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("code = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "Welcome to Roster API!" {
		t.Errorf("body = %q", got)
	}
}

func Test_rosterProcess(t *testing.T) {
	srv, repo := newTestServer(t)

	body := marshallObj(t, ProcessRosterRequest{
		SchoolPrefix: "hy",
		Rows: []roster.Row{
			{FullName: "Nguyễn Văn A", Grade: "1A"},
			{FullName: "Trần Hùng", Grade: "1A", BirthDate: "23-May-19"},
		},
	})
	req, rec := newRequest(http.MethodPost, "/v1/roster/process", body)
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var batch roster.Batch
	if err := json.Unmarshal(rec.Body.Bytes(), &batch); err != nil {
		t.Fatalf("unmarshalling batch: %v", err)
	}
	if len(batch.Students) != 2 {
		t.Fatalf("got %d students, want 2", len(batch.Students))
	}
	if uname := batch.Students[0].Username; uname != "hyvanan" {
		t.Errorf("Students[0].Username = %s, want hyvanan", uname)
	}
	if bd := batch.Students[1].BirthDate; bd != "23/05/2019" {
		t.Errorf("Students[1].BirthDate = %s, want 23/05/2019", bd)
	}
	if len(batch.Teachers) != 2 { // grade 1A + the general account
		t.Errorf("got %d teachers, want 2", len(batch.Teachers))
	}

	if n := len(repo.Batches()); n != 1 {
		t.Errorf("saved %d batches, want 1", n)
	}
}

func Test_rosterProcess_dryRun(t *testing.T) {
	srv, repo := newTestServer(t)

	body := marshallObj(t, ProcessRosterRequest{
		SchoolPrefix: "hy",
		Rows:         []roster.Row{{FullName: "Nguyễn Văn A", Grade: "1A"}},
		DryRun:       true,
	})
	req, rec := newRequest(http.MethodPost, "/v1/roster/process", body)
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if n := len(repo.Batches()); n != 0 {
		t.Errorf("saved %d batches, want 0", n)
	}
}

func Test_rosterProcess_existingIdentifiers(t *testing.T) {
	srv, _ := newTestServer(t)

	body := marshallObj(t, ProcessRosterRequest{
		SchoolPrefix:         "hy",
		Rows:                 []roster.Row{{FullName: "Nguyễn Văn A", Grade: "1A"}},
		ExistingUsernames:    []string{"HYVANAN"},
		ExistingDisplayNames: []string{"Văn A"},
		DryRun:               true,
	})
	req, rec := newRequest(http.MethodPost, "/v1/roster/process", body)
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var batch roster.Batch
	if err := json.Unmarshal(rec.Body.Bytes(), &batch); err != nil {
		t.Fatalf("unmarshalling batch: %v", err)
	}
	if uname := batch.Students[0].Username; uname != "hyvanan1" {
		t.Errorf("Students[0].Username = %s, want hyvanan1", uname)
	}
	if dname := batch.Students[0].DisplayName; dname != "Văn A1" {
		t.Errorf("Students[0].DisplayName = %s, want Văn A1", dname)
	}
}

func Test_rosterProcess_validation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name     string
		body     ProcessRosterRequest
		wantData map[string]string
	}{
		{
			name:     "missing prefix",
			body:     ProcessRosterRequest{Rows: []roster.Row{{FullName: "A", Grade: "1A"}}},
			wantData: map[string]string{"school_prefix": "this field is required"},
		},
		{
			name:     "invalid prefix",
			body:     ProcessRosterRequest{SchoolPrefix: "hy!", Rows: []roster.Row{{FullName: "A", Grade: "1A"}}},
			wantData: map[string]string{"school_prefix": "only letters and digits are allowed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/roster/process", marshallObj(t, tt.body))
			srv.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("code = %d, want %d; body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			jsonEqual(t, rec.Body.Bytes(), tt.wantData)
		})
	}
}
