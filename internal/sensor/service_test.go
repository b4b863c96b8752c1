package sensor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/api"
	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

func newService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.New(api.Config{BaseURL: srv.URL, Prefix: "/api", Timeout: time.Second}, zerolog.Nop())
	return NewService(NewRepository(client))
}

func validInput() Input {
	return Input{IDRegiao: 1, Modelo: "TH-200", Status: StatusAtivo, DataInstalacao: "2024-03-01"}
}

func TestValidate(t *testing.T) {
	if errs := Validate(validInput()); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	errs := Validate(Input{})
	for _, field := range []string{"Região", "Modelo", "Status", "Data de instalação"} {
		found := false
		for _, e := range errs {
			if strings.Contains(e, field) {
				found = true
			}
		}
		if !found {
			t.Errorf("missing error for %s in %v", field, errs)
		}
	}
}

func TestValidateModeloLength(t *testing.T) {
	in := validInput()
	in.Modelo = strings.Repeat("a", 50)
	if errs := Validate(in); len(errs) != 0 {
		t.Fatalf("50 chars should be accepted: %v", errs)
	}
	in.Modelo = strings.Repeat("a", 51)
	errs := Validate(in)
	if len(errs) != 1 || errs[0] != "Modelo deve ter no máximo 50 caracteres" {
		t.Fatalf("errs = %v", errs)
	}
}

func TestValidateStatusEnum(t *testing.T) {
	in := validInput()
	in.Status = "QUEBRADO"
	errs := Validate(in)
	if len(errs) != 1 || errs[0] != "Status deve ser ATIVO, INATIVO ou MANUTENCAO" {
		t.Fatalf("errs = %v", errs)
	}
}

func TestPagedQueries(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/api/sensores/paginado":
			if q.Get("page") != "0" || q.Get("size") != "10" || q.Get("sortBy") != "idSensor" {
				t.Errorf("query = %v", q)
			}
		case "/api/sensores/filtro":
			if q.Get("status") != StatusManutencao || q.Get("page") != "2" {
				t.Errorf("query = %v", q)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"content":[{"id":3,"idRegiao":1,"modelo":"X","status":"MANUTENCAO","dataInstalacao":"2024-01-01"}],"totalElements":1,"totalPages":1,"number":0,"size":10}`))
	})

	page, err := svc.ListPaged(context.Background(), -1, 0, "")
	if err != nil || page.TotalElements != 1 || len(page.Content) != 1 {
		t.Fatalf("ListPaged = %+v (%v)", page, err)
	}
	if _, err := svc.FilterByStatus(context.Background(), StatusManutencao, 2, 10, "modelo"); err != nil {
		t.Fatalf("FilterByStatus: %v", err)
	}

	_, err = svc.FilterByStatus(context.Background(), "X", 0, 10, "")
	var verr *util.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateRejectsInvalid(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})
	in := validInput()
	in.IDRegiao = 0
	if _, err := svc.Update(context.Background(), 1, in); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestFilter(t *testing.T) {
	list := []Sensor{
		{ID: 1, Modelo: "TH-200", Status: StatusAtivo},
		{ID: 2, Modelo: "TH-300", Status: StatusInativo},
		{ID: 3, Modelo: "DHT22", Status: StatusAtivo},
	}
	if got := Filter(list, "th", ""); len(got) != 2 {
		t.Fatalf("query filter = %+v", got)
	}
	if got := Filter(list, "", StatusAtivo); len(got) != 2 {
		t.Fatalf("status filter = %+v", got)
	}
	if got := Filter(list, "th", StatusAtivo); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("combined filter = %+v", got)
	}
}

func TestFromSensorTrimsDate(t *testing.T) {
	in := FromSensor(Sensor{IDRegiao: 2, Modelo: "X", Status: StatusAtivo, DataInstalacao: "2024-03-01T00:00:00"})
	if in.DataInstalacao != "2024-03-01" {
		t.Fatalf("date = %q", in.DataInstalacao)
	}
	if StatusLabel(StatusManutencao) != "Manutenção" {
		t.Fatal("label mismatch")
	}
}
