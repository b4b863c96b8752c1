package regiao

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/api"
	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

func f(v float64) *float64 { return &v }

func newService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.New(api.Config{BaseURL: srv.URL, Prefix: "/api", Timeout: time.Second}, zerolog.Nop())
	return NewService(NewRepository(client))
}

func TestValidateMinimalPayload(t *testing.T) {
	if errs := Validate(Input{Nome: "Centro", Latitude: f(-23.5), Longitude: f(-46.6)}); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateZeroCoordinatesAreValid(t *testing.T) {
	if errs := Validate(Input{Nome: "Equador", Latitude: f(0), Longitude: f(0)}); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateMissingFields(t *testing.T) {
	errs := Validate(Input{Nome: "   "})
	want := []string{"Nome", "Latitude", "Longitude"}
	if len(errs) != len(want) {
		t.Fatalf("errs = %v", errs)
	}
	for i, field := range want {
		if !strings.Contains(errs[i], field) {
			t.Errorf("errs[%d] = %q, want mention of %s", i, errs[i], field)
		}
	}
}

func TestValidateVulnerabilidadeRange(t *testing.T) {
	cases := map[float64]bool{0: true, 0.5: true, 1: true, -0.01: false, 1.01: false}
	for v, ok := range cases {
		errs := Validate(Input{Nome: "X", Latitude: f(1), Longitude: f(1), Vulnerabilidade: f(v)})
		if ok != (len(errs) == 0) {
			t.Errorf("vulnerabilidade %v: errs = %v", v, errs)
		}
	}
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	var calls int32
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := svc.Create(context.Background(), Input{})
	var verr *util.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("validation failure must not reach the network")
	}
}

func TestCreateSendsDefaultVulnerabilidade(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/regioes" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["vulnerabilidade"] != float64(0) {
			t.Errorf("vulnerabilidade = %v", body["vulnerabilidade"])
		}
		w.WriteHeader(http.StatusCreated)
	})

	out, err := svc.Create(context.Background(), Input{Nome: "Centro", Latitude: f(1), Longitude: f(2)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out != nil {
		t.Fatalf("201 response should yield nil, got %+v", out)
	}
}

func TestListAndUpdate(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/regioes":
			_, _ = w.Write([]byte(`[{"id":1,"nome":"Centro","latitude":1,"longitude":2,"vulnerabilidade":0.3}]`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/regioes/1":
			_, _ = w.Write([]byte(`{"id":1,"nome":"Centro Novo","latitude":1,"longitude":2}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	list, err := svc.ListAll(context.Background())
	if err != nil || len(list) != 1 || list[0].Vulnerabilidade != 0.3 {
		t.Fatalf("ListAll = %+v (%v)", list, err)
	}

	in := FromRegiao(list[0])
	in.Nome = "Centro Novo"
	updated, err := svc.Update(context.Background(), 1, in)
	if err != nil || updated == nil || updated.Nome != "Centro Novo" {
		t.Fatalf("Update = %+v (%v)", updated, err)
	}

	if _, err := svc.GetByID(context.Background(), 99); !api.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestFilterAndNameByID(t *testing.T) {
	list := []Regiao{{ID: 1, Nome: "Zona Norte"}, {ID: 2, Nome: "Centro"}}
	if got := Filter(list, "norte"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("Filter = %+v", got)
	}
	if got := Filter(list, ""); len(got) != 2 {
		t.Fatalf("empty query should keep all")
	}
	if NameByID(list, 2) != "Centro" || NameByID(list, 3) != "Região não encontrada" {
		t.Fatal("NameByID mismatch")
	}
}
