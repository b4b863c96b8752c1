package mockapi

import (
	"net/http"
	"strings"

	"github.com/Antonio-Junior1/thermoguard/internal/alerta"
	"github.com/Antonio-Junior1/thermoguard/internal/leitura"
	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
	"github.com/Antonio-Junior1/thermoguard/internal/usuario"
)

type regiaoRequest struct {
	Nome            string   `json:"nome"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Vulnerabilidade *float64 `json:"vulnerabilidade"`
}

func (req regiaoRequest) parse() (regiao.Regiao, []string) {
	in := regiao.Input{Nome: req.Nome, Latitude: req.Latitude, Longitude: req.Longitude, Vulnerabilidade: req.Vulnerabilidade}
	if errs := regiao.Validate(in); len(errs) > 0 {
		return regiao.Regiao{}, errs
	}
	out := regiao.Regiao{Nome: strings.TrimSpace(req.Nome), Latitude: *req.Latitude, Longitude: *req.Longitude}
	if req.Vulnerabilidade != nil {
		out.Vulnerabilidade = *req.Vulnerabilidade
	}
	return out, nil
}

// Regiões

func (s *Server) ListRegioes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListRegioes())
}

func (s *Server) GetRegiao(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	out, err := s.store.GetRegiao(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CreateRegiao(w http.ResponseWriter, r *http.Request) {
	var req regiaoRequest
	if !s.decode(w, r, &req) {
		return
	}
	rg, errs := req.parse()
	if errs != nil {
		writeValidation(w, errs)
		return
	}
	writeJSON(w, http.StatusCreated, s.store.CreateRegiao(rg))
}

func (s *Server) UpdateRegiao(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req regiaoRequest
	if !s.decode(w, r, &req) {
		return
	}
	rg, errs := req.parse()
	if errs != nil {
		writeValidation(w, errs)
		return
	}
	out, err := s.store.UpdateRegiao(id, rg)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) DeleteRegiao(w http.ResponseWriter, r *http.Request) {
	s.deleteBy(w, r, s.store.DeleteRegiao)
}

// Sensores

func (s *Server) ListSensores(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListSensores())
}

func (s *Server) PageSensores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.store.PageSensores("", intQuery(r, "page", 0), intQuery(r, "size", 10), q.Get("sortBy")))
}

func (s *Server) FilterSensores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := strings.ToUpper(q.Get("status"))
	if status != "" && !isSensorStatus(status) {
		writeError(w, http.StatusBadRequest, "VALIDATION", "status inválido", nil)
		return
	}
	writeJSON(w, http.StatusOK, s.store.PageSensores(status, intQuery(r, "page", 0), intQuery(r, "size", 10), q.Get("sortBy")))
}

func (s *Server) GetSensor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	out, err := s.store.GetSensor(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CreateSensor(w http.ResponseWriter, r *http.Request) {
	var in sensor.Input
	if !s.decode(w, r, &in) {
		return
	}
	if errs := sensor.Validate(in); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	out, err := s.store.CreateSensor(sensorFromInput(in))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) UpdateSensor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in sensor.Input
	if !s.decode(w, r, &in) {
		return
	}
	if errs := sensor.Validate(in); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	out, err := s.store.UpdateSensor(id, sensorFromInput(in))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) DeleteSensor(w http.ResponseWriter, r *http.Request) {
	s.deleteBy(w, r, s.store.DeleteSensor)
}

func sensorFromInput(in sensor.Input) sensor.Sensor {
	return sensor.Sensor{
		IDRegiao:       in.IDRegiao,
		Modelo:         strings.TrimSpace(in.Modelo),
		Status:         in.Status,
		DataInstalacao: strings.TrimSpace(in.DataInstalacao),
	}
}

func isSensorStatus(status string) bool {
	for _, opt := range sensor.StatusOptions() {
		if opt.Value == status {
			return true
		}
	}
	return false
}

// Leituras

func (s *Server) ListLeituras(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListLeituras())
}

func (s *Server) GetLeitura(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	out, err := s.store.GetLeitura(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CreateLeitura(w http.ResponseWriter, r *http.Request) {
	var in leitura.Input
	if !s.decode(w, r, &in) {
		return
	}
	if errs := leitura.Validate(in); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	out, err := s.store.CreateLeitura(leitura.Leitura{
		IDSensor:    in.IDSensor,
		Temperatura: *in.Temperatura,
		Umidade:     *in.Umidade,
		DataHora:    strings.TrimSpace(in.DataHora),
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) DeleteLeitura(w http.ResponseWriter, r *http.Request) {
	s.deleteBy(w, r, s.store.DeleteLeitura)
}

func (s *Server) AverageByRegion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.AverageByRegion())
}

// Alertas

func (s *Server) ListAlertas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListAlertas())
}

func (s *Server) GetAlerta(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	out, err := s.store.GetAlerta(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CreateAlerta(w http.ResponseWriter, r *http.Request) {
	var in alerta.Input
	if !s.decode(w, r, &in) {
		return
	}
	if errs := alerta.Validate(in); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	out, err := s.store.CreateAlerta(alerta.Alerta{
		IDRegiao:   in.IDRegiao,
		Tipo:       in.Tipo,
		Severidade: in.Severidade,
		DataHora:   strings.TrimSpace(in.DataHora),
		Mensagem:   strings.TrimSpace(in.Mensagem),
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) DeleteAlerta(w http.ResponseWriter, r *http.Request) {
	s.deleteBy(w, r, s.store.DeleteAlerta)
}

// Usuários

func (s *Server) ListUsuarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListUsuarios())
}

func (s *Server) GetUsuario(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	out, err := s.store.GetUsuario(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CreateUsuario(w http.ResponseWriter, r *http.Request) {
	var in usuario.Input
	if !s.decode(w, r, &in) {
		return
	}
	if errs := usuario.Validate(in); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	out, err := s.store.CreateUsuario(usuarioFromInput(in), "")
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) UpdateUsuario(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in usuario.Input
	if !s.decode(w, r, &in) {
		return
	}
	if errs := usuario.Validate(in); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	out, err := s.store.UpdateUsuario(id, usuarioFromInput(in))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) DeleteUsuario(w http.ResponseWriter, r *http.Request) {
	s.deleteBy(w, r, s.store.DeleteUsuario)
}

func usuarioFromInput(in usuario.Input) usuario.Usuario {
	return usuario.Usuario{Nome: strings.TrimSpace(in.Nome), Email: in.Email, Tipo: in.Tipo, IDRegiao: in.IDRegiao}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := decodeBody(w, r, out); err != nil {
		s.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("corpo inválido")
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return false
	}
	return true
}

func (s *Server) deleteBy(w http.ResponseWriter, r *http.Request, del func(int64) error) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := del(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
