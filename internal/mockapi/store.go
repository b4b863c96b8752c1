package mockapi

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/Antonio-Junior1/thermoguard/internal/alerta"
	"github.com/Antonio-Junior1/thermoguard/internal/leitura"
	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
	"github.com/Antonio-Junior1/thermoguard/internal/usuario"
)

var (
	ErrNotFound   = errors.New("registro não encontrado")
	ErrEmailTaken = errors.New("email já cadastrado")
	ErrInUse      = errors.New("registro possui vínculos e não pode ser removido")
)

// ForeignKeyError indica referência a registro inexistente.
type ForeignKeyError struct {
	Field string
}

func (e *ForeignKeyError) Error() string {
	return e.Field + " não encontrado(a)"
}

type table[T any] struct {
	rows map[int64]T
	next int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) insert(build func(id int64) T) T {
	t.next++
	v := build(t.next)
	t.rows[t.next] = v
	return v
}

func (t *table[T]) get(id int64) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) list() []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

type account struct {
	usuario.Usuario
	hash string
}

// Store guarda as entidades da API falsa em memória.
type Store struct {
	mu       sync.RWMutex
	regioes  *table[regiao.Regiao]
	sensores *table[sensor.Sensor]
	leituras *table[leitura.Leitura]
	alertas  *table[alerta.Alerta]
	usuarios *table[account]
}

func NewStore() *Store {
	return &Store{
		regioes:  newTable[regiao.Regiao](),
		sensores: newTable[sensor.Sensor](),
		leituras: newTable[leitura.Leitura](),
		alertas:  newTable[alerta.Alerta](),
		usuarios: newTable[account](),
	}
}

// Regiões

func (s *Store) ListRegioes() []regiao.Regiao {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.regioes.list()
}

func (s *Store) GetRegiao(id int64) (regiao.Regiao, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.regioes.get(id)
	if !ok {
		return regiao.Regiao{}, ErrNotFound
	}
	return r, nil
}

func (s *Store) CreateRegiao(r regiao.Regiao) regiao.Regiao {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regioes.insert(func(id int64) regiao.Regiao {
		r.ID = id
		return r
	})
}

func (s *Store) UpdateRegiao(id int64, r regiao.Regiao) (regiao.Regiao, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regioes.get(id); !ok {
		return regiao.Regiao{}, ErrNotFound
	}
	r.ID = id
	s.regioes.rows[id] = r
	return r, nil
}

// DeleteRegiao falha com ErrInUse quando há sensores, alertas ou usuários na região.
func (s *Store) DeleteRegiao(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regioes.get(id); !ok {
		return ErrNotFound
	}
	for _, sn := range s.sensores.rows {
		if sn.IDRegiao == id {
			return ErrInUse
		}
	}
	for _, a := range s.alertas.rows {
		if a.IDRegiao == id {
			return ErrInUse
		}
	}
	for _, u := range s.usuarios.rows {
		if u.IDRegiao == id {
			return ErrInUse
		}
	}
	s.regioes.remove(id)
	return nil
}

// Sensores

func (s *Store) ListSensores() []sensor.Sensor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sensores.list()
}

func (s *Store) GetSensor(id int64) (sensor.Sensor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sn, ok := s.sensores.get(id)
	if !ok {
		return sensor.Sensor{}, ErrNotFound
	}
	return sn, nil
}

func (s *Store) CreateSensor(sn sensor.Sensor) (sensor.Sensor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regioes.get(sn.IDRegiao); !ok {
		return sensor.Sensor{}, &ForeignKeyError{Field: "Região"}
	}
	return s.sensores.insert(func(id int64) sensor.Sensor {
		sn.ID = id
		return sn
	}), nil
}

func (s *Store) UpdateSensor(id int64, sn sensor.Sensor) (sensor.Sensor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sensores.get(id); !ok {
		return sensor.Sensor{}, ErrNotFound
	}
	if _, ok := s.regioes.get(sn.IDRegiao); !ok {
		return sensor.Sensor{}, &ForeignKeyError{Field: "Região"}
	}
	sn.ID = id
	s.sensores.rows[id] = sn
	return sn, nil
}

// DeleteSensor remove o sensor junto com suas leituras.
func (s *Store) DeleteSensor(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sensores.remove(id) {
		return ErrNotFound
	}
	for lid, l := range s.leituras.rows {
		if l.IDSensor == id {
			delete(s.leituras.rows, lid)
		}
	}
	return nil
}

const maxPageSize = 1000

// PageSensores ordena, filtra por status (vazio = todos) e pagina.
func (s *Store) PageSensores(status string, page, size int, sortBy string) sensor.Page {
	list := s.ListSensores()
	if status != "" {
		filtered := list[:0]
		for _, sn := range list {
			if sn.Status == status {
				filtered = append(filtered, sn)
			}
		}
		list = filtered
	}

	less := func(i, j int) bool { return list[i].ID < list[j].ID }
	switch sortBy {
	case "modelo":
		less = func(i, j int) bool { return strings.ToLower(list[i].Modelo) < strings.ToLower(list[j].Modelo) }
	case "status":
		less = func(i, j int) bool { return list[i].Status < list[j].Status }
	case "dataInstalacao":
		less = func(i, j int) bool { return list[i].DataInstalacao < list[j].DataInstalacao }
	case "idRegiao":
		less = func(i, j int) bool { return list[i].IDRegiao < list[j].IDRegiao }
	}
	sort.SliceStable(list, less)

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	total := len(list)
	if last := total/size + 1; page > last {
		page = last
	}
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return sensor.Page{
		Content:       append([]sensor.Sensor{}, list[start:end]...),
		TotalElements: int64(total),
		TotalPages:    int(math.Ceil(float64(total) / float64(size))),
		Number:        page,
		Size:          size,
	}
}

// Leituras

func (s *Store) ListLeituras() []leitura.Leitura {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leituras.list()
}

func (s *Store) GetLeitura(id int64) (leitura.Leitura, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leituras.get(id)
	if !ok {
		return leitura.Leitura{}, ErrNotFound
	}
	return l, nil
}

func (s *Store) CreateLeitura(l leitura.Leitura) (leitura.Leitura, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sensores.get(l.IDSensor); !ok {
		return leitura.Leitura{}, &ForeignKeyError{Field: "Sensor"}
	}
	return s.leituras.insert(func(id int64) leitura.Leitura {
		l.ID = id
		return l
	}), nil
}

func (s *Store) DeleteLeitura(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.leituras.remove(id) {
		return ErrNotFound
	}
	return nil
}

// AverageByRegion calcula a temperatura média das leituras por região, com uma casa decimal.
// Regiões sem leituras ficam de fora.
func (s *Store) AverageByRegion() []leitura.MediaRegiao {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type acc struct {
		sum   float64
		count int
	}
	byRegion := make(map[int64]*acc)
	for _, l := range s.leituras.rows {
		sn, ok := s.sensores.get(l.IDSensor)
		if !ok {
			continue
		}
		a := byRegion[sn.IDRegiao]
		if a == nil {
			a = &acc{}
			byRegion[sn.IDRegiao] = a
		}
		a.sum += l.Temperatura
		a.count++
	}

	out := make([]leitura.MediaRegiao, 0, len(byRegion))
	for _, r := range s.regioes.list() {
		a, ok := byRegion[r.ID]
		if !ok {
			continue
		}
		out = append(out, leitura.MediaRegiao{
			IDRegiao:         r.ID,
			NomeRegiao:       r.Nome,
			TemperaturaMedia: math.Round(a.sum/float64(a.count)*10) / 10,
		})
	}
	return out
}

// Alertas

func (s *Store) ListAlertas() []alerta.Alerta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alertas.list()
}

func (s *Store) GetAlerta(id int64) (alerta.Alerta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.alertas.get(id)
	if !ok {
		return alerta.Alerta{}, ErrNotFound
	}
	return a, nil
}

func (s *Store) CreateAlerta(a alerta.Alerta) (alerta.Alerta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regioes.get(a.IDRegiao); !ok {
		return alerta.Alerta{}, &ForeignKeyError{Field: "Região"}
	}
	return s.alertas.insert(func(id int64) alerta.Alerta {
		a.ID = id
		return a
	}), nil
}

func (s *Store) DeleteAlerta(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alertas.remove(id) {
		return ErrNotFound
	}
	return nil
}

// Usuários

func (s *Store) ListUsuarios() []usuario.Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.usuarios.list()
	out := make([]usuario.Usuario, 0, len(rows))
	for _, a := range rows {
		out = append(out, a.Usuario)
	}
	return out
}

func (s *Store) GetUsuario(id int64) (usuario.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.usuarios.get(id)
	if !ok {
		return usuario.Usuario{}, ErrNotFound
	}
	return a.Usuario, nil
}

// CreateUsuario cadastra a conta. hash vazio gera conta sem acesso ao login.
func (s *Store) CreateUsuario(u usuario.Usuario, hash string) (usuario.Usuario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, ok := s.findByEmail(u.Email); ok {
		return usuario.Usuario{}, ErrEmailTaken
	}
	if err := s.checkOptionalRegiao(u.IDRegiao); err != nil {
		return usuario.Usuario{}, err
	}
	acc := s.usuarios.insert(func(id int64) account {
		u.ID = id
		return account{Usuario: u, hash: hash}
	})
	return acc.Usuario, nil
}

func (s *Store) UpdateUsuario(id int64, u usuario.Usuario) (usuario.Usuario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.usuarios.get(id)
	if !ok {
		return usuario.Usuario{}, ErrNotFound
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if other, ok := s.findByEmail(u.Email); ok && other.ID != id {
		return usuario.Usuario{}, ErrEmailTaken
	}
	if err := s.checkOptionalRegiao(u.IDRegiao); err != nil {
		return usuario.Usuario{}, err
	}
	u.ID = id
	s.usuarios.rows[id] = account{Usuario: u, hash: current.hash}
	return u, nil
}

func (s *Store) DeleteUsuario(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.usuarios.remove(id) {
		return ErrNotFound
	}
	return nil
}

// Credentials devolve o usuário e o hash de senha pelo e-mail.
func (s *Store) Credentials(email string) (usuario.Usuario, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.findByEmail(strings.ToLower(strings.TrimSpace(email)))
	return acc.Usuario, acc.hash, ok
}

func (s *Store) findByEmail(email string) (account, bool) {
	for _, a := range s.usuarios.rows {
		if a.Email == email {
			return a, true
		}
	}
	return account{}, false
}

func (s *Store) checkOptionalRegiao(id int64) error {
	if id == 0 {
		return nil
	}
	if _, ok := s.regioes.get(id); !ok {
		return &ForeignKeyError{Field: "Região"}
	}
	return nil
}
