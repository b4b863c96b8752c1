package regiao

import (
	"context"
	"strings"

	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

// Service valida os dados antes de delegar ao repositório.
type Service struct {
	repo *Repository
}

// NewService cria uma nova instância do serviço.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ListAll lista todas as regiões.
func (s *Service) ListAll(ctx context.Context) ([]Regiao, error) {
	return s.repo.List(ctx)
}

// GetByID busca uma região.
func (s *Service) GetByID(ctx context.Context, id int64) (*Regiao, error) {
	return s.repo.Get(ctx, id)
}

// Create valida e cria a região.
func (s *Service) Create(ctx context.Context, in Input) (*Regiao, error) {
	if err := util.Check(Validate(in)); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

// Update valida e atualiza a região.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*Regiao, error) {
	if err := util.Check(Validate(in)); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

// Delete remove a região.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Validate expõe a validação pura para formulários.
func (s *Service) Validate(in Input) []string {
	return Validate(in)
}

// Filter aplica a busca por nome, sem diferenciar maiúsculas.
func Filter(list []Regiao, query string) []Regiao {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}
	out := make([]Regiao, 0, len(list))
	for _, r := range list {
		if strings.Contains(strings.ToLower(r.Nome), query) {
			out = append(out, r)
		}
	}
	return out
}

// NameByID devolve o nome da região ou "Região não encontrada".
func NameByID(list []Regiao, id int64) string {
	for _, r := range list {
		if r.ID == id {
			return r.Nome
		}
	}
	return "Região não encontrada"
}
