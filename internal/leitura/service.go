package leitura

import (
	"context"

	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

// Service valida os dados antes de delegar ao repositório.
// Leituras não têm edição.
type Service struct {
	repo *Repository
}

// NewService cria uma nova instância do serviço.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAll(ctx context.Context) ([]Leitura, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Leitura, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*Leitura, error) {
	if err := util.Check(Validate(in)); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Validate(in Input) []string {
	return Validate(in)
}

// AverageTemperatureByRegion devolve a temperatura média de cada região.
func (s *Service) AverageTemperatureByRegion(ctx context.Context) ([]MediaRegiao, error) {
	return s.repo.AverageByRegion(ctx)
}
