package sensor

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

func (s *Service) ListAll(ctx context.Context) ([]Sensor, error) {
	return s.repo.List(ctx)
}

// ListPaged lista sensores com paginação; sortBy vazio usa idSensor.
func (s *Service) ListPaged(ctx context.Context, page, size int, sortBy string) (*Page, error) {
	return s.repo.ListPaged(ctx, page, size, sortBy)
}

// FilterByStatus pagina apenas os sensores com o status informado.
func (s *Service) FilterByStatus(ctx context.Context, status string, page, size int, sortBy string) (*Page, error) {
	if !util.OneOf(status, StatusAtivo, StatusInativo, StatusManutencao) {
		return nil, util.Check([]string{"Status deve ser ATIVO, INATIVO ou MANUTENCAO"})
	}
	return s.repo.FilterByStatus(ctx, status, page, size, sortBy)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Sensor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*Sensor, error) {
	if err := util.Check(Validate(in)); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*Sensor, error) {
	if err := util.Check(Validate(in)); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Validate(in Input) []string {
	return Validate(in)
}

// Filter aplica busca por modelo e, quando informado, o filtro de status.
func Filter(list []Sensor, query, status string) []Sensor {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Sensor, 0, len(list))
	for _, s := range list {
		if query != "" && !strings.Contains(strings.ToLower(s.Modelo), query) {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	return out
}
