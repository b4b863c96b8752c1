package alerta

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

func (s *Service) ListAll(ctx context.Context) ([]Alerta, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Alerta, error) {
	return s.repo.Get(ctx, id)
}

// Create valida e cria o alerta. Mensagem vazia é rejeitada; use
// GerarMensagemAutomatica para preenchê-la antes.
func (s *Service) Create(ctx context.Context, in Input) (*Alerta, error) {
	in.Mensagem = strings.TrimSpace(in.Mensagem)
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
