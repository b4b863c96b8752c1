package usuario

import (
	"context"
	"fmt"
	"strings"

	"github.com/Antonio-Junior1/thermoguard/internal/api"
)

const basePath = "/usuarios"

// Repository traduz operações de usuário em chamadas REST.
type Repository struct {
	client *api.Client
}

// NewRepository cria instância do repositório.
func NewRepository(client *api.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) List(ctx context.Context) ([]Usuario, error) {
	raw, err := r.client.Get(ctx, basePath)
	if err != nil {
		return nil, err
	}
	var out []Usuario
	if _, err := api.Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Usuario, error) {
	raw, err := r.client.Get(ctx, itemPath(id))
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

func (r *Repository) Create(ctx context.Context, in Input) (*Usuario, error) {
	raw, err := r.client.Post(ctx, basePath, normalize(in))
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

func (r *Repository) Update(ctx context.Context, id int64, in Input) (*Usuario, error) {
	raw, err := r.client.Put(ctx, itemPath(id), normalize(in))
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Delete(ctx, itemPath(id))
	return err
}

func normalize(in Input) Input {
	in.Nome = strings.TrimSpace(in.Nome)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return in
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

func decodeOne(raw []byte) (*Usuario, error) {
	var out Usuario
	ok, err := api.Decode(raw, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}
