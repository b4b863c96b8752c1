package alerta

import (
	"context"
	"fmt"

	"github.com/Antonio-Junior1/thermoguard/internal/api"
)

const basePath = "/alertas"

// Repository traduz operações de alerta em chamadas REST.
type Repository struct {
	client *api.Client
}

// NewRepository cria instância do repositório.
func NewRepository(client *api.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) List(ctx context.Context) ([]Alerta, error) {
	raw, err := r.client.Get(ctx, basePath)
	if err != nil {
		return nil, err
	}
	var out []Alerta
	if _, err := api.Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Alerta, error) {
	raw, err := r.client.Get(ctx, fmt.Sprintf("%s/%d", basePath, id))
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

func (r *Repository) Create(ctx context.Context, in Input) (*Alerta, error) {
	raw, err := r.client.Post(ctx, basePath, in)
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Delete(ctx, fmt.Sprintf("%s/%d", basePath, id))
	return err
}

func decodeOne(raw []byte) (*Alerta, error) {
	var out Alerta
	ok, err := api.Decode(raw, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}
