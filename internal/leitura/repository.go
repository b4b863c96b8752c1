package leitura

import (
	"context"
	"fmt"

	"github.com/Antonio-Junior1/thermoguard/internal/api"
)

const basePath = "/leituras"

// Repository traduz operações de leitura em chamadas REST.
type Repository struct {
	client *api.Client
}

// NewRepository cria instância do repositório.
func NewRepository(client *api.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) List(ctx context.Context) ([]Leitura, error) {
	raw, err := r.client.Get(ctx, basePath)
	if err != nil {
		return nil, err
	}
	var out []Leitura
	if _, err := api.Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Leitura, error) {
	raw, err := r.client.Get(ctx, fmt.Sprintf("%s/%d", basePath, id))
	if err != nil {
		return nil, err
	}
	var out Leitura
	ok, err := api.Decode(raw, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

func (r *Repository) Create(ctx context.Context, in Input) (*Leitura, error) {
	raw, err := r.client.Post(ctx, basePath, in)
	if err != nil {
		return nil, err
	}
	var out Leitura
	ok, err := api.Decode(raw, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Delete(ctx, fmt.Sprintf("%s/%d", basePath, id))
	return err
}

// AverageByRegion consulta a média de temperatura agrupada por região.
func (r *Repository) AverageByRegion(ctx context.Context) ([]MediaRegiao, error) {
	raw, err := r.client.Get(ctx, basePath+"/temperatura-media-por-regiao")
	if err != nil {
		return nil, err
	}
	var out []MediaRegiao
	if _, err := api.Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
