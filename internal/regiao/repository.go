package regiao

import (
	"context"
	"fmt"

	"github.com/Antonio-Junior1/thermoguard/internal/api"
)

const basePath = "/regioes"

// Repository traduz operações de região em chamadas REST.
type Repository struct {
	client *api.Client
}

// NewRepository cria instância do repositório.
func NewRepository(client *api.Client) *Repository {
	return &Repository{client: client}
}

// List busca todas as regiões.
func (r *Repository) List(ctx context.Context) ([]Regiao, error) {
	raw, err := r.client.Get(ctx, basePath)
	if err != nil {
		return nil, err
	}
	var out []Regiao
	if _, err := api.Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get busca uma região pelo id.
func (r *Repository) Get(ctx context.Context, id int64) (*Regiao, error) {
	raw, err := r.client.Get(ctx, itemPath(id))
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

// Create envia uma nova região. Pode devolver nil quando a API responde sem corpo.
func (r *Repository) Create(ctx context.Context, in Input) (*Regiao, error) {
	raw, err := r.client.Post(ctx, basePath, in.payload())
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

// Update substitui os dados da região.
func (r *Repository) Update(ctx context.Context, id int64, in Input) (*Regiao, error) {
	raw, err := r.client.Put(ctx, itemPath(id), in.payload())
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

// Delete remove a região.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Delete(ctx, itemPath(id))
	return err
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

func decodeOne(raw []byte) (*Regiao, error) {
	var out Regiao
	ok, err := api.Decode(raw, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}
