package sensor

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Antonio-Junior1/thermoguard/internal/api"
)

const basePath = "/sensores"

// Repository traduz operações de sensor em chamadas REST.
type Repository struct {
	client *api.Client
}

// NewRepository cria instância do repositório.
func NewRepository(client *api.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) List(ctx context.Context) ([]Sensor, error) {
	raw, err := r.client.Get(ctx, basePath)
	if err != nil {
		return nil, err
	}
	var out []Sensor
	if _, err := api.Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPaged consulta /sensores/paginado.
func (r *Repository) ListPaged(ctx context.Context, page, size int, sortBy string) (*Page, error) {
	q := pageQuery(page, size, sortBy)
	return r.getPage(ctx, basePath+"/paginado?"+q.Encode())
}

// FilterByStatus consulta /sensores/filtro.
func (r *Repository) FilterByStatus(ctx context.Context, status string, page, size int, sortBy string) (*Page, error) {
	q := pageQuery(page, size, sortBy)
	q.Set("status", status)
	return r.getPage(ctx, basePath+"/filtro?"+q.Encode())
}

func (r *Repository) Get(ctx context.Context, id int64) (*Sensor, error) {
	raw, err := r.client.Get(ctx, itemPath(id))
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

func (r *Repository) Create(ctx context.Context, in Input) (*Sensor, error) {
	raw, err := r.client.Post(ctx, basePath, in.normalized())
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

func (r *Repository) Update(ctx context.Context, id int64, in Input) (*Sensor, error) {
	raw, err := r.client.Put(ctx, itemPath(id), in.normalized())
	if err != nil {
		return nil, err
	}
	return decodeOne(raw)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Delete(ctx, itemPath(id))
	return err
}

func (r *Repository) getPage(ctx context.Context, path string) (*Page, error) {
	raw, err := r.client.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var out Page
	if _, err := api.Decode(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageQuery(page, size int, sortBy string) url.Values {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	if sortBy == "" {
		sortBy = "idSensor"
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	q.Set("sortBy", sortBy)
	return q
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

func decodeOne(raw []byte) (*Sensor, error) {
	var out Sensor
	ok, err := api.Decode(raw, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}
