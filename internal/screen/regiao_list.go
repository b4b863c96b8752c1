package screen

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
)

// RegiaoList mantém a lista de regiões da tela e a busca aplicada.
type RegiaoList struct {
	mu     sync.Mutex
	svc    RegiaoService
	items  []regiao.Regiao
	query  string
	logger zerolog.Logger
}

func NewRegiaoList(svc RegiaoService, logger zerolog.Logger) *RegiaoList {
	return &RegiaoList{svc: svc, logger: logger.With().Str("screen", "RegiaoList").Logger()}
}

// Load busca as regiões; em erro a lista anterior é mantida.
func (l *RegiaoList) Load(ctx context.Context) error {
	items, err := l.svc.ListAll(ctx)
	if err != nil {
		l.logger.Error().Err(err).Msg("erro ao carregar regiões")
		return err
	}
	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return nil
}

// Refresh recarrega a lista.
func (l *RegiaoList) Refresh(ctx context.Context) error {
	return l.Load(ctx)
}

func (l *RegiaoList) SetQuery(q string) {
	l.mu.Lock()
	l.query = q
	l.mu.Unlock()
}

// Items devolve todas as regiões carregadas.
func (l *RegiaoList) Items() []regiao.Regiao {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]regiao.Regiao(nil), l.items...)
}

// Visible devolve as regiões que passam pela busca.
func (l *RegiaoList) Visible() []regiao.Regiao {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]regiao.Regiao(nil), regiao.Filter(l.items, l.query)...)
}

// ConfirmDelete devolve o texto de confirmação da exclusão.
func (l *RegiaoList) ConfirmDelete(r regiao.Regiao) string {
	return fmt.Sprintf("Deseja realmente excluir a região %q?", r.Nome)
}

// Delete remove a região e recarrega a lista.
func (l *RegiaoList) Delete(ctx context.Context, id int64) error {
	if err := l.svc.Delete(ctx, id); err != nil {
		l.logger.Error().Err(err).Int64("id", id).Msg("erro ao excluir região")
		return err
	}
	return l.Load(ctx)
}
