// Package report exporta listagens para planilhas XLSX.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
)

// Nomes das planilhas geradas.
const (
	SheetRegioes  = "Regiões"
	SheetSensores = "Sensores"
)

var (
	regiaoHeader = []string{"ID", "Nome", "Latitude", "Longitude", "Vulnerabilidade"}
	sensorHeader = []string{"ID", "Modelo", "Status", "Região", "Data de Instalação"}
)

// Regioes gera a planilha de regiões.
func Regioes(list []regiao.Regiao) ([]byte, error) {
	rows := make([][]any, 0, len(list))
	for _, r := range list {
		rows = append(rows, []any{r.ID, r.Nome, r.Latitude, r.Longitude, r.Vulnerabilidade})
	}
	return build(SheetRegioes, regiaoHeader, []float64{8, 30, 14, 14, 16}, rows)
}

// Sensores gera a planilha de sensores com o nome da região resolvido.
func Sensores(list []sensor.Sensor, regioes []regiao.Regiao) ([]byte, error) {
	rows := make([][]any, 0, len(list))
	for _, s := range list {
		rows = append(rows, []any{
			s.ID,
			s.Modelo,
			sensor.StatusLabel(s.Status),
			regiao.NameByID(regioes, s.IDRegiao),
			sensor.FromSensor(s).DataInstalacao,
		})
	}
	return build(SheetSensores, sensorHeader, []float64{8, 24, 14, 30, 18}, rows)
}

func build(sheet string, header []string, widths []float64, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("criar planilha: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remover planilha padrão: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFE4CC"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("estilo do cabeçalho: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("cabeçalho %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("estilo %s: %w", cell, err)
		}
		if col < len(widths) {
			colName, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetColWidth(sheet, colName, colName, widths[col]); err != nil {
				return nil, err
			}
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("linha %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("gravar planilha: %w", err)
	}
	return buf.Bytes(), nil
}
