package rates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	enc "github.com/MrJamesThe3rd/levaetras/internal/encoding"
	"github.com/MrJamesThe3rd/levaetras/internal/money"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

var ErrUnknownFormat = errors.New("no matching rate table format: expected Bairro;Região;Taxa or Nome;Zona;Valor")

// Parser reads ';'-separated neighborhood rate tables.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]settings.NeighborhoodRate, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	slog.Debug("parsing rate table", "profile", profile.Name, "charset", charset)

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.ToLower(strings.TrimSpace(cell)); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matches(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matches(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]settings.NeighborhoodRate, error) {
	regionIdx := -1
	if idx, ok := cols[p.RegionCol]; ok {
		regionIdx = idx
	}

	var rates []settings.NeighborhoodRate

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		name := cellValue(row, cols[p.NameCol])
		if name == "" {
			continue
		}

		fee := money.Parse(cellValue(row, cols[p.FeeCol]))
		if fee.IsNegative() {
			return nil, fmt.Errorf("row %d: negative fee for %s", rowNum, name)
		}

		rates = append(rates, settings.NeighborhoodRate{
			Name:   name,
			Region: cellValue(row, regionIdx),
			Fee:    fee,
		})
	}

	return rates, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
