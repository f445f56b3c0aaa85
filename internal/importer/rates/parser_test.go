package rates_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/levaetras/internal/importer/rates"
)

func TestParser_Bairros(t *testing.T) {
	csv := `Tabela de taxas - Leva e Trás
Atualizada em;01/06/2025

Bairro;Região;Taxa
Copacabana;Zona Sul;R$ 7,50
Niterói;Região Metropolitana;1.020,00
;;
Méier;;6
`

	txs, err := rates.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, "Copacabana", txs[0].Name)
	assert.Equal(t, "Zona Sul", txs[0].Region)
	assert.True(t, txs[0].Fee.Equal(decimal.RequireFromString("7.50")))

	assert.Equal(t, "Niterói", txs[1].Name)
	assert.True(t, txs[1].Fee.Equal(decimal.RequireFromString("1020")))

	assert.Equal(t, "Méier", txs[2].Name)
	assert.Empty(t, txs[2].Region)
}

func TestParser_Zonas(t *testing.T) {
	csv := "NOME;ZONA;VALOR\nTijuca;Norte;6,00\n"

	txs, err := rates.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Norte", txs[0].Region)
}

func TestParser_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Bairro;Região;Taxa\nSão Cristóvão;Centro;9,00\n"))
	require.NoError(t, err)

	txs, err := rates.NewParser().Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "São Cristóvão", txs[0].Name)
}

func TestParser_Errors(t *testing.T) {
	_, err := rates.NewParser().Parse(strings.NewReader("Data;Valor\n01/01/2025;10\n"))
	assert.ErrorIs(t, err, rates.ErrUnknownFormat)

	_, err = rates.NewParser().Parse(strings.NewReader("Bairro;Taxa\nCentro;-5,00\n"))
	assert.ErrorContains(t, err, "row 2")
}
