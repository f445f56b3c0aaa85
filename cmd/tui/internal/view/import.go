package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/levaetras/internal/importer"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state      importState
	filePicker filepicker.Model
	file       string

	result *settings.ImportResult
	err    error
}

func NewImportModel(impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Importar taxas de bairros" }

func (m ImportModel) ShortHelp() string { return "Esc: voltar | Enter: selecionar" }

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case importResultMsg:
		m.state = importStateResult
		m.result = msg.result
		m.err = msg.err

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.file = path
		m.state = importStateImporting

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case importStateImporting:
		return style.Render(fmt.Sprintf("Importando %s...", m.file))

	case importStateResult:
		if m.err != nil {
			return style.Render(errorStyle(fmt.Sprintf("Erro: %v", m.err)) + "\n\n(Esc para voltar)")
		}

		return style.Render(fmt.Sprintf(
			"Importação concluída.\n\nBairros criados: %d\nBairros atualizados: %d\nRegiões criadas: %d\n\n(Esc para voltar)",
			m.result.Created, m.result.Updated, m.result.RegionsCreated,
		))
	}

	return style.Render(
		"Selecione a tabela de taxas (Bairro;Região;Taxa ou Nome;Zona;Valor):\n\n" + m.filePicker.View(),
	)
}

type importResultMsg struct {
	result *settings.ImportResult
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		result, err := m.importService.Import(ctx, f)

		return importResultMsg{result: result, err: err}
	}
}
