package tui

import (
	"context"
	"encoding/json"
	"fmt"

	"btc-yardstick/internal/domain"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DocumentSource reads persisted series documents.
type DocumentSource interface {
	Read(ctx context.Context, assetID string) ([]byte, error)
}

// Services carries everything the dashboard needs.
type Services struct {
	Catalog domain.Catalog
	Docs    DocumentSource
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Padding(0, 1)
	baseStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

const detailQuarters = 12

type view int

const (
	viewCatalog view = iota
	viewDetail
)

// AppModel is the read-only SSH dashboard: a catalog table and a per-asset
// detail view showing the latest quarters.
type AppModel struct {
	svc    Services
	table  table.Model
	view   view
	detail string
	width  int
	height int
}

func NewAppModel(svc Services) *AppModel {
	columns := []table.Column{
		{Title: "ID", Width: 20},
		{Title: "Name", Width: 30},
		{Title: "Updated", Width: 22},
		{Title: "Latest ratio", Width: 18},
	}

	rows := make([]table.Row, 0, len(svc.Catalog))
	for _, e := range svc.Catalog {
		updated, ratio := latestSummary(svc.Docs, e)
		rows = append(rows, table.Row{e.ID, e.Name, updated, ratio})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("214"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return &AppModel{svc: svc, table: t}
}

func (m *AppModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AppModel) Init() tea.Cmd {
	return nil
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.view == viewDetail {
				m.view = viewCatalog
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if m.view == viewCatalog {
				row := m.table.SelectedRow()
				if row != nil {
					m.detail = m.renderDetail(row[0])
					m.view = viewDetail
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *AppModel) View() string {
	title := titleStyle.Render("BTC Purchasing Power")
	switch m.view {
	case viewDetail:
		return title + "\n" + m.detail + "\n" + faintStyle.Render("esc: back • q: quit")
	default:
		return title + "\n" + baseStyle.Render(m.table.View()) + "\n" +
			faintStyle.Render("↑/↓: select • enter: detail • q: quit")
	}
}

func (m *AppModel) renderDetail(assetID string) string {
	entry, ok := m.svc.Catalog.ByID(assetID)
	if !ok {
		return "unknown asset"
	}

	raw, err := m.svc.Docs.Read(context.Background(), assetID)
	if err != nil {
		return fmt.Sprintf("%s\n\nno data yet (%v)", entry.Name, err)
	}

	if assetID == domain.BaseAssetID {
		var doc domain.BaseDocument
		if err := json.Unmarshal(raw, &doc); err != nil || len(doc.Data) == 0 {
			return entry.Name + "\n\nno data yet"
		}
		out := fmt.Sprintf("%s — updated %s\n\n%-12s %14s %16s\n", entry.Name, doc.UpdatedAt, "quarter", "btc price", "btc per usd")
		for _, p := range lastN(doc.Data, detailQuarters) {
			out += fmt.Sprintf("%-12s %14.2f %16.10f\n", p.Date, p.BTCPriceUSD, p.BTCPerUSD)
		}
		return out
	}

	var doc domain.SeriesDocument
	if err := json.Unmarshal(raw, &doc); err != nil || len(doc.Data) == 0 {
		return entry.Name + "\n\nno data yet"
	}
	out := fmt.Sprintf("%s — updated %s\n\n%-12s %14s %14s %16s\n", entry.Name, doc.UpdatedAt, "quarter", "btc price", "asset price", "asset per btc")
	for _, p := range lastN(doc.Data, detailQuarters) {
		out += fmt.Sprintf("%-12s %14.2f %14.2f %16.4f\n", p.Date, p.BTCPrice, p.AssetPrice, p.AssetPerBTC)
	}
	return out
}

func lastN[T any](data []T, n int) []T {
	if len(data) <= n {
		return data
	}
	return data[len(data)-n:]
}

func latestSummary(docs DocumentSource, entry domain.CatalogEntry) (updated, ratio string) {
	updated, ratio = "-", "-"
	raw, err := docs.Read(context.Background(), entry.ID)
	if err != nil {
		return updated, ratio
	}

	if entry.ID == domain.BaseAssetID {
		var doc domain.BaseDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return updated, ratio
		}
		updated = doc.UpdatedAt
		if len(doc.Data) > 0 {
			ratio = fmt.Sprintf("%.10f", doc.Data[len(doc.Data)-1].BTCPerUSD)
		}
		return updated, ratio
	}

	var doc domain.SeriesDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return updated, ratio
	}
	updated = doc.UpdatedAt
	if len(doc.Data) > 0 {
		ratio = fmt.Sprintf("%.4f", doc.Data[len(doc.Data)-1].AssetPerBTC)
	}
	return updated, ratio
}
