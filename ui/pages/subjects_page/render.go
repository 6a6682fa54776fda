package subjects_page

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/linkedin/goavro/v2"
	"github.com/muesli/reflow/wordwrap"
	"skconsole/kontext"
	"skconsole/skadmin"
	"skconsole/styles"
	"skconsole/ui"
	"skconsole/ui/components/border"
	"skconsole/ui/components/highlight"
)

const (
	// 2 for the borders and 2 for the cursor column
	listChrome      = 4
	unresolvedLabel = "loading…"
)

func (m *Model) View(ktx *kontext.ProgramKtx, renderer *ui.Renderer) string {
	searchView := m.searchBar.View(ktx, renderer)
	notifierView := m.notifierBar.View(ktx, renderer)

	height := max(ktx.AvailableHeight-2, 1)
	listWidth := ktx.WindowWidth
	detail := m.state.DetailView()
	if detail != nil {
		listWidth = ktx.WindowWidth * 2 / 5
	}

	m.listBorder.Focused = m.mode == browsing
	list := m.listBorder.View(lipgloss.NewStyle().
		Width(listWidth - 2).
		Height(height - 1).
		Render(m.renderList(listWidth - listChrome)))

	if detail == nil {
		return ui.JoinVertical(lipgloss.Top, searchView, notifierView, list)
	}

	detailWidth := ktx.WindowWidth - listWidth
	m.detailBorder.Focused = m.mode != browsing
	detailView := m.detailBorder.View(lipgloss.NewStyle().
		Width(detailWidth - 2).
		Height(height - 1).
		MaxHeight(height - 1).
		Render(m.renderDetail(detail.SubjectInfo, detailWidth-4)))

	return ui.JoinVertical(
		lipgloss.Top,
		searchView,
		notifierView,
		lipgloss.JoinHorizontal(lipgloss.Top, list, detailView),
	)
}

func (m *Model) renderList(width int) string {
	if !m.loaded {
		if m.loadErr != nil {
			return "Unable to load subjects, F5 to retry"
		}
		return "Loading subjects"
	}

	window := m.state.ListView().Subjects
	if len(window) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, "No Subjects Found", "", m.renderPagination())
	}

	lines := make([]string, 0, len(window)+2)
	for i, subject := range window {
		name := ansi.Truncate(subject, width, "…")
		switch {
		case i == m.cursor:
			lines = append(lines, styles.SelectedRow.Render("> "+name))
		case m.state.IsSelected(subject):
			lines = append(lines, styles.Label.Render("  "+name))
		default:
			lines = append(lines, "  "+name)
		}
	}
	lines = append(lines, "", m.renderPagination())
	return strings.Join(lines, "\n")
}

func (m *Model) renderPagination() string {
	pagination := m.state.PaginationView()

	prev := styles.Pagination.Inactive.Render("‹")
	if pagination.IsFirst {
		prev = styles.Pagination.Disabled.Render("‹")
	}
	next := styles.Pagination.Inactive.Render("›")
	if pagination.IsLast {
		next = styles.Pagination.Disabled.Render("›")
	}

	pages := make([]string, 0, len(pagination.Pages)+2)
	pages = append(pages, prev)
	for _, page := range pagination.Pages {
		if page.IsActive {
			pages = append(pages, styles.Pagination.Active.Render("["+strconv.Itoa(page.Index)+"]"))
		} else {
			pages = append(pages, styles.Pagination.Inactive.Render(strconv.Itoa(page.Index)))
		}
	}
	pages = append(pages, next)
	return "  " + strings.Join(pages, " ")
}

func (m *Model) renderDetail(info SubjectInfo, width int) string {
	versions := make([]string, 0, len(info.Versions))
	for _, v := range info.Versions {
		versions = append(versions, strconv.Itoa(v))
	}

	rows := []string{
		keyValue("Subject", info.SubjectName),
		keyValue("Versions", strings.Join(versions, ", ")),
		keyValue("Compatibility", string(info.CompatibilityType)),
		keyValue("Schema Type", string(info.SchemaType)),
	}

	if m.mode == choosingCompatibility && m.compatForm != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			strings.Join(rows, "\n"), "", styles.Form.Render(m.compatForm.View()))
	}

	if m.mode == editing {
		m.editor.SetWidth(width)
		m.editor.SetHeight(max(len(rows), 10))
		return lipgloss.JoinVertical(lipgloss.Left,
			strings.Join(rows, "\n"), "", styles.Label.Render("New version"), m.editor.View())
	}

	if !info.LastSchemaResolved {
		rows = append(rows, keyValue("Latest Schema", unresolvedLabel))
		return strings.Join(rows, "\n")
	}
	if info.SchemaType == skadmin.Avro && info.LastSchema != "" {
		if fingerprint, ok := avroFingerprint(info.LastSchema); ok {
			rows = append(rows, keyValue("Fingerprint", fingerprint))
		}
	}
	rows = append(rows, keyValue("Latest Schema", ""), wordwrap.String(highlight.Schema(info.LastSchema), width))
	return strings.Join(rows, "\n")
}

// avroFingerprint is the Rabin fingerprint of the parsing canonical form of schema.
func avroFingerprint(schema string) (string, bool) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%016x", codec.Rabin), true
}

func keyValue(key string, value string) string {
	return styles.Label.Render(key+":") + " " + value
}

func (m *Model) listTitle() string {
	total := humanize.Comma(int64(len(m.state.Subjects)))
	if m.state.SearchQuery == "" {
		return border.KeyValueTitle("Total Subjects", total, m.mode == browsing)
	}
	visible := humanize.Comma(int64(len(m.state.Active)))
	return border.KeyValueTitle("Total Subjects", visible+"/"+total, m.mode == browsing)
}

func (m *Model) compatTitle() string {
	if m.globalCompat == "" {
		return ""
	}
	return border.KeyValueTitle("Global Compatibility", string(m.globalCompat), m.mode == browsing)
}

func (m *Model) detailTitle() string {
	if m.state.Selected == nil {
		return ""
	}
	return border.KeyValueTitle("Details", m.state.Selected.Meta.Name, m.mode != browsing)
}
