package subjects_page

import (
	"slices"
	"strings"

	"skconsole/skadmin"
)

const PageSize = 10

// PageCount is the number of pages needed for subjects, zero for an empty list.
func PageCount(subjects []string) int {
	return (len(subjects) + PageSize - 1) / PageSize
}

// Selection is the subject shown in the detail panel.
type Selection struct {
	Meta skadmin.Subject
	// LastSchema holds the body of the highest version once fetched.
	LastSchema         string
	LastSchemaResolved bool
}

// ViewState is the state of the subject browser. Transitions return a new
// ViewState and never write to a slice reachable from the receiver.
type ViewState struct {
	Subjects    []string
	CurrentPage int
	SearchQuery string
	Active      []string
	Selected    *Selection
}

// NewViewState is the state after a successful load of subjects.
func NewViewState(subjects []string) ViewState {
	loaded := slices.Clone(subjects)
	if loaded == nil {
		loaded = []string{}
	}
	return ViewState{
		Subjects:    loaded,
		CurrentPage: 1,
		Active:      loaded,
	}
}

// LastPage is the highest page Navigate accepts, an empty list still has one page.
func (v ViewState) LastPage() int {
	return max(1, PageCount(v.Active))
}

// Navigate moves to target, ok is false when target is out of bounds and
// the state is returned untouched.
func (v ViewState) Navigate(target int) (ViewState, bool) {
	if target < 1 || target > v.LastPage() {
		return v, false
	}
	v.CurrentPage = target
	return v, true
}

// Search keeps the subjects containing query, case-sensitive, and goes back to the first page.
func (v ViewState) Search(query string) ViewState {
	v.SearchQuery = query
	v.Active = filter(v.Subjects, query)
	v.CurrentPage = 1
	return v
}

// AddSubject appends name when it is not yet known and reapplies the
// current search. The current page is kept if it still exists.
func (v ViewState) AddSubject(name string) ViewState {
	if slices.Contains(v.Subjects, name) {
		return v
	}
	subjects := make([]string, len(v.Subjects), len(v.Subjects)+1)
	copy(subjects, v.Subjects)
	v.Subjects = append(subjects, name)
	v.Active = filter(v.Subjects, v.SearchQuery)
	v.CurrentPage = min(max(v.CurrentPage, 1), v.LastPage())
	return v
}

func (v ViewState) IsActive(name string) bool {
	return slices.Contains(v.Active, name)
}

// Select shows meta in the detail panel, its latest schema still unresolved.
// A subject without versions has nothing to resolve.
func (v ViewState) Select(meta skadmin.Subject) ViewState {
	v.Selected = &Selection{
		Meta:               meta,
		LastSchemaResolved: meta.LatestVersion() == 0,
	}
	return v
}

// ResolveLastSchema fills in the latest schema of the selected subject.
// Schemas of any other subject or version are ignored.
func (v ViewState) ResolveLastSchema(subject string, version int, schema string) ViewState {
	if v.Selected == nil ||
		v.Selected.Meta.Name != subject ||
		v.Selected.Meta.LatestVersion() != version {
		return v
	}
	selection := *v.Selected
	selection.LastSchema = schema
	selection.LastSchemaResolved = true
	v.Selected = &selection
	return v
}

func (v ViewState) IsSelected(subject string) bool {
	return v.Selected != nil && v.Selected.Meta.Name == subject
}

// Window is the slice of Active shown on the current page.
func (v ViewState) Window() []string {
	start := (v.CurrentPage - 1) * PageSize
	if start < 0 || start >= len(v.Active) {
		return []string{}
	}
	end := min(start+PageSize, len(v.Active))
	return slices.Clone(v.Active[start:end])
}

func (v ViewState) ListView() SubjectListView {
	return SubjectListView{Subjects: v.Window()}
}

func (v ViewState) PaginationView() PaginationView {
	last := v.LastPage()
	pages := make([]PageIndex, 0, last)
	for i := 1; i <= last; i++ {
		pages = append(pages, PageIndex{Index: i, IsActive: i == v.CurrentPage})
	}
	return PaginationView{
		Pages:       pages,
		IsFirst:     v.CurrentPage == 1,
		IsLast:      v.CurrentPage == last,
		CurrentPage: v.CurrentPage,
	}
}

// DetailView is nil when no subject is selected.
func (v ViewState) DetailView() *DetailView {
	if v.Selected == nil {
		return nil
	}
	meta := v.Selected.Meta
	return &DetailView{SubjectInfo: SubjectInfo{
		SubjectName:        meta.Name,
		Versions:           slices.Clone(meta.Versions),
		CompatibilityType:  meta.CompatibilityType,
		SchemaType:         meta.SchemaType,
		LastSchema:         v.Selected.LastSchema,
		LastSchemaResolved: v.Selected.LastSchemaResolved,
	}}
}

func filter(subjects []string, query string) []string {
	if query == "" {
		return subjects
	}
	matches := []string{}
	for _, s := range subjects {
		if strings.Contains(s, query) {
			matches = append(matches, s)
		}
	}
	return matches
}

type SubjectListView struct {
	Subjects []string
}

type PageIndex struct {
	Index    int
	IsActive bool
}

type PaginationView struct {
	Pages       []PageIndex
	IsFirst     bool
	IsLast      bool
	CurrentPage int
}

type SubjectInfo struct {
	SubjectName       string
	Versions          []int
	CompatibilityType skadmin.CompatibilityType
	SchemaType        skadmin.SchemaType
	LastSchema        string
	// LastSchemaResolved is false while the latest schema is being fetched.
	LastSchemaResolved bool
}

type DetailView struct {
	SubjectInfo SubjectInfo
}
