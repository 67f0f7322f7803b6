package domain

// FacetState — активные фасеты каталога.
// ActiveSubitem имеет смысл только при ActiveGroup != All.
type FacetState struct {
	Category      Category `json:"category"`
	ActiveGroup   string   `json:"active_group"`
	ActiveSubitem string   `json:"active_subitem"`
}

// NewFacetState — фасеты категории без фильтров.
func NewFacetState(c Category) FacetState {
	return FacetState{Category: c, ActiveGroup: All, ActiveSubitem: All}
}

// GroupApplied — фильтр по группе активен.
func (f FacetState) GroupApplied() bool {
	return f.ActiveGroup != "" && f.ActiveGroup != All
}

// SubitemApplied — фильтр по подгруппе активен (только вместе с группой).
func (f FacetState) SubitemApplied() bool {
	return f.GroupApplied() && f.ActiveSubitem != "" && f.ActiveSubitem != All
}

// Effective — фасеты в нормализованном виде: подгруппа сбрасывается в All, пока группа All.
func (f FacetState) Effective() FacetState {
	out := FacetState{Category: f.Category, ActiveGroup: All, ActiveSubitem: All}
	if f.GroupApplied() {
		out.ActiveGroup = f.ActiveGroup
	}
	if f.SubitemApplied() {
		out.ActiveSubitem = f.ActiveSubitem
	}
	return out
}

// Filters — набор фильтров-равенств для выборки.
// Порядок зависимостей важен: подгруппа фильтруется только при выбранной группе.
func (f FacetState) Filters() []Filter {
	filters := []Filter{{Field: FieldCategory, Value: string(f.Category)}}
	if f.GroupApplied() {
		filters = append(filters, Filter{Field: FieldGroup, Value: f.ActiveGroup})
	}
	if f.SubitemApplied() {
		filters = append(filters, Filter{Field: FieldSubgroup, Value: f.ActiveSubitem})
	}
	return filters
}

// TotalPages — max(1, ceil(total/pageSize)).
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 1
	}
	return (totalCount + pageSize - 1) / pageSize
}

// PageNumbers — полный плотный список страниц [1..totalPages], без окон.
func PageNumbers(totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	out := make([]int, totalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// PageState — состояние пагинации.
type PageState struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// CrumbAction — действие при клике по хлебной крошке.
type CrumbAction string

const (
	CrumbHome     CrumbAction = "home"
	CrumbCategory CrumbAction = "category"
	CrumbGroup    CrumbAction = "group"
	CrumbSubitem  CrumbAction = "subitem"
)

// Breadcrumb — элемент навигационной цепочки.
type Breadcrumb struct {
	Label  string      `json:"label"`
	Action CrumbAction `json:"action"`
}

// HomeLabel — подпись корневой крошки.
const HomeLabel = "Inicio"

// Breadcrumbs — цепочка {home, категория, группа?, подгруппа?}; всегда вычисляется заново.
func Breadcrumbs(f FacetState, categoryTitle string) []Breadcrumb {
	trail := []Breadcrumb{
		{Label: HomeLabel, Action: CrumbHome},
		{Label: categoryTitle, Action: CrumbCategory},
	}
	if f.GroupApplied() {
		trail = append(trail, Breadcrumb{Label: f.ActiveGroup, Action: CrumbGroup})
	}
	if f.SubitemApplied() {
		trail = append(trail, Breadcrumb{Label: f.ActiveSubitem, Action: CrumbSubitem})
	}
	return trail
}
