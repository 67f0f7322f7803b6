package domain

import (
	"errors"
	"slices"
)

// All — служебное значение фасета "без фильтра".
const All = "All"

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownGroup    = errors.New("unknown group")
	ErrUnknownSubitem  = errors.New("unknown subitem")
)

// Category — слаг категории каталога.
type Category string

const (
	CategoryMakeup      Category = "maquillaje"
	CategorySkincare    Category = "skincare"
	CategoryHair        Category = "capilar"
	CategoryAccessories Category = "accesorios"
)

// GroupDef — группа категории и её подгруппы (порядок важен для отображения).
type GroupDef struct {
	Name     string
	Subitems []string
}

// CategoryDef — статическое описание категории.
type CategoryDef struct {
	Slug        Category
	Title       string
	Description string
	Groups      []GroupDef
}

var taxonomy = []CategoryDef{
	{
		Slug:        CategoryMakeup,
		Title:       "Maquillaje",
		Description: "Explora todos los productos de Maquillaje.",
		Groups: []GroupDef{
			{Name: "Rostro", Subitems: []string{"Bases", "Correctores", "Polvos", "Rubores"}},
			{Name: "Ojos", Subitems: []string{"Sombras", "Delineadores", "Pestañinas", "Cejas"}},
			{Name: "Labios", Subitems: []string{"Labiales", "Brillos", "Delineadores de labios"}},
		},
	},
	{
		Slug:        CategorySkincare,
		Title:       "Cuidado de la piel",
		Description: "Explora todos los productos de Cuidado de la piel.",
		Groups: []GroupDef{
			{Name: "Limpieza", Subitems: []string{"Limpiadores", "Tónicos", "Exfoliantes"}},
			{Name: "Tratamiento", Subitems: []string{"Serums", "Ampollas", "Mascarillas"}},
			{Name: "Hidratación", Subitems: []string{"Cremas", "Contorno de ojos"}},
			{Name: "Protección solar", Subitems: []string{"Protectores", "Bloqueadores con color"}},
		},
	},
	{
		Slug:        CategoryHair,
		Title:       "Cuidado capilar",
		Description: "Explora todos los productos de Cuidado capilar.",
		Groups: []GroupDef{
			{Name: "Limpieza", Subitems: []string{"Shampoo", "Acondicionador"}},
			{Name: "Tratamiento", Subitems: []string{"Mascarillas", "Aceites", "Sérums capilares"}},
			{Name: "Styling", Subitems: []string{"Cremas de peinar", "Geles", "Protectores térmicos"}},
		},
	},
	{
		Slug:        CategoryAccessories,
		Title:       "Accesorios",
		Description: "Explora todos los productos de Accesorios.",
		Groups: []GroupDef{
			{Name: "Brochas", Subitems: []string{"Rostro", "Ojos", "Sets"}},
			{Name: "Esponjas", Subitems: []string{"Esponjas de maquillaje", "Borlas"}},
			{Name: "Organizadores", Subitems: []string{"Cosmetiqueras", "Organizadores acrílicos"}},
		},
	},
}

// Categories — все категории в порядке отображения.
func Categories() []CategoryDef {
	out := make([]CategoryDef, len(taxonomy))
	copy(out, taxonomy)
	return out
}

// LookupCategory — описание категории по слагу.
func LookupCategory(c Category) (CategoryDef, bool) {
	for _, def := range taxonomy {
		if def.Slug == c {
			return def, true
		}
	}
	return CategoryDef{}, false
}

// Valid — известна ли категория.
func (c Category) Valid() bool {
	_, ok := LookupCategory(c)
	return ok
}

// Title — заголовок категории ("" для неизвестной).
func (c Category) Title() string {
	def, _ := LookupCategory(c)
	return def.Title
}

// GroupNames — имена групп категории.
func (d CategoryDef) GroupNames() []string {
	names := make([]string, 0, len(d.Groups))
	for _, g := range d.Groups {
		names = append(names, g.Name)
	}
	return names
}

// Subitems — подгруппы группы (копия); ok=false, если группы нет в таблице.
func (d CategoryDef) Subitems(group string) ([]string, bool) {
	for _, g := range d.Groups {
		if g.Name == group {
			return slices.Clone(g.Subitems), true
		}
	}
	return nil, false
}

// HasGroup — есть ли группа в таблице категории.
func (d CategoryDef) HasGroup(group string) bool {
	_, ok := d.Subitems(group)
	return ok
}
