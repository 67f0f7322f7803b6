package domain

// Field — поле каталога, доступное для фильтрации и сортировки.
type Field string

const (
	FieldID        Field = "id"
	FieldCategory  Field = "category"
	FieldGroup     Field = "group"
	FieldSubgroup  Field = "subgroup"
	FieldOnSale    Field = "on_sale"
	FieldIsNew     Field = "is_new"
	FieldCreatedAt Field = "created_at"
)

// Filter — предикат равенства field = value.
type Filter struct {
	Field Field
	Value any
}

// OrderBy — сортировка по полю.
type OrderBy struct {
	Field Field
	Desc  bool
}

// NewestFirst — единственный порядок каталога: по дате создания, новые первыми.
var NewestFirst = OrderBy{Field: FieldCreatedAt, Desc: true}

// Query — выборка из удалённого каталога.
type Query struct {
	Filters   []Filter
	ExcludeID string // для "похожих товаров": исключить текущий
	OrderBy   OrderBy
	Offset    int
	Limit     int
}
