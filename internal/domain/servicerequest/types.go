package servicerequest

type Status string

const (
	StatusOpen      Status = "open"
	StatusWithdrawn Status = "withdrawn"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusWithdrawn, StatusCompleted:
		return true
	default:
		return false
	}
}

type Category string

const (
	CategoryEletricista Category = "eletricista"
	CategoryEncanador   Category = "encanador"
	CategoryDiarista    Category = "diarista"
	CategoryPintor      Category = "pintor"
	CategoryPedreiro    Category = "pedreiro"
	CategoryJardineiro  Category = "jardineiro"
	CategoryMontador    Category = "montador"
	CategoryOutros      Category = "outros"
)

var categories = map[Category]struct{}{
	CategoryEletricista: {},
	CategoryEncanador:   {},
	CategoryDiarista:    {},
	CategoryPintor:      {},
	CategoryPedreiro:    {},
	CategoryJardineiro:  {},
	CategoryMontador:    {},
	CategoryOutros:      {},
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categories[c]; !ok {
		return "", ErrInvalidCategory
	}
	return c, nil
}
