package domain

import "strings"

// Сентинельные значения критериев, означающие «без ограничения»
const (
	AllDistricts  = "All Districts"
	AllCategories = "all"
)

// FilterCriteria - транзиентное состояние фильтров списка заведений.
// Предикаты объединяются логическим И; сентинель или пустая строка
// отключает соответствующий предикат.
type FilterCriteria struct {
	District string `json:"district"`
	Category string `json:"category"`
	Query    string `json:"query"`
}

// Matches проверяет заведение по всем трём предикатам
func (c FilterCriteria) Matches(l *Listing) bool {
	return c.matchesDistrict(l) && c.matchesCategory(l) && c.matchesQuery(l)
}

func (c FilterCriteria) matchesDistrict(l *Listing) bool {
	if c.District == "" || c.District == AllDistricts {
		return true
	}
	return l.City == c.District
}

func (c FilterCriteria) matchesCategory(l *Listing) bool {
	if c.Category == "" || c.Category == AllCategories {
		return true
	}
	for _, cat := range l.Categories {
		if cat == c.Category {
			return true
		}
	}
	return false
}

func (c FilterCriteria) matchesQuery(l *Listing) bool {
	query := strings.ToLower(strings.TrimSpace(c.Query))
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(l.Name), query) ||
		strings.Contains(strings.ToLower(l.City), query) ||
		strings.Contains(strings.ToLower(l.Address), query) {
		return true
	}
	for _, cat := range l.Categories {
		if strings.Contains(strings.ToLower(cat), query) {
			return true
		}
	}
	return false
}

// ApplyFilter возвращает заведения, проходящие критерии, сохраняя порядок.
// Фильтрация всегда выполняется до сортировки по дистанции.
func ApplyFilter(listings []Listing, c FilterCriteria) []Listing {
	result := make([]Listing, 0, len(listings))
	for i := range listings {
		if c.Matches(&listings[i]) {
			result = append(result, listings[i])
		}
	}
	return result
}
