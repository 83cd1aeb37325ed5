package types

// DashboardFilter - необязательные срезы для запросов дашборда.
// Пустой набор означает отсутствие ограничения по этому измерению.
type DashboardFilter struct {
	Products []string `json:"products,omitempty"`
	Teams    []string `json:"teams,omitempty"`
	Types    []string `json:"types,omitempty"`
}

// IsEmpty сообщает, что ни одно измерение не ограничено.
func (f DashboardFilter) IsEmpty() bool {
	return len(f.Products) == 0 && len(f.Teams) == 0 && len(f.Types) == 0
}
