package dto

import "ticketdesk/pkg/types"

// CEODashboardQueryDTO - query-параметры GET /api/dashboard/ceo.
// Токен периода не валидируется: резолвер тотален и неизвестные значения
// превращает в "month".
type CEODashboardQueryDTO struct {
	Period   string   `query:"period"`
	Products []string `query:"products"`
	Teams    []string `query:"teams"`
	Types    []string `query:"types" validate:"dive,oneof=BUG REQ ASSISTANCE"`
}

// CEODashboardDTO - итоговый полезный груз дашборда.
type CEODashboardDTO struct {
	Period      string                   `json:"period"`
	PeriodStart string                   `json:"period_start"`
	PeriodEnd   string                   `json:"period_end"`
	Flux        *types.TicketFluxData    `json:"flux"`
	MTTR        *types.MTTRData          `json:"mttr"`
	Workload    *types.WorkloadData      `json:"workload"`
	Health      *types.ProductHealthData `json:"health"`
	Alerts      []types.OperationalAlert `json:"alerts"`
	// AlertsError заполняется кодом TIMEOUT, когда раздел алертов не уложился
	// в свой дедлайн и был деградирован до null.
	AlertsError string `json:"alerts_error,omitempty"`
}
