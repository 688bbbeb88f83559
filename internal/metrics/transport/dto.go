package transport

// SummaryResponse is the dashboard metrics payload. Field names are part of
// the API contract.
type SummaryResponse struct {
	TotalLeads             int `json:"totalLeads"`
	NewLeads               int `json:"newLeads"`
	ContactedLeads         int `json:"contactedLeads"`
	ConvertedLeads         int `json:"convertedLeads"`
	ConversionRate         int `json:"conversionRate"`
	OverdueFollowUpsCount  int `json:"overdueFollowUpsCount"`
	FollowUpsDueTodayCount int `json:"followUpsDueTodayCount"`
}
