package domain

// DashboardStats are the landing-page counters. Provider counts are split
// by application status.
type DashboardStats struct {
	PendingProviders  int
	ApprovedProviders int
	RejectedProviders int
	TotalProviders    int
	TotalUsers        int
	TotalCategories   int
	TotalGovernorates int
}
