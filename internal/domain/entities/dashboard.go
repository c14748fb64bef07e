package entities

// StatusFilter narrows the dashboard lists. On the blog tab approved means
// published and pending means draft.
type StatusFilter string

const (
	StatusFilterAll      StatusFilter = "all"
	StatusFilterPending  StatusFilter = "pending"
	StatusFilterApproved StatusFilter = "approved"
	StatusFilterRemoved  StatusFilter = "removed"
)

var statusFilters = enumTable[StatusFilter]{
	{StatusFilterAll, "All"},
	{StatusFilterPending, "Pending"},
	{StatusFilterApproved, "Approved"},
	{StatusFilterRemoved, "Removed"},
}

func (f StatusFilter) Valid() bool   { return statusFilters.has(f) }
func (f StatusFilter) Label() string { return statusFilters.label(f) }

// DashboardTab is the active dashboard section
type DashboardTab string

const (
	TabWaitlist DashboardTab = "waitlist"
	TabTeam     DashboardTab = "team"
	TabBlog     DashboardTab = "blog"
)

var dashboardTabs = enumTable[DashboardTab]{
	{TabWaitlist, "Waitlist"},
	{TabTeam, "Team"},
	{TabBlog, "Blog"},
}

func (t DashboardTab) Valid() bool   { return dashboardTabs.has(t) }
func (t DashboardTab) Label() string { return dashboardTabs.label(t) }

// DashboardFiltersInput updates the search and filter state
type DashboardFiltersInput struct {
	SearchQuery  *string       `json:"searchQuery"`
	FilterStatus *StatusFilter `json:"filterStatus" binding:"omitempty,status_filter"`
	Tab          *DashboardTab `json:"tab" binding:"omitempty,dashboard_tab"`
}

// DashboardStats summarizes the cached collections
type DashboardStats struct {
	WaitlistTotal    int `json:"waitlistTotal"`
	WaitlistPending  int `json:"waitlistPending"`
	WaitlistApproved int `json:"waitlistApproved"`
	WaitlistRemoved  int `json:"waitlistRemoved"`
	TeamActive       int `json:"teamActive"`
	TeamTotal        int `json:"teamTotal"`
	BlogPublished    int `json:"blogPublished"`
	BlogDrafts       int `json:"blogDrafts"`
}
