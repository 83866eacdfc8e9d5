package types

// ProjectAnalytics holds the per-project aggregates computed from the
// engine's detail tables.
type ProjectAnalytics struct {
	BoqItemCount        int     `json:"boqItemCount"`
	OpenRfiCount        int     `json:"openRfiCount"`
	ApprovedRfiCount    int     `json:"approvedRfiCount"`
	PassedLabTests      int     `json:"passedLabTests"`
	FailedLabTests      int     `json:"failedLabTests"`
	AvgScheduleProgress float64 `json:"avgScheduleProgress"`
}

// ProjectWithAnalytics is a project with its aggregates attached. Analytics
// is nil when the engine was unavailable; the base project still renders.
type ProjectWithAnalytics struct {
	Project
	Analytics *ProjectAnalytics `json:"analytics,omitempty"`
}

// ProjectReport is one flattened row of the cross-entity project report.
type ProjectReport struct {
	ProjectID    string `json:"projectId"`
	Name         string `json:"name"`
	Code         string `json:"code,omitempty"`
	Status       string `json:"status,omitempty"`
	MessageCount int    `json:"messageCount"`
	BoqItemCount int    `json:"boqItemCount"`
	RfiCount     int    `json:"rfiCount"`
	LabTestCount int    `json:"labTestCount"`
	TaskCount    int    `json:"taskCount"`
	ReportCount  int    `json:"reportCount"`
}

// UserReport is one flattened row of the per-user messaging report.
type UserReport struct {
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	SentCount     int    `json:"sentCount"`
	ReceivedCount int    `json:"receivedCount"`
	UnreadCount   int    `json:"unreadCount"`
}
