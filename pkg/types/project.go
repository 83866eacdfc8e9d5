package types

// Project statuses.
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
)

// Project is a construction contract with its nested working collections.
// Projects are the authoritative record in the key-value store; the relational
// engine carries them as one wide row with the nested collections serialized
// into JSON text columns.
type Project struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Description   string  `json:"description,omitempty"`
	Location      string  `json:"location,omitempty"`
	Province      string  `json:"province,omitempty"`
	Client        string  `json:"client,omitempty"`
	Contractor    string  `json:"contractor,omitempty"`
	Subcontractor string  `json:"subcontractor,omitempty"`
	Consultant    string  `json:"consultant,omitempty"`
	Engineer      string  `json:"engineer,omitempty"`
	Supervisor    string  `json:"supervisor,omitempty"`
	ContractNo    string  `json:"contractNo,omitempty"`
	ContractValue float64 `json:"contractValue,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	FundingSource string  `json:"fundingSource,omitempty"`
	StartDate     string  `json:"startDate,omitempty"` // ISO 8601 date.
	EndDate       string  `json:"endDate,omitempty"`   // ISO 8601 date.
	Status        string  `json:"status,omitempty"`
	Progress      float64 `json:"progress,omitempty"` // Percent complete, 0-100.
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`

	// Nested collections, JSON text columns on the engine side.
	Boq            []BoqItem       `json:"boq,omitempty"`
	Rfis           []Rfi           `json:"rfis,omitempty"`
	LabTests       []LabTest       `json:"labTests,omitempty"`
	Schedule       []ScheduleTask  `json:"schedule,omitempty"`
	DailyReports   []DailyReport   `json:"dailyReports,omitempty"`
	Documents      []Document      `json:"documents,omitempty"`
	Vehicles       []Vehicle       `json:"vehicles,omitempty"`
	Materials      []Material      `json:"materials,omitempty"`
	PurchaseOrders []PurchaseOrder `json:"purchaseOrders,omitempty"`

	// Settings holds per-project configuration overrides.
	Settings map[string]any `json:"settings,omitempty"`
}

// BoqItem is one bill-of-quantities line.
type BoqItem struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"projectId,omitempty"` // Set in the detail table, empty inside blobs.
	ItemNo      string  `json:"itemNo,omitempty"`
	Description string  `json:"description,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	UnitRate    float64 `json:"unitRate,omitempty"`
	TotalPrice  float64 `json:"totalPrice,omitempty"`
	ExecutedQty float64 `json:"executedQty,omitempty"`
}

// RFI statuses.
const (
	RfiStatusOpen     = "open"
	RfiStatusApproved = "approved"
	RfiStatusRejected = "rejected"
	RfiStatusClosed   = "closed"
)

// Rfi is a request for information/inspection raised against a project.
type Rfi struct {
	ID            string `json:"id"`
	ProjectID     string `json:"projectId,omitempty"`
	Number        string `json:"number,omitempty"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status,omitempty"`
	SubmittedDate string `json:"submittedDate,omitempty"`
	ResponseDate  string `json:"responseDate,omitempty"`
	RespondedBy   string `json:"respondedBy,omitempty"`
}

// Lab test results.
const (
	LabResultPass    = "pass"
	LabResultFail    = "fail"
	LabResultPending = "pending"
)

// LabTest is a material quality test record.
type LabTest struct {
	ID         string `json:"id"`
	ProjectID  string `json:"projectId,omitempty"`
	TestType   string `json:"testType,omitempty"`
	Material   string `json:"material,omitempty"`
	Result     string `json:"result,omitempty"`
	TestDate   string `json:"testDate,omitempty"`
	Technician string `json:"technician,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ScheduleTask is one activity on the project schedule.
type ScheduleTask struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"projectId,omitempty"`
	Name      string   `json:"name,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Progress  float64  `json:"progress,omitempty"` // Percent complete, 0-100.
	Assignee  string   `json:"assignee,omitempty"`
	DependsOn []string `json:"dependsOn,omitempty"`
}

// DailyReport is a site diary entry for one working day.
type DailyReport struct {
	ID              string `json:"id"`
	ProjectID       string `json:"projectId,omitempty"`
	Date            string `json:"date,omitempty"`
	Weather         string `json:"weather,omitempty"`
	LaborCount      int    `json:"laborCount,omitempty"`
	EquipmentCount  int    `json:"equipmentCount,omitempty"`
	WorkDescription string `json:"workDescription,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// Document is a project file reference.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Category   string `json:"category,omitempty"`
	URL        string `json:"url,omitempty"`
	UploadDate string `json:"uploadDate,omitempty"`
}

// Vehicle is a site vehicle or plant item.
type Vehicle struct {
	ID      string `json:"id"`
	PlateNo string `json:"plateNo,omitempty"`
	Type    string `json:"type,omitempty"`
	Driver  string `json:"driver,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Material is a stocked construction material.
type Material struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Quantity float64 `json:"quantity,omitempty"`
	Supplier string  `json:"supplier,omitempty"`
}

// PurchaseOrder is a procurement order against a project.
type PurchaseOrder struct {
	ID        string  `json:"id"`
	Number    string  `json:"number,omitempty"`
	Supplier  string  `json:"supplier,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Status    string  `json:"status,omitempty"`
	OrderDate string  `json:"orderDate,omitempty"`
}
