// internal/app/features/planning/types.go
package planning

// createRequest is the POST /planning body. WorkOrderID is the human key
// ("WO-…") printed on the traveler, not a document id.
type createRequest struct {
	WorkOrderID string `json:"workOrderId" validate:"required,max=64" label:"Work Order ID"`
}

// rawMaterialsRequest replaces a plan's material lines. Names, unit costs,
// deficits, and per-line status are resolved server-side from the raw-item
// registry; clients only say what and how much.
type rawMaterialsRequest struct {
	Assignments []rawMaterialLine `json:"assignments"`
}

type rawMaterialLine struct {
	RawItemID        string  `json:"rawItemId" validate:"required" label:"Raw Item ID"`
	AssignedQuantity float64 `json:"assignedQuantity"`
}

// machinesRequest replaces a plan's machine bindings.
type machinesRequest struct {
	Assignments []machineLine `json:"assignments"`
}

type machineLine struct {
	Operation      string  `json:"operation" validate:"required,max=120" label:"Operation"`
	MachineID      string  `json:"machineId" validate:"required" label:"Machine ID"`
	EstimatedHours float64 `json:"estimatedHours"`
}

// timelineRequest sets the plan's execution window. Dates are RFC3339.
type timelineRequest struct {
	StartDate           string  `json:"startDate"`
	EndDate             string  `json:"endDate"`
	TotalEstimatedHours float64 `json:"totalEstimatedHours"`
	Remarks             string  `json:"remarks" validate:"max=500" label:"Remarks"`
}
