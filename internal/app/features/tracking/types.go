// internal/app/features/tracking/types.go
package tracking

import "time"

// scanRequest is the POST /tracking/scan body.
type scanRequest struct {
	ScanID    string `json:"scanId"`
	MachineID string `json:"machineId"`
	TimeStamp string `json:"timeStamp"`
}

// statusResponse is the ledger projection returned by the status endpoints,
// with machine and operator names populated from the registries.
type statusResponse struct {
	Date     string          `json:"date"`
	Machines []machineStatus `json:"machines"`
}

type machineStatus struct {
	MachineID           string          `json:"machine_id"`
	MachineCode         string          `json:"machine_code,omitempty"`
	MachineName         string          `json:"machine_name,omitempty"`
	CurrentOperatorID   string          `json:"current_operator_id,omitempty"`
	CurrentOperatorName string          `json:"current_operator_name,omitempty"`
	Sessions            []sessionStatus `json:"sessions"`
}

type sessionStatus struct {
	OperatorID   string       `json:"operator_id"`
	OperatorName string       `json:"operator_name,omitempty"`
	SignInTime   time.Time    `json:"sign_in_time"`
	SignOutTime  *time.Time   `json:"sign_out_time,omitempty"`
	BarcodeScans []scanStatus `json:"barcode_scans"`
}

type scanStatus struct {
	BarcodeID string    `json:"barcode_id"`
	TimeStamp time.Time `json:"time_stamp"`
}
