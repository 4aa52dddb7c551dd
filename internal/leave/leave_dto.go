package leave

type CreateRequestRequest struct {
	DateFrom string `json:"from" binding:"required"`
	DateTo   string `json:"to" binding:"required"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	Subject  string `json:"subject"`
}

type CancelRequestRequest struct {
	RequestID string `json:"request_id" binding:"required"`
}

type DecideRequestRequest struct {
	EmployeeID   string  `json:"employee_id" binding:"required"`
	RequestID    string  `json:"request_id" binding:"required"`
	AdminComment *string `json:"admin_comment"`
}

type RequestResponse struct {
	ID           string  `json:"id"`
	Subject      string  `json:"subject"`
	Type         string  `json:"type"`
	DateFrom     string  `json:"from"`
	DateTo       string  `json:"to"`
	Message      string  `json:"message"`
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment,omitempty"`
	ProcessedAt  *string `json:"processed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// AdminRequestResponse adalah baris agregat lintas karyawan untuk admin.
type AdminRequestResponse struct {
	RequestResponse
	OwnerID   string `json:"owner_id"`
	OwnerName string `json:"owner_name"`
}

type PendingCountResponse struct {
	Pending int `json:"pending"`
}
