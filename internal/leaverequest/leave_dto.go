package leaverequest

type SubmitLeaveRequest struct {
	// Kosong = pakai employee record milik actor. Mengajukan untuk
	// employee lain hanya boleh dilakukan role elevated.
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=ANNUAL SICK PERSONAL MATERNITY PATERNITY BEREAVEMENT UNPAID"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type ReviewLeaveRequest struct {
	Comments string `json:"comments"`
}

type RejectLeaveRequest struct {
	Comments string `json:"comments" binding:"required"`
}

type ListLeaveRequestsFilter struct {
	EmployeeID string
	Status     string
	LeaveType  string
	Page       int
	PageSize   int
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	LeaveType     string  `json:"leave_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DaysRequested int     `json:"days_requested"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	SubmittedAt   string  `json:"submitted_at"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	Comments      *string `json:"comments,omitempty"`
}

type LeaveTypeUsage struct {
	Used int `json:"used"`
}

type AnnualBalance struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

type BalanceResponse struct {
	Year     int            `json:"year"`
	Annual   AnnualBalance  `json:"annual"`
	Sick     LeaveTypeUsage `json:"sick"`
	Personal LeaveTypeUsage `json:"personal"`
}
