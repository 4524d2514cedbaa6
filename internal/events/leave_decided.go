package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveApprovedEvent  = "leave.approved"
	LeaveRejectedEvent  = "leave.rejected"
	LeaveCancelledEvent = "leave.cancelled"
)

// LeaveDecidedEvent dipublikasikan setiap kali sebuah leave request keluar
// dari status PENDING. Konsumen eksternal (notifikasi dsb.) membaca topic
// yang sama; pengiriman notifikasinya sendiri di luar service ini.
type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	Status     string    `json:"status"`
	Year       int       `json:"year"`
	OccurredAt time.Time `json:"occurred_at"`
}
