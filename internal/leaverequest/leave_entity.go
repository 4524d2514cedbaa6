package leaverequest

import (
	"time"

	"go-hrm/internal/employee"

	"github.com/google/uuid"
)

// Status adalah enumerasi tertutup. PENDING adalah satu-satunya state
// non-terminal; semua transisi legal tercatat di satu tabel di bawah.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected, StatusCancelled},
	// APPROVED / REJECTED / CANCELLED terminal
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

func ParseStatus(v string) (Status, bool) {
	switch Status(v) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return Status(v), true
	default:
		return "", false
	}
}

type LeaveType string

const (
	TypeAnnual      LeaveType = "ANNUAL"
	TypeSick        LeaveType = "SICK"
	TypePersonal    LeaveType = "PERSONAL"
	TypeMaternity   LeaveType = "MATERNITY"
	TypePaternity   LeaveType = "PATERNITY"
	TypeBereavement LeaveType = "BEREAVEMENT"
	TypeUnpaid      LeaveType = "UNPAID"
)

func ParseLeaveType(v string) (LeaveType, bool) {
	switch LeaveType(v) {
	case TypeAnnual, TypeSick, TypePersonal, TypeMaternity, TypePaternity, TypeBereavement, TypeUnpaid:
		return LeaveType(v), true
	default:
		return "", false
	}
}

// LeaveRequest tidak pernah dihapus secara fisik; CANCELLED adalah
// terminal state negatif yang bisa dicapai pemiliknya.
type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	LeaveType LeaveType `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	// Selalu dihitung ulang dari StartDate/EndDate di server, tidak pernah
	// dipercaya dari client.
	DaysRequested int    `gorm:"type:int;not null"`
	Reason        string `gorm:"type:text;not null"`

	Status      Status    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	SubmittedAt time.Time `gorm:"not null"`

	// Diisi hanya oleh approve/reject
	ReviewedAt *time.Time
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	Comments   *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}

// DaySpan menghitung jumlah hari inklusif antara dua tanggal kalender.
func DaySpan(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
