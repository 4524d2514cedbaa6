package employee

type CreateEmployeeRequest struct {
	FirstName   string   `json:"first_name" binding:"required"`
	LastName    string   `json:"last_name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	PhoneNumber string   `json:"phone_number"`
	Department  string   `json:"department" binding:"required"`
	Position    string   `json:"position" binding:"required"`
	Salary      float64  `json:"salary" binding:"required,gt=0"`
	HireDate    string   `json:"hire_date" binding:"required"`
	ManagerID   *string  `json:"manager_id" binding:"omitempty,uuid"`
	Skills      []string `json:"skills"`
}

type UpdateEmployeeRequest struct {
	FirstName   *string  `json:"first_name"`
	LastName    *string  `json:"last_name"`
	Email       *string  `json:"email" binding:"omitempty,email"`
	PhoneNumber *string  `json:"phone_number"`
	Department  *string  `json:"department"`
	Position    *string  `json:"position"`
	Salary      *float64 `json:"salary" binding:"omitempty,gt=0"`
	ManagerID   *string  `json:"manager_id" binding:"omitempty,uuid"`
	Skills      []string `json:"skills"`
	IsActive    *bool    `json:"is_active"`
}

type ListEmployeesFilter struct {
	Department string
	Status     string // "active" | "inactive" | ""
	Search     string // nama atau email
	Page       int
	PageSize   int
}

type EmployeeResponse struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Department  string   `json:"department"`
	Position    string   `json:"position"`
	Salary      float64  `json:"salary"`
	HireDate    string   `json:"hire_date"`
	ManagerID   *string  `json:"manager_id,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	IsActive    bool     `json:"is_active"`
}
