package review

type CreateReviewRequest struct {
	EmployeeID          string              `json:"employee_id" binding:"required,uuid"`
	Period              string              `json:"period" binding:"required,max=20"`
	OverallRating       int                 `json:"overall_rating" binding:"required,min=1,max=5"`
	Strengths           string              `json:"strengths"`
	AreasForImprovement string              `json:"areas_for_improvement"`
	Goals               []CreateGoalRequest `json:"goals" binding:"omitempty,dive"`
}

type CreateGoalRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date" binding:"required"`
}

type UpdateGoalRequest struct {
	Status   *string `json:"status"`
	Progress *int    `json:"progress" binding:"omitempty,min=0,max=100"`
	Comments *string `json:"comments"`
}

type UpdateReviewRequest struct {
	OverallRating       *int    `json:"overall_rating" binding:"omitempty,min=1,max=5"`
	Strengths           *string `json:"strengths"`
	AreasForImprovement *string `json:"areas_for_improvement"`
}

type ListReviewsFilter struct {
	EmployeeID string
	Period     string
	Status     string
	// ExcludeDrafts dipaksa true untuk employee biasa; draft baru terlihat
	// oleh subjek setelah di-submit.
	ExcludeDrafts bool
	Page          int
	PageSize      int
}

type ReviewResponse struct {
	ID                  string         `json:"id"`
	EmployeeID          string         `json:"employee_id"`
	EmployeeName        string         `json:"employee_name,omitempty"`
	ReviewerID          string         `json:"reviewer_id"`
	Period              string         `json:"period"`
	OverallRating       int            `json:"overall_rating"`
	Strengths           string         `json:"strengths,omitempty"`
	AreasForImprovement string         `json:"areas_for_improvement,omitempty"`
	Status              string         `json:"status"`
	Goals               []GoalResponse `json:"goals,omitempty"`
	CreatedAt           string         `json:"created_at"`
	UpdatedAt           string         `json:"updated_at"`
}

type GoalResponse struct {
	ID          string  `json:"id"`
	ReviewID    string  `json:"review_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	TargetDate  string  `json:"target_date"`
	Status      string  `json:"status"`
	Progress    int     `json:"progress"`
	Comments    *string `json:"comments,omitempty"`
}
