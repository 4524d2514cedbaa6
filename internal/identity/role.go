package identity

// Role adalah enumerasi tertutup. Nilai string-nya sama dengan kolom
// users.role di database, jadi jangan diubah sembarangan.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleHRManager Role = "HR_MANAGER"
	RoleManager   Role = "MANAGER"
	RoleEmployee  Role = "EMPLOYEE"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleHRManager, RoleManager, RoleEmployee:
		return Role(s), true
	default:
		return "", false
	}
}

// Capability adalah satu tabel kemampuan per role. Semua percabangan
// berbasis role di service maupun middleware membaca dari sini, bukan
// membandingkan string role satu per satu.
type Capability struct {
	CanReview          bool // approve / reject leave requests
	CanViewAllRequests bool
	CanCancelAny       bool // cancel a pending request on behalf of the owner
	CanManageEmployees bool
	CanManageReviews   bool
}

var capabilities = map[Role]Capability{
	RoleAdmin: {
		CanReview:          true,
		CanViewAllRequests: true,
		CanCancelAny:       true,
		CanManageEmployees: true,
		CanManageReviews:   true,
	},
	RoleHRManager: {
		CanReview:          true,
		CanViewAllRequests: true,
		CanCancelAny:       true,
		CanManageEmployees: true,
		CanManageReviews:   true,
	},
	RoleManager: {
		CanReview:          true,
		CanViewAllRequests: true,
		CanCancelAny:       true,
		CanManageReviews:   true,
	},
	RoleEmployee: {},
}

func (r Role) Capabilities() Capability {
	return capabilities[r]
}

func (r Role) CanReview() bool          { return capabilities[r].CanReview }
func (r Role) CanViewAllRequests() bool { return capabilities[r].CanViewAllRequests }
func (r Role) CanCancelAny() bool       { return capabilities[r].CanCancelAny }
func (r Role) CanManageEmployees() bool { return capabilities[r].CanManageEmployees }
func (r Role) CanManageReviews() bool   { return capabilities[r].CanManageReviews }

// Roles mengembalikan semua role yang dikenal, urut dari yang paling tinggi.
func Roles() []Role {
	return []Role{RoleAdmin, RoleHRManager, RoleManager, RoleEmployee}
}
