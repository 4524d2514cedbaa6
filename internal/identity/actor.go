package identity

// Actor adalah identitas tervalidasi dari request yang sedang berjalan.
// Diisi oleh auth middleware dari klaim JWT, lalu dioper secara eksplisit
// ke setiap operasi service. Tidak ada session global.
type Actor struct {
	UserID     string
	EmployeeID string // kosong bila user tidak punya employee record
	Role       Role
}

// Owns melaporkan apakah actor adalah pemilik employee record tersebut.
func (a Actor) Owns(employeeID string) bool {
	return a.EmployeeID != "" && a.EmployeeID == employeeID
}

// CanSee melaporkan apakah actor boleh melihat request milik employeeID.
func (a Actor) CanSee(employeeID string) bool {
	return a.Role.CanViewAllRequests() || a.Owns(employeeID)
}
