package auth

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Credential adalah satu entri pada blob payroll_credentials, dipetakan
// per employee id. Password disimpan sebagai hash bcrypt.
type Credential struct {
	EmployeeID string `json:"employeeId"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Fullname   string `json:"fullname"`
	Password   string `json:"password"`
	Role       string `json:"role,omitempty"`
}

// EffectiveRole memperlakukan entri tanpa role sebagai karyawan biasa.
func (c Credential) EffectiveRole() string {
	if c.Role == "" {
		return RoleEmployee
	}
	return c.Role
}
