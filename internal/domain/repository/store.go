package repository

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store interface {
	Accounts() AccountRepository
	Companies() CompanyRepository
	CompanyAdmins() CompanyAdminRepository
	PersonalProfiles() PersonalProfileRepository
	Employees() EmployeeProfileRepository
	ProfileSlugs() ProfileSlugRepository
}
