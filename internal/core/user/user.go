package user

// Access levels, highest first.
const (
	AccessLevelAdmin    = "Admin"
	AccessLevelManager  = "Responsabile"
	AccessLevelEmployee = "Employee"
)

var accessLevels = []string{AccessLevelAdmin, AccessLevelManager, AccessLevelEmployee}

func AccessLevels() []string {
	out := make([]string, len(accessLevels))
	copy(out, accessLevels)
	return out
}

func IsValidAccessLevel(level string) bool {
	for _, l := range accessLevels {
		if l == level {
			return true
		}
	}
	return false
}

// IsManager reports whether level may see and manage other employees' data.
func IsManager(level string) bool {
	return level == AccessLevelAdmin || level == AccessLevelManager
}
