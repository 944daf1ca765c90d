package model

import (
	"time"

	"github.com/karbala-lab/daleel/pkg/domain/types"
)

// DepartmentCount is one row of a department ranking
type DepartmentCount struct {
	Department string
	Count      int64
}

// UserUsage is one row of a per-user usage aggregate, joined with the user
// record for display
type UserUsage struct {
	UserID    types.UserID
	Name      string
	Handle    string
	Count     int64
	FirstUsed time.Time
	LastUsed  time.Time
}

// UserActivity is one row of a most-recent-activity listing
type UserActivity struct {
	UserID   types.UserID
	Name     string
	Handle   string
	LastUsed time.Time
}

// Summary is the headline numbers of the admin panel
type Summary struct {
	TotalUsers     int64
	LastActivity   time.Time
	HasActivity    bool
	TopDepartments []DepartmentCount
	TopUsers       []UserUsage
}
