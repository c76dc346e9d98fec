// Package roster holds the school records read from the hosted backend.
package roster

import (
	"github.com/shopspring/decimal"
)

// Backend collection names.
const (
	CollectionUsers       = "users"
	CollectionStudents    = "students"
	CollectionAssessments = "assessments"
)

// UserProfile is a row of the users collection.
type UserProfile struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// UserProfileFields is the projection used when listing users.
var UserProfileFields = []string{"id", "first_name", "last_name", "email", "role"}

// Assessment is a single scored piece of work.
type Assessment struct {
	Subject string          `json:"subject"`
	Score   decimal.Decimal `json:"score"`
}

// Student is a row of the students collection with its embedded assessments.
type Student struct {
	ID          string       `json:"id"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	YearGroup   int          `json:"year_group"`
	Assessments []Assessment `json:"assessments"`
}

// StudentFields selects students together with their assessments.
var StudentFields = []string{"id", "first_name", "last_name", "year_group", "assessments(subject,score)"}

// StudentSummary is what the dashboard shows per student.
type StudentSummary struct {
	Student
	AssessmentCount int
	AverageScore    decimal.Decimal
	HasScores       bool
}

// Summarize averages the student's scores to two decimal places.
func Summarize(s Student) StudentSummary {
	sum := StudentSummary{Student: s, AssessmentCount: len(s.Assessments)}
	if len(s.Assessments) == 0 {
		return sum
	}
	total := decimal.Zero
	for _, a := range s.Assessments {
		total = total.Add(a.Score)
	}
	sum.AverageScore = total.Div(decimal.NewFromInt(int64(len(s.Assessments)))).Round(2)
	sum.HasScores = true
	return sum
}

// Diagnostics is the aggregate view produced with the privileged client.
type Diagnostics struct {
	TotalUsers    int64         `json:"totalUsers"`
	TotalStudents int64         `json:"totalStudents"`
	Users         []UserProfile `json:"users"`
}
