package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	JobIDField        = "ID"
	JobEmployerField  = "Employer"
	JobCityField      = "City"
	JobEmploymentType = "EmploymentType"
)

// Employment types used by the board.
const (
	FullTime   = "FULLTIME"
	PartTime   = "PARTTIME"
	Contractor = "CONTRACTOR"
	Intern     = "INTERN"
)

// Experience levels.
const (
	ExperienceEntry  = "entry"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
)

// Listings is an ordered set of jobs.
type Listings struct {
	Items []*Job
}

// Job is a single job posting.
type Job struct {
	ID             string `json:"job_id" mapstructure:"job_id"`
	Title          string `json:"job_title" mapstructure:"job_title"`
	Employer       string `json:"employer_name" mapstructure:"employer_name"`
	EmployerLogo   string `json:"employer_logo,omitempty" mapstructure:"employer_logo"`
	City           string `json:"job_city,omitempty" mapstructure:"job_city"`
	Country        string `json:"job_country,omitempty" mapstructure:"job_country"`
	IsRemote       bool   `json:"job_is_remote" mapstructure:"job_is_remote"`
	EmploymentType string `json:"job_employment_type,omitempty" mapstructure:"job_employment_type"`
	Experience     string `json:"job_experience,omitempty" mapstructure:"job_experience"`
	MinSalary      int    `json:"job_min_salary,omitempty" mapstructure:"job_min_salary"`
	MaxSalary      int    `json:"job_max_salary,omitempty" mapstructure:"job_max_salary"`
	Salary         int    `json:"job_salary,omitempty" mapstructure:"job_salary"`
	Description    string `json:"job_description,omitempty" mapstructure:"job_description"`
	ApplyLink      string `json:"job_apply_link,omitempty" mapstructure:"job_apply_link"`
	PostedAt       string `json:"job_posted_at,omitempty" mapstructure:"job_posted_at"`

	// Fit is set by the fit filter when a resume is scored against the job.
	Fit *Fit `json:"fit,omitempty"`
}

// Fit is the outcome of scoring a resume against the job description.
type Fit struct {
	Score   int      `json:"score"`
	Matched []string `json:"matched,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// SalaryCeiling returns the highest salary figure known for the job.
func (j *Job) SalaryCeiling() int {
	return max(j.MaxSalary, j.Salary, j.MinSalary)
}

// SalaryRange formats the salary for display.
func (j *Job) SalaryRange() string {
	switch {
	case j.MinSalary > 0 && j.MaxSalary > 0:
		return fmt.Sprintf("$%dk - $%dk", j.MinSalary/1000, j.MaxSalary/1000)
	case j.SalaryCeiling() > 0:
		return fmt.Sprintf("$%dk", j.SalaryCeiling()/1000)
	default:
		return "not specified"
	}
}

// Location returns "Remote" for remote jobs and the city otherwise.
func (j *Job) Location() string {
	if j.IsRemote && strings.TrimSpace(j.City) == "" {
		return "Remote"
	}
	return j.City
}

// ScoringText is the text a resume is scored against.
func (j *Job) ScoringText() string {
	return j.Title + "\n" + j.Description
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return j.ID
	case JobEmployerField:
		return j.Employer
	case JobCityField:
		return j.City
	case JobEmploymentType:
		return j.EmploymentType
	default:
		return ""
	}
}

func (l *Listings) Len() int {
	return len(l.Items)
}

func (l *Listings) FindByID(id string) *Job {
	for _, job := range l.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// IDs returns job ids in listing order.
func (l *Listings) IDs() []string {
	ids := make([]string, 0, len(l.Items))
	for _, job := range l.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

// Exclude removes every job whose field equals one of targets and returns the removed ids.
// The order of the remaining jobs is preserved.
func (l *Listings) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		set[target] = struct{}{}
	}

	return l.Retain(func(job *Job) bool {
		_, drop := set[job.GetStringField(name)]
		return !drop
	})
}

// Retain keeps the jobs for which keep returns true and returns the removed ids.
func (l *Listings) Retain(keep func(*Job) bool) []string {
	var removed []string
	kept := l.Items[:0]
	for _, job := range l.Items {
		if keep(job) {
			kept = append(kept, job)
			continue
		}
		removed = append(removed, job.ID)
	}
	clear(l.Items[len(kept):])
	l.Items = kept
	return removed
}

// ReportByEmployer groups jobs by employer name.
func (l *Listings) ReportByEmployer() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range l.Items {
		entry := map[string]string{
			"title":    job.Title,
			"location": job.Location(),
			"type":     job.EmploymentType,
			"salary":   job.SalaryRange(),
			"apply":    job.ApplyLink,
		}
		if job.Fit != nil {
			entry["fit_score"] = fmt.Sprintf("%d", job.Fit.Score)
			if len(job.Fit.Missing) > 0 {
				entry["fit_missing"] = strings.Join(job.Fit.Missing, ", ")
			}
			if job.Fit.Error != "" {
				entry["fit_error"] = job.Fit.Error
			}
		}
		report[job.Employer] = append(report[job.Employer], entry)
	}
	return report
}

func (l *Listings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}
