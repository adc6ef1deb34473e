package jobs

import (
	"fmt"
	"math/rand/v2"
	"time"
)

var (
	mockTitles = []string{
		"Software Engineer", "Frontend Developer", "Backend Specialist", "Cloud Architect", "Security Analyst",
		"Mobile App Dev", "Data Scientist", "DevOps Engineer", "Product Manager", "UX/UI Designer",
	}
	mockCompanies = []string{
		"AlphaCorp Solutions", "ByteStream Dynamics", "CodeWave Innovations", "DigitalGenius Inc.", "EvolveTech Systems",
		"FusionWorks Group", "Global Nexus", "Hyper Edge", "Infinity Labs", "Juno Systems",
	}
	mockDescriptions = []string{
		"Exciting opportunity to join our core development team focusing on microservices, performance optimization, and scalable APIs, utilizing modern cloud infrastructures.",
		"Build highly scalable, aesthetic user interfaces using modern frameworks like React/Vue/Angular. Must have expertise in state management and component design, driving user experience initiatives.",
	}
	mockExperience = []string{ExperienceEntry, ExperienceMid, ExperienceSenior}
)

const (
	DefaultGeneratedCount = 1000
	DefaultSeed           = 42
)

// GeneratorConfig controls the mock job board.
type GeneratorConfig struct {
	Count int
	Seed  uint64
	// Now anchors job_posted_at; zero means time.Now.
	Now time.Time
}

// Generate builds a deterministic set of mock jobs. The same seed always yields the same salaries.
func Generate(cfg GeneratorConfig) *Listings {
	count := cfg.Count
	if count <= 0 {
		count = DefaultGeneratedCount
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}

	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	items := make([]*Job, 0, count)
	for i := range count {
		items = append(items, mockJob(i, rnd, now))
	}
	return &Listings{Items: items}
}

func mockJob(index int, rnd *rand.Rand, now time.Time) *Job {
	company := mockCompanies[index%len(mockCompanies)]
	remote := index%4 != 0

	city := "Remote"
	if !remote {
		switch index % 7 {
		case 0:
			city = "San Francisco"
		case 1:
			city = "New York"
		case 2:
			city = "Austin"
		default:
			city = "Seattle"
		}
	}

	employment := PartTime
	if index%3 == 0 {
		employment = FullTime
	}

	minSalary := (rnd.IntN(50) + 80) * 1000
	maxSalary := minSalary + (rnd.IntN(40)+20)*1000

	return &Job{
		ID:             fmt.Sprintf("mock-%d", index),
		Title:          fmt.Sprintf("%s - Lvl %d", mockTitles[index%len(mockTitles)], index/12+1),
		Employer:       company,
		EmployerLogo:   "https://placehold.co/48x48/1F2937/10B981?text=" + company[:1],
		City:           city,
		Country:        "US",
		IsRemote:       remote,
		EmploymentType: employment,
		Experience:     mockExperience[index%len(mockExperience)],
		MinSalary:      minSalary,
		MaxSalary:      maxSalary,
		Description:    mockDescriptions[index%len(mockDescriptions)],
		ApplyLink:      "#",
		PostedAt:       now.Add(-time.Duration(index%30) * 24 * time.Hour).UTC().Format(time.RFC3339),
	}
}
