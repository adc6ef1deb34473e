package matcher

import (
	"strings"
)

// Tier is a score band that selects report messaging.
type Tier string

const (
	TierStrong Tier = "strong"
	TierSolid  Tier = "solid"
	TierReview Tier = "review"

	strongThreshold = 80
	solidThreshold  = 50

	// DefaultTop is how many keywords a finding quotes.
	DefaultTop = 3
)

// TierFor maps a score to its tier.
func TierFor(score int) Tier {
	switch {
	case score >= strongThreshold:
		return TierStrong
	case score >= solidThreshold:
		return TierSolid
	default:
		return TierReview
	}
}

// Label returns a human readable tier name.
func (t Tier) Label() string {
	switch t {
	case TierStrong:
		return "Strong match"
	case TierSolid:
		return "Solid, needs tuning"
	default:
		return "Requires major review"
	}
}

type findingTemplate struct {
	text string
	// when set, the finding is rendered only if the predicate holds.
	when func(v reportValues) bool
}

type reportValues struct {
	role        string
	topMatched  string
	topMissing  string
	firstMatch  string
	firstMiss   string
	haveMissing bool
}

func (v reportValues) expand(text string) string {
	return strings.NewReplacer(
		"{role}", v.role,
		"{matched}", v.topMatched,
		"{missing}", v.topMissing,
		"{first_matched}", v.firstMatch,
		"{first_missing}", v.firstMiss,
	).Replace(text)
}

func hasMissing(v reportValues) bool { return v.haveMissing }
func noMissing(v reportValues) bool  { return !v.haveMissing }

var tierFindings = map[Tier][]findingTemplate{
	TierStrong: {
		{text: "Excellent alignment with the **{role}** role: your resume already covers **{matched}**."},
		{text: "Keep quantifying achievements in your **Experience** section to stay ahead of other applicants."},
		{text: "Optionally mention **{missing}** to close the remaining gaps.", when: hasMissing},
		{text: "No critical keyword gaps detected for this role.", when: noMissing},
	},
	TierSolid: {
		{text: "Solid foundation for the **{role}** role, but the resume needs tuning before you apply."},
		{text: "Integrate the missing technical keywords: **{missing}** into relevant bullet points."},
		{text: "Add projects showcasing **{first_missing}** or quantify your experience with **{first_matched}** to improve the match."},
	},
	TierReview: {
		{text: "The resume requires a major review before applying for the **{role}** role."},
		{text: "Integrate the missing technical keywords: **{missing}** into relevant bullet points."},
		{text: "Add 2-3 quantifiable achievements to your **Experience** section."},
		{text: "Include links to your **GitHub** and **LinkedIn** for professional verification."},
	},
}

// BuildReport returns the findings for score, quoting the top DefaultTop keywords.
func BuildReport(score int, matched, missing []string, roleName string) []string {
	return BuildReportTop(score, matched, missing, roleName, DefaultTop)
}

// BuildReportTop is BuildReport with a custom number of quoted keywords.
func BuildReportTop(score int, matched, missing []string, roleName string, top int) []string {
	if top <= 0 {
		top = DefaultTop
	}

	role := strings.TrimSpace(roleName)
	if role == "" {
		role = "target"
	}

	values := reportValues{
		role:        role,
		topMatched:  joinTop(matched, top, "key technologies"),
		topMissing:  joinTop(missing, top, "advanced APIs"),
		firstMatch:  firstOr(matched, "key technologies"),
		firstMiss:   firstOr(missing, "advanced APIs"),
		haveMissing: len(missing) > 0,
	}

	templates := tierFindings[TierFor(clamp(score))]
	findings := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		if tmpl.when != nil && !tmpl.when(values) {
			continue
		}
		findings = append(findings, values.expand(tmpl.text))
	}
	return findings
}

// Summary returns a short profile paragraph for the role.
func Summary(roleName string, matched []string) string {
	role := strings.TrimSpace(roleName)
	if role == "" {
		role = "professional"
	}
	return "Results-driven **" + role + "** with 3+ years of hands-on experience in **" +
		joinTop(matched, DefaultTop, "key technologies") +
		"**. Proven track record of delivering scalable solutions and collaborating with cross-functional teams."
}

func joinTop(keywords []string, top int, fallback string) string {
	if len(keywords) == 0 {
		return fallback
	}
	if len(keywords) > top {
		keywords = keywords[:top]
	}
	return strings.Join(keywords, ", ")
}

func firstOr(keywords []string, fallback string) string {
	if len(keywords) == 0 {
		return fallback
	}
	return keywords[0]
}
