// internal/matching/scorer.go
package matching

import (
	"math"
	"strings"

	"liftout-matching/internal/models"
)

// Industry groups treated as related when no exact industry overlap exists.
// A mismatch is a soft signal, never disqualifying.
var relatedIndustryGroups = []string{"financial", "tech", "healthcare"}

// Score computes the seven-dimension compatibility score for one team against
// one opportunity. Pure and deterministic: no I/O, no shared state, safe to
// call concurrently.
func Score(team *models.Team, opp *models.Opportunity) models.MatchScore {
	breakdown := models.ScoreBreakdown{
		SkillsMatch:       scoreSkills(team.Specializations, opp.Skills),
		IndustryMatch:     scoreIndustry(team.Industry, opp.Industry),
		ExperienceMatch:   scoreExperience(team.Dynamics),
		LocationMatch:     scoreLocation(team.Location, opp.Location, opp.RemotePolicy),
		CompensationMatch: scoreCompensation(team, opp),
		CultureMatch:      scoreCulture(team, opp),
		AvailabilityMatch: scoreAvailability(team.Availability.Status),
	}

	return models.MatchScore{
		Total:     breakdown.Sum(),
		Breakdown: breakdown,
		Reasoning: buildReasoning(breakdown, team),
	}
}

// NewMatch scores the pair and attaches the derived presentation annotations.
func NewMatch(team models.Team, opp models.Opportunity) models.TeamOpportunityMatch {
	score := Score(&team, &opp)
	return models.TeamOpportunityMatch{
		Team:              team,
		Opportunity:       opp,
		Score:             score,
		Recommendation:    Recommendation(score.Total),
		KeyStrengths:      keyStrengths(score.Breakdown, &team),
		PotentialConcerns: potentialConcerns(score.Breakdown, &team),
	}
}

// roundHalf rounds half away from zero. Sub-scores are non-negative, so this
// is the pinned round-half-up rule.
func roundHalf(v float64) int {
	return int(math.Round(v))
}

// scoreSkills matches each required skill against the team's specializations
// using case-insensitive bidirectional substring containment, tolerating
// partial and compound skill names ("AWS" vs "AWS Lambda"). A posting with no
// required skills gets the neutral default instead of a penalty.
func scoreSkills(specializations, required []string) int {
	if len(required) == 0 {
		return roundHalf(0.5 * models.MaxSkillsMatch)
	}

	matched := 0
	for _, skill := range required {
		s := strings.ToLower(skill)
		for _, spec := range specializations {
			p := strings.ToLower(spec)
			if strings.Contains(p, s) || strings.Contains(s, p) {
				matched++
				break
			}
		}
	}

	return roundHalf(float64(matched) / float64(len(required)) * models.MaxSkillsMatch)
}

func scoreIndustry(teamIndustries, oppIndustries []string) int {
	for _, ti := range teamIndustries {
		for _, oi := range oppIndustries {
			if strings.EqualFold(ti, oi) {
				return models.MaxIndustryMatch
			}
		}
	}

	if hasRelatedIndustry(teamIndustries, oppIndustries) {
		return roundHalf(0.7 * models.MaxIndustryMatch)
	}

	return roundHalf(0.3 * models.MaxIndustryMatch)
}

func hasRelatedIndustry(teamIndustries, oppIndustries []string) bool {
	for _, group := range relatedIndustryGroups {
		if anyContains(teamIndustries, group) && anyContains(oppIndustries, group) {
			return true
		}
	}
	return false
}

func anyContains(items []string, substr string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), substr) {
			return true
		}
	}
	return false
}

// scoreExperience blends tenure (60%, capped at 3+ years) with cohesion (40%).
// A zero cohesion score is treated as unreported and defaults to 5. Cohesion is
// declared on a 0-10 scale; stored values outside it are clamped so the
// sub-score stays within its maximum.
func scoreExperience(dynamics models.TeamDynamics) int {
	tenure := math.Min(dynamics.YearsWorkingTogether/3.0, 1.0) * 0.6 * models.MaxExperienceMatch

	cohesion := dynamics.CohesionScore
	if cohesion == 0 {
		cohesion = 5
	}
	cohesion = math.Min(math.Max(cohesion, 0), 10)

	return roundHalf(tenure + cohesion/10.0*0.4*models.MaxExperienceMatch)
}

// scoreLocation evaluates branches in priority order; the first match wins.
func scoreLocation(loc models.TeamLocation, oppLocation, remotePolicy string) int {
	switch {
	case strings.EqualFold(loc.Primary, oppLocation),
		loc.Remote && remotePolicy == models.RemotePolicyRemote:
		return models.MaxLocationMatch
	case remotePolicy == models.RemotePolicyHybrid && loc.Remote:
		return roundHalf(0.8 * models.MaxLocationMatch)
	case loc.Remote || remotePolicy != models.RemotePolicyOnsite:
		return roundHalf(0.6 * models.MaxLocationMatch)
	default:
		return roundHalf(0.2 * models.MaxLocationMatch)
	}
}

// scoreCompensation compares the opportunity budget against the team's
// expectation range. Missing data on either side yields the neutral default so
// incomplete profiles never error out of scoring.
func scoreCompensation(team *models.Team, opp *models.Opportunity) int {
	expected := team.CompensationExpectations.TotalTeamValue
	if expected == nil || opp.Compensation == nil {
		return roundHalf(0.5 * models.MaxCompensationMatch)
	}

	budget := opp.Compensation.Total
	if budget == 0 {
		budget = opp.Compensation.Max * float64(team.Size)
	}

	switch {
	case budget >= expected.Max:
		return models.MaxCompensationMatch
	case budget >= expected.Min:
		return roundHalf(0.8 * models.MaxCompensationMatch)
	case budget >= 0.8*expected.Min:
		return roundHalf(0.5 * models.MaxCompensationMatch)
	default:
		return roundHalf(0.2 * models.MaxCompensationMatch)
	}
}

// scoreCulture starts from a neutral base, adds a work-arrangement bonus and
// up to 20% proportional to the team values covered by the posted culture.
func scoreCulture(team *models.Team, opp *models.Opportunity) int {
	score := 0.5 * models.MaxCultureMatch

	pref := team.Dynamics.PreferredWorkArrangement
	if pref == models.WorkArrangementRemote && opp.RemotePolicy == models.RemotePolicyRemote {
		score += 0.3 * models.MaxCultureMatch
	} else if pref == models.WorkArrangementHybrid && opp.RemotePolicy == models.RemotePolicyHybrid {
		score += 0.2 * models.MaxCultureMatch
	}

	if len(opp.Culture.Values) > 0 && len(team.Values) > 0 {
		matched := 0
		for _, value := range team.Values {
			if anyContains(opp.Culture.Values, strings.ToLower(value)) {
				matched++
			}
		}
		score += float64(matched) / float64(len(team.Values)) * 0.2 * models.MaxCultureMatch
	}

	return roundHalf(math.Min(score, models.MaxCultureMatch))
}

func scoreAvailability(status string) int {
	switch status {
	case models.AvailabilityAvailable:
		return models.MaxAvailabilityMatch
	case models.AvailabilitySelective:
		return models.MaxAvailabilityMatch * 7 / 10
	default:
		return 0
	}
}
