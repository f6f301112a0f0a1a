// internal/matching/reasoning.go
package matching

import (
	"fmt"

	"liftout-matching/internal/models"
)

// Recommendation classifies a total score into a tier. Lower bounds are
// inclusive: 85 is excellent, 84 is good.
func Recommendation(total int) string {
	switch {
	case total >= 85:
		return models.RecommendationExcellent
	case total >= 70:
		return models.RecommendationGood
	case total >= 55:
		return models.RecommendationFair
	default:
		return models.RecommendationPoor
	}
}

// buildReasoning derives the ordered reasoning sentences from the breakdown.
// Checks run in the fixed evaluation order: skills, industry, experience,
// compensation, location. Each is independent; any number may fire.
func buildReasoning(b models.ScoreBreakdown, team *models.Team) []string {
	reasons := make([]string, 0, 5)

	switch {
	case b.SkillsMatch >= 20:
		reasons = append(reasons, "Strong skills alignment with the opportunity requirements")
	case b.SkillsMatch >= 15:
		reasons = append(reasons, "Good coverage of the required skills")
	default:
		reasons = append(reasons, "Limited overlap between team specializations and required skills")
	}

	if b.IndustryMatch >= 16 {
		reasons = append(reasons, "Excellent industry fit")
	} else if b.IndustryMatch >= 10 {
		reasons = append(reasons, "Related industry experience transfers well")
	}

	if b.ExperienceMatch >= 12 {
		reasons = append(reasons, fmt.Sprintf(
			"Highly experienced team with %.1f years working together",
			team.Dynamics.YearsWorkingTogether))
	}

	if b.CompensationMatch <= 8 {
		reasons = append(reasons, "Compensation expectations may exceed the posted budget")
	}

	if b.LocationMatch <= 5 {
		reasons = append(reasons, "Location mismatch may require relocation or a remote arrangement")
	}

	return reasons
}

// keyStrengths and potentialConcerns are presentation-only annotations. They
// read the breakdown plus team fields that scoring ignores (verification,
// liftout history, performance metrics, non-compete restrictions) and never
// feed back into the total.

func keyStrengths(b models.ScoreBreakdown, team *models.Team) []string {
	strengths := []string{}

	if b.SkillsMatch >= 20 {
		strengths = append(strengths, "Skill set closely matches the role requirements")
	}
	if b.IndustryMatch >= 16 {
		strengths = append(strengths, "Direct experience in the target industry")
	}
	if team.Dynamics.YearsWorkingTogether >= 3 {
		strengths = append(strengths, fmt.Sprintf(
			"Established team with %.0f+ years working together",
			team.Dynamics.YearsWorkingTogether))
	}
	if team.Verification.Status == models.VerificationVerified {
		strengths = append(strengths, "Verified team profile")
	}
	if team.PerformanceMetrics.SuccessRate >= 90 {
		strengths = append(strengths, "Outstanding delivery track record")
	}
	if len(team.LiftoutHistory.PreviousLiftouts) > 0 {
		strengths = append(strengths, "Has completed a liftout transition before")
	}

	return strengths
}

func potentialConcerns(b models.ScoreBreakdown, team *models.Team) []string {
	concerns := []string{}

	if team.LiftoutHistory.NonCompeteRestrictions.HasRestrictions {
		concerns = append(concerns, "Non-compete restrictions may complicate the transition")
	}
	if b.CompensationMatch <= 8 {
		concerns = append(concerns, "Budget may fall short of the team's expectations")
	}
	if b.LocationMatch <= 5 {
		concerns = append(concerns, "Location preferences differ from the opportunity")
	}
	if team.Availability.Status == models.AvailabilitySelective {
		concerns = append(concerns, "Team is selective about new opportunities")
	}
	if team.Dynamics.YearsWorkingTogether < 1 {
		concerns = append(concerns, "Team has been working together for less than a year")
	}

	return concerns
}
