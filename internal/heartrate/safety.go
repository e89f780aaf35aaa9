package heartrate

import (
	"fmt"
	"math"

	"github.com/myrjola/pulsecoach/internal/profile"
)

// RiskLevel grades how urgently the user should react to a reading.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var riskRank = map[RiskLevel]int{
	RiskLow:      0,
	RiskModerate: 1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// escalate raises the risk to at least the floor, never lowers it.
func escalate(current, floor RiskLevel) RiskLevel {
	if riskRank[floor] > riskRank[current] {
		return floor
	}
	return current
}

// safeLimitMultiplier scales the maximum heart rate down to a sustainable
// training ceiling per fitness level.
var safeLimitMultiplier = map[profile.FitnessLevel]float64{
	profile.LevelBeginner:     0.75,
	profile.LevelIntermediate: 0.85,
	profile.LevelAdvanced:     0.90,
}

// conditionThresholdPct caps the tolerated percentage of maximum heart rate
// per diagnosed condition. Breaching a cap always produces an alert and makes
// the verdict unsafe.
var conditionThresholdPct = map[profile.HealthCondition]float64{
	profile.ConditionHeartDisease: 70,
	profile.ConditionHypertension: 80,
	profile.ConditionDiabetes:     85,
	profile.ConditionAsthma:       80,
}

// SafetyVerdict is the outcome of a safety evaluation. It is a value, not an
// error: an unsafe reading is a successful evaluation with Safe=false.
type SafetyVerdict struct {
	Safe                     bool      `json:"safe"`
	RiskLevel                RiskLevel `json:"risk_level"`
	CurrentHR                int       `json:"current_hr"`
	MaxHR                    int       `json:"max_hr"`
	SafeLimit                int       `json:"safe_limit"`
	PercentOfMax             float64   `json:"percent_of_max"`
	ZoneDescription          string    `json:"zone_description"`
	Alerts                   []string  `json:"alerts"`
	Recommendations          []string  `json:"recommendations"`
	NextCheckIntervalMinutes int       `json:"next_check_interval_minutes"`
}

// EvaluateSafety judges whether a heart rate reading is safe for this person
// right now.
//
// Condition-specific alerts come before generic ones so that the most specific
// guidance is read first. The low heart rate notice is informational and does
// not flip the verdict.
func EvaluateSafety(
	currentHR, age int,
	level profile.FitnessLevel,
	conditions []profile.HealthCondition,
	formula Formula,
) SafetyVerdict {
	maxHR := formula.MaxHR(age)
	multiplier, ok := safeLimitMultiplier[level]
	if !ok {
		multiplier = safeLimitMultiplier[profile.LevelBeginner]
	}
	safeLimit := int(float64(maxHR) * multiplier)
	hrPercent := float64(currentHR) / float64(maxHR) * 100

	verdict := SafetyVerdict{
		Safe:            true,
		RiskLevel:       RiskLow,
		CurrentHR:       currentHR,
		MaxHR:           maxHR,
		SafeLimit:       safeLimit,
		PercentOfMax:    math.Round(hrPercent*10) / 10,
		ZoneDescription: describePercent(hrPercent),
	}

	var genericAlerts []string
	switch {
	case float64(currentHR) > 0.95*float64(maxHR):
		verdict.Safe = false
		verdict.RiskLevel = RiskCritical
		genericAlerts = append(genericAlerts,
			fmt.Sprintf("Heart rate %d bpm is near the maximum of %d bpm. Stop exercising immediately.", currentHR, maxHR))
	case currentHR > safeLimit:
		verdict.Safe = false
		verdict.RiskLevel = RiskHigh
		genericAlerts = append(genericAlerts,
			fmt.Sprintf("Heart rate %d bpm exceeds the safe limit of %d bpm for your fitness level.", currentHR, safeLimit))
	case float64(currentHR) > 0.60*float64(maxHR):
		verdict.RiskLevel = RiskModerate
	}

	var conditionAlerts []string
	for _, condition := range conditions {
		threshold, known := conditionThresholdPct[condition]
		if !known || hrPercent <= threshold {
			continue
		}
		verdict.Safe = false
		verdict.RiskLevel = escalate(verdict.RiskLevel, RiskHigh)
		conditionAlerts = append(conditionAlerts,
			fmt.Sprintf("With %s the heart rate should stay under %.0f%% of maximum. You are at %.0f%%.",
				conditionName(condition), threshold, hrPercent))
	}

	verdict.Alerts = append(conditionAlerts, genericAlerts...)

	if currentHR < 50 && currentHR > 0 {
		verdict.Alerts = append(verdict.Alerts,
			"Heart rate is unusually low. If you feel dizzy or faint, consult a doctor.")
	}

	verdict.Recommendations = recommendationsFor(verdict.RiskLevel)
	verdict.NextCheckIntervalMinutes = nextCheckInterval(verdict.RiskLevel)
	return verdict
}

func recommendationsFor(risk RiskLevel) []string {
	switch risk {
	case RiskCritical:
		return []string{
			"Stop all activity and sit down.",
			"Seek medical help if the heart rate does not come down within 5 minutes.",
		}
	case RiskHigh:
		return []string{
			"Slow down gradually.",
			"Keep monitoring the heart rate closely.",
		}
	case RiskModerate:
		return []string{"Heart rate is in the training range. Keep monitoring."}
	default:
		return []string{"Heart rate is in the safe range. Increase intensity gradually if desired."}
	}
}

func nextCheckInterval(risk RiskLevel) int {
	switch risk {
	case RiskCritical:
		return 2
	case RiskHigh:
		return 5
	case RiskModerate:
		return 10
	default:
		return 15
	}
}

// describePercent maps the percentage of maximum onto a coarse effort label.
func describePercent(hrPercent float64) string {
	switch {
	case hrPercent < 50:
		return "resting or very light effort"
	case hrPercent < 60:
		return "light effort, recovery zone"
	case hrPercent < 70:
		return "moderate effort, aerobic base zone"
	case hrPercent < 80:
		return "brisk effort, aerobic zone"
	case hrPercent < 90:
		return "hard effort, threshold zone"
	default:
		return "maximal effort, sustainable only briefly"
	}
}

func conditionName(condition profile.HealthCondition) string {
	switch condition {
	case profile.ConditionHeartDisease:
		return "heart disease"
	case profile.ConditionHypertension:
		return "hypertension"
	case profile.ConditionDiabetes:
		return "diabetes"
	case profile.ConditionAsthma:
		return "asthma"
	case profile.ConditionArthritis:
		return "arthritis"
	case profile.ConditionPregnancy:
		return "pregnancy"
	default:
		return string(condition)
	}
}

// HealthRecommendations compiles general training guidance from the profile.
// Used by the chatbot and the profile endpoints.
func HealthRecommendations(p *profile.Profile) []string {
	var out []string

	if p.HasCondition(profile.ConditionHeartDisease) {
		out = append(out, "Keep all training light and get a medical clearance before raising intensity.")
	}
	if p.HasCondition(profile.ConditionHypertension) {
		out = append(out, "Avoid breath-holding and heavy maximal lifts. Favor rhythmic endurance work.")
	}
	if p.HasCondition(profile.ConditionDiabetes) {
		out = append(out, "Check blood sugar before and after exercise and carry fast carbohydrates.")
	}
	if p.HasCondition(profile.ConditionAsthma) {
		out = append(out, "Warm up long and keep reliever medication at hand.")
	}
	if p.HasCondition(profile.ConditionArthritis) {
		out = append(out, "Prefer low-impact work such as swimming or cycling on sore days.")
	}
	if p.HasCondition(profile.ConditionPregnancy) {
		out = append(out, "Stay at conversational intensity and avoid exercises lying on the back.")
	}

	if p.Age > 60 {
		out = append(out, "Include balance and strength work at least twice a week.")
	}
	if p.FitnessLevel == profile.LevelBeginner {
		out = append(out, "Build up duration before intensity. Consistency beats single hard sessions.")
	}

	switch p.BMICategory() {
	case "underweight":
		out = append(out, "Pair training with sufficient energy intake.")
	case "obese":
		out = append(out, "Favor low-impact cardio to protect the joints while building fitness.")
	}

	if len(out) == 0 {
		out = append(out, "No special restrictions. Train across all five zones through the week.")
	}
	return out
}
