package model

const (
	LabelConservative        = "Conservative"
	LabelLeaningConservative = "Leaning Conservative"
	LabelNeutral             = "Neutral/Centrist"
	LabelLeaningLiberal      = "Leaning Liberal"
	LabelLiberal             = "Liberal"
)

// ClampScore forces a bias score into the 0..100 scale.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// BiasLabel maps a 0..100 bias score to its category. 50 is neutral.
func BiasLabel(score int) string {
	score = ClampScore(score)
	switch {
	case score < 35:
		return LabelConservative
	case score < 45:
		return LabelLeaningConservative
	case score <= 55:
		return LabelNeutral
	case score < 65:
		return LabelLeaningLiberal
	default:
		return LabelLiberal
	}
}
