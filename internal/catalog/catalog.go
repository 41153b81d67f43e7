// Package catalog holds the static health interview question tree. The
// catalog is immutable: it is built once at init and callers only ever see
// copies. Top-level questions may carry follow-ups that are surfaced only
// when the parent is answered affirmatively; the tree is exactly two levels
// deep.
package catalog

import "travelhealth/internal/model"

func followUp(text string, category model.Category) model.Question {
	return model.Question{Text: text, Category: category, IsFollowUp: true}
}

var questions = []model.Question{
	{
		Text:     "Do you have any chronic medical conditions?",
		Category: model.CategoryGeneral,
		FollowUps: []model.Question{
			followUp("Are you currently under treatment for them?", model.CategoryGeneral),
		},
	},
	{
		Text:        "Do you have diabetes?",
		Category:    model.CategoryEndocrine,
		Description: "Type 1 or Type 2, including gestational diabetes.",
		FollowUps: []model.Question{
			followUp("Are you taking insulin?", model.CategoryEndocrine),
			followUp("Do you monitor your blood sugar levels regularly?", model.CategoryEndocrine),
		},
	},
	{
		Text:     "Do you have high blood pressure?",
		Category: model.CategoryCardiovascular,
		FollowUps: []model.Question{
			followUp("Are you taking medication to control it?", model.CategoryCardiovascular),
		},
	},
	{
		Text:     "Have you ever had a heart attack or stroke?",
		Category: model.CategoryCardiovascular,
		FollowUps: []model.Question{
			followUp("Was it within the last five years?", model.CategoryCardiovascular),
			followUp("Are you on blood thinners?", model.CategoryCardiovascular),
		},
	},
	{
		Text:     "Do you have asthma or another respiratory condition?",
		Category: model.CategoryRespiratory,
		FollowUps: []model.Question{
			followUp("Do you carry an inhaler?", model.CategoryRespiratory),
		},
	},
	{
		Text:     "Do you have any kidney-related conditions?",
		Category: model.CategoryRenal,
		FollowUps: []model.Question{
			followUp("Do you require dialysis?", model.CategoryRenal),
		},
	},
	{
		Text:     "Do you experience frequent migraines or seizures?",
		Category: model.CategoryNeurological,
	},
	{
		Text:        "Do you have any food allergies?",
		Category:    model.CategoryImmune,
		Description: "Including nut, shellfish, dairy, or gluten sensitivities.",
		FollowUps: []model.Question{
			followUp("Do you carry an epinephrine auto-injector?", model.CategoryImmune),
		},
	},
	{
		Text:     "Have you had surgery in the last twelve months?",
		Category: model.CategoryGeneral,
	},
	{
		Text:     "Do you smoke or use tobacco products?",
		Category: model.CategoryLifestyle,
	},
	{
		Text:     "Do you drink alcohol regularly?",
		Category: model.CategoryLifestyle,
	},
	{
		Text:     "Do you exercise at least three times a week?",
		Category: model.CategoryLifestyle,
	},
}

// TopLevel returns the top-level questions in catalog order. Follow-ups are
// present only inside their parent's FollowUps slice, never as entries. The
// returned slice is a copy.
func TopLevel() []model.Question {
	out := make([]model.Question, len(questions))
	copy(out, questions)
	return out
}

// Categories returns the distinct category tags used by the catalog, in
// first-appearance order.
func Categories() []model.Category {
	seen := make(map[model.Category]bool)
	var out []model.Category
	for _, q := range questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}

// Len returns the number of top-level questions
func Len() int {
	return len(questions)
}
