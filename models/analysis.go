package models

// AIOperation selects the transform the AI content service applies
// to the submitted text or document.
type AIOperation string

const (
	AIFix            AIOperation = "fix"
	AIImprove        AIOperation = "improve"
	AIExpand         AIOperation = "expand"
	AITranslate      AIOperation = "translate"
	AIAnalyze        AIOperation = "analyze"
	AIGenerateLetter AIOperation = "generate_letter"
)

// Analysis is the structured result of an AI CV review. The caller decides
// what to do with it; the document store is never touched directly.
type Analysis struct {
	Score            int      `json:"score"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	RecommendedRoles []string `json:"recommended_roles"`
}
