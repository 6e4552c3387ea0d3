package conversation

// Stage is the position of a conversation inside the fixed dialogue graph.
type Stage string

const (
	StageStart          Stage = "start"
	StageAskName        Stage = "ask_name"
	StageAskDateOfBirth Stage = "ask_dob"
	StageAskLifeStage   Stage = "ask_life_stage"
	StageAskDependents  Stage = "ask_dependents"
	StageAskProtection  Stage = "ask_protection_level"
	StageAskBudget      Stage = "ask_budget"
	StageAskPhone       Stage = "ask_phone"
	StageAskIncome      Stage = "ask_income"
	StageAskEmail       Stage = "ask_email"
	StageAskMoreInfo    Stage = "ask_more_info"
	StageDone           Stage = "done"
)

// stageOrder lists every stage in dialogue order. Transitions only ever move
// forward along this list; the reset keyword is the single way back.
var stageOrder = []Stage{
	StageStart,
	StageAskName,
	StageAskDateOfBirth,
	StageAskLifeStage,
	StageAskDependents,
	StageAskProtection,
	StageAskBudget,
	StageAskPhone,
	StageAskIncome,
	StageAskEmail,
	StageAskMoreInfo,
	StageDone,
}

// Valid reports whether s is one of the enumerated stages.
func (s Stage) Valid() bool {
	for _, stage := range stageOrder {
		if s == stage {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the conversation has finished collecting data.
func (s Stage) IsTerminal() bool {
	return s == StageDone
}
