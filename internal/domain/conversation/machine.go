package conversation

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Field keys stored on a conversation. Keys are added only after the bound
// validator accepts the turn and are never removed except on reset.
const (
	FieldName        = "name"
	FieldDateOfBirth = "dob"
	FieldAge         = "age"
	FieldLifeStage   = "life_stage"
	FieldDependents  = "dependents"
	FieldProtection  = "protection_level"
	FieldBudget      = "budget"
	FieldPhone       = "phone"
	FieldIncome      = "income"
	FieldEmail       = "email"
	FieldMoreInfo    = "more_info"

	// Derived at the income step, folded in alongside the raw amount.
	FieldYearsCoverage       = "years_coverage"
	FieldRecommendedCoverage = "recommended_coverage"
	FieldPremiumRate         = "premium_rate"
	FieldAnnualPremium       = "annual_premium"
	FieldMonthlyPremium      = "monthly_premium"
)

// Fields is the incrementally built answer set of one conversation.
type Fields map[string]string

func (f Fields) clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Conversation is one in-flight or completed intake. It is plain data so the
// registry can hand out copies; all mutation goes through Flow.Advance.
type Conversation struct {
	Stage  Stage  `json:"stage"`
	Fields Fields `json:"fields"`
}

// New returns a fresh conversation positioned at the start stage.
func New() *Conversation {
	return &Conversation{Stage: StageStart, Fields: Fields{}}
}

// Reset reinitializes the conversation in place.
func (c *Conversation) Reset() {
	c.Stage = StageStart
	c.Fields = Fields{}
}

// Clone returns a deep copy, supporting the registry's copy-in/copy-out
// discipline.
func (c *Conversation) Clone() *Conversation {
	return &Conversation{Stage: c.Stage, Fields: c.Fields.clone()}
}

// CompletionFunc receives the full accumulated fields when data collection
// finishes (the email step). It runs synchronously before the reply is
// returned; its error is logged and swallowed so the turn is unaffected.
type CompletionFunc func(ctx context.Context, fields Fields) error

// step binds a stage to its validator, its success transition and its
// prompt builders. entry renders the prompt shown when the conversation
// arrives at the stage; retry renders the corrective prompt when input is
// rejected while sitting on it.
type step struct {
	collect  func(f *Flow, c *Conversation, msg string) error
	next     Stage
	entry    func(fields Fields) string
	retry    func(fields Fields, msg string) string
	complete bool
}

// Flow owns the dialogue table and drives conversations through it. It holds
// no per-conversation state and is safe for concurrent use across distinct
// conversations.
type Flow struct {
	resetKeyword string
	onComplete   CompletionFunc
	now          func() time.Time
	log          zerolog.Logger
	steps        map[Stage]step
}

// Option customizes a Flow.
type Option func(*Flow)

// WithCompletionHook installs the collaborator call made when the email step
// succeeds.
func WithCompletionHook(hook CompletionFunc) Option {
	return func(f *Flow) { f.onComplete = hook }
}

// WithClock overrides the time source used for age computation.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// NewFlow builds the dialogue flow. resetKeyword is matched
// case-insensitively against every inbound turn before anything else.
func NewFlow(resetKeyword string, log zerolog.Logger, opts ...Option) *Flow {
	f := &Flow{
		resetKeyword: resetKeyword,
		now:          time.Now,
		log:          log.With().Str("component", "conversation-flow").Logger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.steps = buildSteps()
	return f
}

// Advance runs one turn: validate the message against the current stage,
// mutate fields on success and return the next prompt, or re-prompt without
// mutation on rejection. Repeated invalid input is idempotent.
func (f *Flow) Advance(ctx context.Context, c *Conversation, message string) string {
	message = strings.TrimSpace(message)

	if strings.EqualFold(message, f.resetKeyword) {
		c.Reset()
		return promptResetAck()
	}

	if c.Stage == StageDone {
		return promptDoneIdle(f.resetKeyword)
	}

	st, ok := f.steps[c.Stage]
	if !ok {
		// Unknown stage can only come from a corrupted registry entry.
		f.log.Warn().Str("stage", string(c.Stage)).Msg("unknown stage, reinitializing conversation")
		c.Reset()
		st = f.steps[c.Stage]
	}

	if err := st.collect(f, c, message); err != nil {
		return st.retry(c.Fields, message)
	}

	c.Stage = st.next

	if st.complete && f.onComplete != nil {
		if err := f.onComplete(ctx, c.Fields.clone()); err != nil {
			f.log.Error().Err(err).Msg("completion hook failed, reply unaffected")
		}
	}

	return f.steps[c.Stage].entry(c.Fields)
}

// buildSteps assembles the dialogue table. The entry builder of a stage is
// rendered when the previous stage hands over to it.
func buildSteps() map[Stage]step {
	return map[Stage]step{
		StageStart: {
			// Any first contact, including an empty message, greets the user.
			collect: func(_ *Flow, _ *Conversation, _ string) error { return nil },
			next:    StageAskName,
			entry:   func(Fields) string { return promptResetAck() },
			retry:   func(_ Fields, _ string) string { return promptResetAck() },
		},
		StageAskName: {
			collect: func(_ *Flow, c *Conversation, msg string) error {
				if msg == "" {
					return ErrBadFormat
				}
				c.Fields[FieldName] = msg
				return nil
			},
			next:  StageAskDateOfBirth,
			entry: func(Fields) string { return promptGreeting() },
			retry: func(_ Fields, _ string) string { return "Please enter your name to continue." },
		},
		StageAskDateOfBirth: {
			collect: func(f *Flow, c *Conversation, msg string) error {
				dob, err := ParseDateOfBirth(msg)
				if err != nil {
					return err
				}
				c.Fields[FieldDateOfBirth] = msg
				c.Fields[FieldAge] = strconv.Itoa(AgeAt(dob, f.now()))
				return nil
			},
			next:  StageAskLifeStage,
			entry: promptAskDateOfBirth,
			retry: retryDateOfBirth,
		},
		StageAskLifeStage: {
			collect: collectOption(lifeStageOptions, FieldLifeStage),
			next:    StageAskDependents,
			entry:   promptAskLifeStage,
			retry:   func(_ Fields, _ string) string { return retryOptions(lifeStageQuestion, lifeStageOptions) },
		},
		StageAskDependents: {
			collect: collectOption(dependentsOptions, FieldDependents),
			next:    StageAskProtection,
			entry:   promptAskDependents,
			retry:   func(_ Fields, _ string) string { return retryOptions(dependentsQuestion, dependentsOptions) },
		},
		StageAskProtection: {
			collect: collectOption(protectionOptions, FieldProtection),
			next:    StageAskBudget,
			entry:   promptAskProtection,
			retry:   func(_ Fields, _ string) string { return retryOptions(protectionQuestion, protectionOptions) },
		},
		StageAskBudget: {
			collect: collectOption(budgetOptions, FieldBudget),
			next:    StageAskPhone,
			entry:   promptAskBudget,
			retry:   func(_ Fields, _ string) string { return retryOptions(budgetQuestion, budgetOptions) },
		},
		StageAskPhone: {
			collect: func(_ *Flow, c *Conversation, msg string) error {
				if err := ValidatePhone(msg); err != nil {
					return err
				}
				c.Fields[FieldPhone] = msg
				return nil
			},
			next:  StageAskIncome,
			entry: promptAskPhone,
			retry: func(_ Fields, _ string) string { return retryPhone() },
		},
		StageAskIncome: {
			collect: func(_ *Flow, c *Conversation, msg string) error {
				income, err := ParseIncome(msg)
				if err != nil {
					return err
				}
				age, _ := strconv.Atoi(c.Fields[FieldAge])
				q := ComputeQuote(age, income)
				c.Fields[FieldIncome] = strconv.FormatInt(income, 10)
				c.Fields[FieldYearsCoverage] = strconv.Itoa(q.YearsOfCoverage)
				c.Fields[FieldRecommendedCoverage] = strconv.FormatInt(q.RecommendedCoverage, 10)
				c.Fields[FieldPremiumRate] = strconv.FormatInt(q.PremiumRate, 10)
				c.Fields[FieldAnnualPremium] = q.AnnualPremium.String()
				c.Fields[FieldMonthlyPremium] = q.MonthlyPremium.String()
				return nil
			},
			next:  StageAskEmail,
			entry: promptAskIncome,
			retry: func(_ Fields, _ string) string { return retryIncome() },
		},
		StageAskEmail: {
			collect: func(_ *Flow, c *Conversation, msg string) error {
				if err := ValidateEmail(msg); err != nil {
					return err
				}
				c.Fields[FieldEmail] = msg
				return nil
			},
			next:     StageAskMoreInfo,
			entry:    promptQuote,
			retry:    func(_ Fields, _ string) string { return retryEmail() },
			complete: true,
		},
		StageAskMoreInfo: {
			collect: collectOption(moreInfoOptions, FieldMoreInfo),
			next:    StageDone,
			entry:   promptAskMoreInfo,
			retry:   func(_ Fields, _ string) string { return retryOptions(moreInfoQuestion, moreInfoOptions) },
		},
		StageDone: {
			// Reached only as a transition target; idle turns at done are
			// answered before the table is consulted.
			collect: func(_ *Flow, _ *Conversation, _ string) error { return nil },
			next:    StageDone,
			entry:   func(Fields) string { return promptFarewell() },
			retry:   func(_ Fields, _ string) string { return promptFarewell() },
		},
	}
}

func collectOption(options map[string]string, field string) func(*Flow, *Conversation, string) error {
	return func(_ *Flow, c *Conversation, msg string) error {
		label, err := pickOption(options, msg)
		if err != nil {
			return err
		}
		c.Fields[field] = label
		return nil
	}
}
