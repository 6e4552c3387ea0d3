package conversation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fixedNow pins the clock so age computation is stable: 15 January 2025.
var fixedNow = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

func testFlow(t *testing.T, hook CompletionFunc) *Flow {
	t.Helper()
	opts := []Option{WithClock(func() time.Time { return fixedNow })}
	if hook != nil {
		opts = append(opts, WithCompletionHook(hook))
	}
	return NewFlow("restart", zerolog.Nop(), opts...)
}

// happyPath drives a conversation through every stage to done.
var happyPath = []string{
	"Anything",          // start -> ask_name
	"Alice",             // name
	"15/06/1990",        // dob (age 34 on 15/01/2025)
	"1",                 // life stage
	"2",                 // dependents
	"3",                 // protection level
	"2",                 // budget
	"0123456789",        // phone
	"RM 60,000",         // income
	"alice@example.com", // email -> persistence fires here
	"1",                 // more info -> done
}

func TestAdvanceHappyPath(t *testing.T) {
	var saved []Fields
	flow := testFlow(t, func(_ context.Context, fields Fields) error {
		saved = append(saved, fields)
		return nil
	})

	conv := New()
	var replies []string
	for _, msg := range happyPath {
		replies = append(replies, flow.Advance(context.Background(), conv, msg))
	}

	if conv.Stage != StageDone {
		t.Fatalf("final stage = %s, want %s", conv.Stage, StageDone)
	}
	if len(saved) != 1 {
		t.Fatalf("persistence hook called %d times, want exactly 1", len(saved))
	}

	// Age 34 and RM 60,000 annual income: coverage 600,000 at rate 8 gives
	// an annual premium of RM 4,800.00.
	quoteReply := replies[8]
	for _, want := range []string{"RM 600,000.00", "RM 4,800.00", "RM 400.00", "26 years"} {
		if !strings.Contains(quoteReply, want) {
			t.Errorf("income reply missing %q:\n%s", want, quoteReply)
		}
	}

	fields := saved[0]
	expect := map[string]string{
		FieldName:        "Alice",
		FieldDateOfBirth: "15/06/1990",
		FieldAge:         "34",
		FieldLifeStage:   "Just married",
		FieldDependents:  "1-2 person",
		FieldProtection:  "Some personal coverage",
		FieldBudget:      "RM201 - RM500",
		FieldPhone:       "0123456789",
		FieldIncome:      "60000",
		FieldEmail:       "alice@example.com",
	}
	for k, want := range expect {
		if fields[k] != want {
			t.Errorf("persisted fields[%s] = %q, want %q", k, fields[k], want)
		}
	}
	if _, ok := fields[FieldMoreInfo]; ok {
		t.Error("more_info collected before persistence, want it only after the email step")
	}

	// Greeting interpolates the name.
	if !strings.Contains(replies[1], "Alice") {
		t.Errorf("name reply does not greet by name: %s", replies[1])
	}
}

func TestAdvanceInvalidInputIsIdempotent(t *testing.T) {
	flow := testFlow(t, nil)
	conv := New()

	// Drive to ask_phone.
	for _, msg := range happyPath[:7] {
		flow.Advance(context.Background(), conv, msg)
	}
	if conv.Stage != StageAskPhone {
		t.Fatalf("stage = %s, want %s", conv.Stage, StageAskPhone)
	}

	snapshot := conv.Clone()
	var first string
	for i := 0; i < 3; i++ {
		reply := flow.Advance(context.Background(), conv, "123")
		if i == 0 {
			first = reply
			if !strings.Contains(reply, "valid Malaysian phone number") {
				t.Errorf("phone rejection prompt = %q", reply)
			}
		} else if reply != first {
			t.Errorf("repeated invalid input changed the reply: %q vs %q", reply, first)
		}
	}

	if conv.Stage != snapshot.Stage {
		t.Errorf("stage mutated by invalid input: %s", conv.Stage)
	}
	if len(conv.Fields) != len(snapshot.Fields) {
		t.Errorf("fields mutated by invalid input: %v", conv.Fields)
	}
}

func TestAdvanceIncomeRejection(t *testing.T) {
	flow := testFlow(t, nil)
	conv := New()
	for _, msg := range happyPath[:8] {
		flow.Advance(context.Background(), conv, msg)
	}
	if conv.Stage != StageAskIncome {
		t.Fatalf("stage = %s, want %s", conv.Stage, StageAskIncome)
	}

	reply := flow.Advance(context.Background(), conv, "not a number")
	if conv.Stage != StageAskIncome {
		t.Errorf("stage advanced on invalid income: %s", conv.Stage)
	}
	if !strings.Contains(reply, "valid income amount") {
		t.Errorf("income rejection prompt = %q", reply)
	}
}

func TestResetKeywordFromEveryStage(t *testing.T) {
	for cut := 0; cut <= len(happyPath); cut++ {
		flow := testFlow(t, nil)
		conv := New()
		for _, msg := range happyPath[:cut] {
			flow.Advance(context.Background(), conv, msg)
		}

		// Mixed case and surrounding whitespace still reset.
		reply := flow.Advance(context.Background(), conv, "  ReStArT ")
		if conv.Stage != StageStart {
			t.Errorf("after %d turns: reset left stage %s", cut, conv.Stage)
		}
		if len(conv.Fields) != 0 {
			t.Errorf("after %d turns: reset left fields %v", cut, conv.Fields)
		}
		if reply != promptResetAck() {
			t.Errorf("reset reply = %q", reply)
		}
	}
}

func TestDoneIgnoresNonResetInput(t *testing.T) {
	var calls int
	flow := testFlow(t, func(context.Context, Fields) error {
		calls++
		return nil
	})
	conv := New()
	for _, msg := range happyPath {
		flow.Advance(context.Background(), conv, msg)
	}

	before := conv.Clone()
	reply := flow.Advance(context.Background(), conv, "hello again")
	if conv.Stage != StageDone {
		t.Errorf("stage = %s, want %s", conv.Stage, StageDone)
	}
	if len(conv.Fields) != len(before.Fields) {
		t.Errorf("done turn mutated fields")
	}
	if !strings.Contains(reply, "restart") {
		t.Errorf("done reply does not mention the reset keyword: %q", reply)
	}
	if calls != 1 {
		t.Errorf("persistence hook called %d times, want 1", calls)
	}
}

func TestCompletionHookFailureDoesNotChangeReply(t *testing.T) {
	failing := func(context.Context, Fields) error {
		return context.DeadlineExceeded
	}
	okFlow := testFlow(t, func(context.Context, Fields) error { return nil })
	badFlow := testFlow(t, failing)

	run := func(flow *Flow) (string, Stage) {
		conv := New()
		var reply string
		for _, msg := range happyPath[:10] {
			reply = flow.Advance(context.Background(), conv, msg)
		}
		return reply, conv.Stage
	}

	okReply, okStage := run(okFlow)
	badReply, badStage := run(badFlow)

	if okReply != badReply {
		t.Errorf("hook failure altered the reply:\nok:  %q\nbad: %q", okReply, badReply)
	}
	if okStage != badStage || badStage != StageAskMoreInfo {
		t.Errorf("hook failure altered the transition: %s vs %s", okStage, badStage)
	}
}

func TestMenuRejectionRestatesOptions(t *testing.T) {
	flow := testFlow(t, nil)
	conv := New()
	for _, msg := range happyPath[:3] {
		flow.Advance(context.Background(), conv, msg)
	}
	if conv.Stage != StageAskLifeStage {
		t.Fatalf("stage = %s, want %s", conv.Stage, StageAskLifeStage)
	}

	reply := flow.Advance(context.Background(), conv, "5")
	if conv.Stage != StageAskLifeStage {
		t.Errorf("invalid menu choice advanced the stage: %s", conv.Stage)
	}
	for _, want := range []string{"1, 2, 3, or 4", "Just married", "Single and independent"} {
		if !strings.Contains(reply, want) {
			t.Errorf("menu rejection prompt missing %q:\n%s", want, reply)
		}
	}
}

func TestEmptyNameReprompts(t *testing.T) {
	flow := testFlow(t, nil)
	conv := New()
	flow.Advance(context.Background(), conv, "hi") // start -> ask_name

	reply := flow.Advance(context.Background(), conv, "   ")
	if conv.Stage != StageAskName {
		t.Errorf("blank name advanced the stage: %s", conv.Stage)
	}
	if !strings.Contains(reply, "enter your name") {
		t.Errorf("blank name prompt = %q", reply)
	}
}

func TestStageValid(t *testing.T) {
	for _, s := range stageOrder {
		if !s.Valid() {
			t.Errorf("stage %s not valid", s)
		}
	}
	if Stage("bogus").Valid() {
		t.Error("bogus stage reported valid")
	}
	if !StageDone.IsTerminal() || StageStart.IsTerminal() {
		t.Error("IsTerminal misclassifies stages")
	}
}
