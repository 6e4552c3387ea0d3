package conversation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed option menus for the multiple-choice stages. Keys are the literal
// answers accepted by the menu validator.
var (
	lifeStageOptions = map[string]string{
		"1": "Just married",
		"2": "I have a young child / Children",
		"3": "Nearing Retirement",
		"4": "Single and independent",
	}
	dependentsOptions = map[string]string{
		"1": "1 only",
		"2": "1-2 person",
		"3": "3-4 person",
		"4": "More than 4 person",
	}
	protectionOptions = map[string]string{
		"1": "No coverage at all",
		"2": "Basic employee coverage",
		"3": "Some personal coverage",
		"4": "Comprehensive coverage",
	}
	budgetOptions = map[string]string{
		"1": "Less than RM200",
		"2": "RM201 - RM500",
		"3": "RM501 - RM1000",
		"4": "More than RM1000",
	}
	moreInfoOptions = map[string]string{
		"1": "Yes",
		"2": "No",
	}
)

const (
	lifeStageQuestion  = "What is your current life stage?"
	dependentsQuestion = "How many dependents do you have?"
	protectionQuestion = "What is your current level of protection?"
	budgetQuestion     = "May I know your budget for monthly premium?"
	moreInfoQuestion   = "Would you like to find out more on how you can be best protected?"
)

// FormatRM renders a decimal as Malaysian ringgit with thousands separators
// and two decimal places, e.g. "RM 60,000.00".
func FormatRM(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	whole := parts[0]

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("RM %s%s.%s", sign, grouped.String(), parts[1])
}

func renderOptions(options map[string]string) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(options))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s. %s", k, options[k]))
	}
	return strings.Join(lines, "\n")
}

func retryOptions(question string, options map[string]string) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var valid string
	if len(keys) == 2 {
		valid = keys[0] + " or " + keys[1]
	} else {
		valid = strings.Join(keys[:len(keys)-1], ", ") + ", or " + keys[len(keys)-1]
	}
	return fmt.Sprintf("Please choose a valid option: %s.\n%s\n%s", valid, question, renderOptions(options))
}

func promptResetAck() string {
	return "Returning to main menu. Please choose an option."
}

func promptGreeting() string {
	return "Hello! I'm Erica, your super agent that will guide you today 😊\nMay I know your name?"
}

func promptAskDateOfBirth(fields Fields) string {
	return fmt.Sprintf(
		"Hello, %s! Nice to meet you! Let's get to know you better. 😊\nMay I know your Date of Birth?\n(Format: DD / MM / YYYY )",
		fields[FieldName],
	)
}

func retryDateOfBirth(_ Fields, msg string) string {
	if msg == "" {
		return "You did not enter anything.\nPlease enter your Date of Birth (DD/MM/YYYY)."
	}
	return "Invalid date format, please try again ❌\nPlease enter your Date of Birth as DD/MM/YYYY\nExample: 25/12/1990"
}

func promptAskLifeStage(fields Fields) string {
	return fmt.Sprintf(
		"Great! You are %s years old.\nIt is the perfect age to start building a strong foundation for your future savings.\n%s\n%s",
		fields[FieldAge], lifeStageQuestion, renderOptions(lifeStageOptions),
	)
}

func promptAskDependents(fields Fields) string {
	return fmt.Sprintf(
		"Thank you! Your life stage is: %s\n%s\n%s",
		fields[FieldLifeStage], dependentsQuestion, renderOptions(dependentsOptions),
	)
}

func promptAskProtection(fields Fields) string {
	return fmt.Sprintf(
		"Thank you! You have %s dependents.\n%s\n%s",
		fields[FieldDependents], protectionQuestion, renderOptions(protectionOptions),
	)
}

func promptAskBudget(fields Fields) string {
	return fmt.Sprintf(
		"Thank you! Your protection level is: %s\n%s\n%s",
		fields[FieldProtection], budgetQuestion, renderOptions(budgetOptions),
	)
}

func promptAskPhone(fields Fields) string {
	return fmt.Sprintf(
		"Thank you! Your monthly budget is: %s\nPlease enter your phone number so we can provide you with updates from time to time on suitable offers and packages.",
		fields[FieldBudget],
	)
}

func retryPhone() string {
	return "Please enter a valid Malaysian phone number.\nExamples: 0123456789 or 60123456789"
}

func promptAskIncome(fields Fields) string {
	return fmt.Sprintf(
		"Thank you! Your phone number is: %s\nMay I know your annual income?\n(Example: RM 30,000)",
		fields[FieldPhone],
	)
}

func retryIncome() string {
	return "Please enter a valid income amount.\nExample: RM 30000 or 30,000"
}

// promptQuote is the entry prompt of the email stage: it echoes the quote
// computed at the income step and asks for an email address.
func promptQuote(fields Fields) string {
	coverage, _ := decimal.NewFromString(fields[FieldRecommendedCoverage])
	annual, _ := decimal.NewFromString(fields[FieldAnnualPremium])
	monthly, _ := decimal.NewFromString(fields[FieldMonthlyPremium])

	rule := strings.Repeat("-", 38)
	return fmt.Sprintf(
		"Thank you, %s! 😊 We really appreciate you taking the time to share a bit about yourself.\n"+
			"Based on what you've told us, here's a personalised quote created just for you.\n\n"+
			"📝 *Your Personalised Income Protection Plan* 📝\n"+
			"%s\n"+
			"%-25s %s years\n"+
			"%-25s %s\n"+
			"%-25s RM %s per RM1,000\n"+
			"%-25s %s\n"+
			"%-25s %s\n"+
			"%s\n\n"+
			"Please type your email address, we will send you an email summary of our conversation for your reference",
		fields[FieldName],
		rule,
		"Years of Coverage:", fields[FieldYearsCoverage],
		"Recommended Coverage:", FormatRM(coverage),
		"Premium Rate:", fields[FieldPremiumRate],
		"Annual Premium:", FormatRM(annual),
		"Monthly Premium:", FormatRM(monthly),
		rule,
	)
}

func retryEmail() string {
	return "Please enter a valid email address.\nExample: example@email.com"
}

func promptAskMoreInfo(Fields) string {
	return fmt.Sprintf(
		"Thank you! Your email is saved and we will send you a summary via email shortly.\n%s\n%s",
		moreInfoQuestion, renderOptions(moreInfoOptions),
	)
}

func promptFarewell() string {
	return "Great! Thank you for signing up. We will contact you soon 😊\n" +
		"Subject to terms and conditions of approved policy after recommendation by authorised representatives.\n\n" +
		"Thank you for contacting us. Feel free to reach out to us if you would like more information at https://wa.me/60168357258"
}

func promptDoneIdle(resetKeyword string) string {
	return fmt.Sprintf("If you want to calculate again, type *%s*.", strings.ToLower(resetKeyword))
}
