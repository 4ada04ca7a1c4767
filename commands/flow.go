package commands

import (
	"context"
	"fmt"
	"strings"

	"kisansaarthi/models"
	"kisansaarthi/services/validator"
	"kisansaarthi/services/wizard"
)

// input is one prompted form field.
type input struct {
	field  string
	secret bool
}

// fill prompts for each field, showing its current error first, and stores
// the answers through set. Plain fields keep their value on an empty answer.
func fill(p *prompter, inputs []input, errs validator.FieldErrors, get func(string) (string, bool), set func(string, string) error) error {
	for _, in := range inputs {
		fieldError(p.out, errs, in.field)
		var (
			value string
			err   error
		)
		if in.secret {
			value, err = p.secret(fieldLabel(in.field))
		} else {
			current, _ := get(in.field)
			value, err = p.ask(fieldLabel(in.field), current)
		}
		if err != nil {
			return err
		}
		if err := set(in.field, value); err != nil {
			return err
		}
	}
	return nil
}

// codeWizard is the part of a wizard the code entry step needs.
type codeWizard interface {
	SetOTP(code string) bool
	Next(ctx context.Context) error
	Back() error
	Resend(ctx context.Context) error
	Errors() validator.FieldErrors
	Cooldown() int
}

// enterCode handles one answer at the code prompt: a code, "r" to resend or
// "b" to go back.
func enterCode(ctx context.Context, p *prompter, w codeWizard) error {
	fieldError(p.out, w.Errors(), models.FieldOTP)
	hint := `"r" to resend`
	if left := w.Cooldown(); left > 0 {
		hint = fmt.Sprintf("resend in %ds", left)
	}
	answer, err := p.ask(fmt.Sprintf(`Enter the 6-digit OTP (%s, "b" to go back)`, hint), "")
	if err != nil {
		return err
	}

	switch strings.ToLower(answer) {
	case "r":
		err := w.Resend(ctx)
		switch wizard.KindOf(err) {
		case wizard.KindNone:
			fmt.Fprintln(p.out, "A new OTP has been sent.")
			return nil
		case wizard.KindCooldown:
			fmt.Fprintf(p.out, "! You can request a new OTP in %d seconds.\n", w.Cooldown())
			return nil
		}
		return report(p.out, err)
	case "b":
		return report(p.out, w.Back())
	}

	if !w.SetOTP(answer) {
		fmt.Fprintln(p.out, "  x Please enter complete 6-digit OTP")
		return nil
	}
	return report(p.out, w.Next(ctx))
}

// continueOrBack asks whether to submit the step. It reports true for back.
func continueOrBack(p *prompter) (bool, error) {
	answer, err := p.ask(`Press Enter to continue or type "b" to go back`, "")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "b"), nil
}
