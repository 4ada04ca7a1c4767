package commands

import (
	"context"
	"fmt"

	"kisansaarthi/models"
	"kisansaarthi/services/otp"
	"kisansaarthi/services/validator"
	"kisansaarthi/services/wizard"

	"github.com/spf13/cobra"
)

var signupTitles = map[wizard.SignupStep]string{
	wizard.BasicInfo:          "Basic information",
	wizard.Location:           "Location",
	wizard.SecurityAndContact: "Security and contact",
	wizard.OtpVerify:          "Verify your mobile number",
}

func signupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create a farmer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSignup(contextOf(cmd))
		},
	}
}

func (a *app) runSignup(ctx context.Context) error {
	client, err := a.apiClient()
	if err != nil {
		return err
	}
	sessions, release, err := a.materializer()
	if err != nil {
		return err
	}
	defer release()

	w := wizard.NewSignupWizard(a.otpClient(otp.NewSignupChannel(client)), sessions, a.logger)
	defer w.Close()
	p := a.prompter()

	fmt.Fprintln(a.out, "Create your KisanSaarthi account")
	for {
		step := w.Step()
		if step == wizard.SignupComplete {
			break
		}
		fmt.Fprintf(a.out, "\n[%d/4] %s\n", int(step)+1, signupTitles[step])

		if step == wizard.OtpVerify {
			fmt.Fprintf(a.out, "An OTP was sent to %s.\n", w.Draft().Phone)
			if err := enterCode(ctx, p, w); err != nil {
				return err
			}
			continue
		}

		if err := a.signupFields(p, w, step); err != nil {
			return err
		}
		if step != wizard.BasicInfo {
			back, err := continueOrBack(p)
			if err != nil {
				return err
			}
			if back {
				if err := report(a.out, w.Back()); err != nil {
					return err
				}
				continue
			}
		}
		if err := report(a.out, w.Next(ctx)); err != nil {
			return err
		}
	}

	name := "farmer"
	if sess := w.Session(); sess != nil && sess.DisplayName != "" {
		name = sess.DisplayName
	}
	fmt.Fprintf(a.out, "\nWelcome, %s! Your account is ready.\n", name)
	return nil
}

func (a *app) signupFields(p *prompter, w *wizard.SignupWizard, step wizard.SignupStep) error {
	errs := w.Errors()
	get := func(field string) (string, bool) { return w.Draft().Get(field) }

	switch step {
	case wizard.BasicInfo:
		return fill(p, []input{
			{field: models.FieldFirstName},
			{field: models.FieldLastName},
			{field: models.FieldEmail},
		}, errs, get, w.SetField)

	case wizard.Location:
		fieldError(a.out, errs, models.FieldState)
		state, err := p.choose(fieldLabel(models.FieldState), validator.States(), w.Draft().State)
		if err != nil {
			return err
		}
		if err := w.SetField(models.FieldState, state); err != nil {
			return err
		}
		fieldError(a.out, errs, models.FieldDistrict)
		district, err := p.choose(fieldLabel(models.FieldDistrict), validator.Districts(state), w.Draft().District)
		if err != nil {
			return err
		}
		if err := w.SetField(models.FieldDistrict, district); err != nil {
			return err
		}
		fieldError(a.out, errs, models.FieldVillage)
		village, err := p.choose(fieldLabel(models.FieldVillage), validator.Villages(district), w.Draft().Village)
		if err != nil {
			return err
		}
		return w.SetField(models.FieldVillage, village)

	case wizard.SecurityAndContact:
		if err := fill(p, []input{{field: models.FieldPassword, secret: true}}, errs, get, w.SetField); err != nil {
			return err
		}
		fmt.Fprintln(a.out, strengthLine(validator.PasswordStrength(w.Draft().Password)))
		return fill(p, []input{
			{field: models.FieldConfirmPassword, secret: true},
			{field: models.FieldPhone},
		}, errs, get, w.SetField)
	}
	return nil
}
