package commands

import (
	"context"
	"fmt"

	"kisansaarthi/models"
	"kisansaarthi/services/otp"
	"kisansaarthi/services/wizard"

	"github.com/spf13/cobra"
)

func forgotPasswordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password",
		Short: "Reset a forgotten password with a code sent to your phone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runForgotPassword(contextOf(cmd))
		},
	}
}

func (a *app) runForgotPassword(ctx context.Context) error {
	client, err := a.apiClient()
	if err != nil {
		return err
	}
	sessions, release, err := a.materializer()
	if err != nil {
		return err
	}
	defer release()

	w := wizard.NewRecoveryWizard(a.otpClient(otp.NewRecoveryChannel(client)), client, sessions, a.logger)
	defer w.Close()
	p := a.prompter()
	get := func(field string) (string, bool) {
		if field == models.FieldPhone {
			return w.Draft().Phone, true
		}
		return "", false
	}

	fmt.Fprintln(a.out, "Reset your password")
	for {
		switch w.Step() {
		case wizard.EnterPhone:
			if err := fill(p, []input{{field: models.FieldPhone}}, w.Errors(), get, w.SetField); err != nil {
				return err
			}
			if err := report(a.out, w.Next(ctx)); err != nil {
				return err
			}

		case wizard.VerifyOtp:
			fmt.Fprintf(a.out, "An OTP was sent to %s.\n", w.Draft().Phone)
			if err := enterCode(ctx, p, w); err != nil {
				return err
			}

		case wizard.SetNewPassword:
			err := fill(p, []input{
				{field: models.FieldNewPassword, secret: true},
				{field: models.FieldConfirmPassword, secret: true},
			}, w.Errors(), get, w.SetField)
			if err != nil {
				return err
			}
			if err := report(a.out, w.Next(ctx)); err != nil {
				return err
			}

		case wizard.RecoveryComplete:
			if sess := w.Session(); sess != nil && sess.Token != "" {
				fmt.Fprintln(a.out, "Password reset successful. You are now logged in.")
			} else {
				fmt.Fprintln(a.out, "Password reset successful. Please log in with your new password.")
			}
			return nil
		}
	}
}
