package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
	"github.com/heartmarshall/pollution-reporter/internal/service/account"
)

// PasswordEnv supplies the password for account create when --password
// is not given.
const PasswordEnv = "POLLUTIONCTL_PASSWORD"

var (
	accountEmail    string
	accountName     string
	accountPassword string
	accountRole     string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage citizen and traffic-authority accounts",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account with the given role",
	Long: `Create an account. Staff accounts cannot self-register, so this is how
traffic-authority officers and admins are provisioned.

The password is read from --password, then from $` + PasswordEnv + `,
then from the first line of stdin.`,
	RunE: runAccountCreate,
}

var accountSetRoleCmd = &cobra.Command{
	Use:   "set-role",
	Short: "Change the role of an existing account",
	RunE:  runAccountSetRole,
}

var accountListStaffCmd = &cobra.Command{
	Use:     "list-staff",
	Aliases: []string{"ls"},
	Short:   "List traffic-authority and admin accounts",
	RunE:    runAccountListStaff,
}

func init() {
	accountCreateCmd.Flags().StringVar(&accountEmail, "email", "", "account email")
	accountCreateCmd.Flags().StringVar(&accountName, "name", "", "display name")
	accountCreateCmd.Flags().StringVar(&accountPassword, "password", "", "account password")
	accountCreateCmd.Flags().StringVar(&accountRole, "role", string(domain.AccountRoleTraffic), "citizen, traffic or admin")
	_ = accountCreateCmd.MarkFlagRequired("email")
	_ = accountCreateCmd.MarkFlagRequired("name")

	accountSetRoleCmd.Flags().StringVar(&accountEmail, "email", "", "account email")
	accountSetRoleCmd.Flags().StringVar(&accountRole, "role", "", "citizen, traffic or admin")
	_ = accountSetRoleCmd.MarkFlagRequired("email")
	_ = accountSetRoleCmd.MarkFlagRequired("role")

	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountSetRoleCmd)
	accountCmd.AddCommand(accountListStaffCmd)
}

func runAccountCreate(cmd *cobra.Command, args []string) error {
	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	st, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	a, err := accountService(st).CreateAccount(ctx, registerInput(password), domain.AccountRole(accountRole))
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s account %s (%s)\n", a.Role, a.Email, a.ID)
	return nil
}

func runAccountSetRole(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	st, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	a, err := accountService(st).SetRole(ctx, accountEmail, domain.AccountRole(accountRole))
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", a.Email, a.Role)
	return nil
}

func runAccountListStaff(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	st, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	staff, err := accountService(st).ListStaff(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tNAME\tROLE\tCREATED")
	for _, a := range staff {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Email, a.Name, a.Role, a.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func resolvePassword(cmd *cobra.Command) (string, error) {
	if accountPassword != "" {
		return accountPassword, nil
	}
	if p := os.Getenv(PasswordEnv); p != "" {
		return p, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return "", errors.New("empty password")
	}
	return line, nil
}

// describe flattens validation errors into a readable message.
func describe(err error) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	parts := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Errorf("invalid input: %s", strings.Join(parts, "; "))
}

func registerInput(password string) account.RegisterInput {
	return account.RegisterInput{Email: accountEmail, Name: accountName, Password: password}
}
