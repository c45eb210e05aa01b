package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decisionmotor/maturity/internal/config"
	"github.com/decisionmotor/maturity/internal/gate"
)

var passwordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash to use as " + config.EnvPassword,
	Long: `Prints a bcrypt hash of the given password. When no argument is given
the password is read from the first line of stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pw string
		if len(args) == 1 {
			pw = args[0]
		} else {
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password: %w", err)
			}
			pw = strings.TrimRight(line, "\r\n")
		}
		if pw == "" {
			return errors.New("password must not be empty")
		}
		h, err := gate.Hash(pw)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		fmt.Println(h)
		return nil
	},
}
