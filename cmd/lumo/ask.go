package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pcsoft.com/lumo/internal/config"
	"pcsoft.com/lumo/internal/core"
	"pcsoft.com/lumo/internal/store"
)

type AskFlags struct {
	Email    string
	Password string
	NewChat  bool
}

func (f *AskFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Email, "email", f.Email, "Sign in with this email before asking")
	fs.StringVar(&f.Password, "password", f.Password, "Password for --email")
	fs.BoolVar(&f.NewChat, "new-chat", f.NewChat, "Ask in a new chat instead of the most recent one")
}

func (f *AskFlags) Validate() error {
	if (f.Email == "") != (f.Password == "") {
		return errors.New("--email and --password must be given together")
	}
	return nil
}

func NewAskCommand(cfg *config.Config) *cobra.Command {
	f := &AskFlags{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question and stream the answer to stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Validate(); err != nil {
				return errors.WithMessage(err, "error validating options")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if f.Email != "" {
				user, err := a.auth.Login(ctx, f.Email, f.Password)
				if err != nil {
					return errors.WithMessage(err, "couldn't sign in")
				}
				a.chat.Load()
				fmt.Fprintf(cmd.ErrOrStderr(), "Signed in as %s\n", user.Name)
			} else if _, err := a.requireUser(); err != nil {
				return err
			}

			if show, remaining := a.auth.Tracker().Notice(); show {
				fmt.Fprintf(cmd.ErrOrStderr(), "Automatic sign-in ends in %s.\n", remaining)
			}

			if f.NewChat {
				if _, err := a.chat.CreateNewChat(); err != nil {
					return err
				}
			}

			question := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			printed := ""
			_, err = a.chat.SendMessage(ctx, question, func(m store.Message) {
				// Apology messages replace the answer, so start a fresh line.
				if !strings.HasPrefix(m.Content, printed) {
					fmt.Fprintln(out)
					printed = ""
				}
				fmt.Fprint(out, m.Content[len(printed):])
				printed = m.Content
			})
			fmt.Fprintln(out)

			if errors.Is(err, core.ErrStreamCanceled) {
				fmt.Fprintln(cmd.ErrOrStderr(), "(stopped)")
				return nil
			}
			if err != nil {
				return err
			}
			printSources(out, question)
			return nil
		},
	}

	f.BindFlags(cmd.Flags())
	return cmd
}

// printSources lists the references of a curated answer, if any.
func printSources(out io.Writer, question string) {
	resp, ok := core.Lookup(question)
	if !ok || len(resp.Sources) == 0 {
		return
	}
	fmt.Fprintln(out, "\nSources:")
	for _, src := range resp.Sources {
		fmt.Fprintf(out, "  - %s <%s>\n", src.Title, src.URL)
	}
}
