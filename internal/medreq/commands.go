package medreq

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kart-io/medreq/internal/medreq/form"
	"github.com/kart-io/medreq/internal/medreq/view"
	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/guard"
)

func (c *cli) commands() []*cobra.Command {
	return []*cobra.Command{
		c.loginCommand(),
		c.logoutCommand(),
		c.registerCommand(),
		c.whoamiCommand(),
		c.userCommand(),
		c.medicinesCommand(),
		c.requestsCommand(),
	}
}

// prompt reads one line from in. End of input yields "".
func prompt(in *bufio.Reader, w io.Writer, label string) (string, error) {
	_, _ = fmt.Fprintf(w, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword reads a secret without echo when src is a terminal, otherwise
// it falls back to prompt.
func readPassword(src io.Reader, in *bufio.Reader, w io.Writer, label string) (string, error) {
	f, ok := src.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return prompt(in, w, label)
	}
	_, _ = fmt.Fprintf(w, "%s: ", label)
	secret, err := term.ReadPassword(int(f.Fd()))
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, errno.ErrBadRequest.WithMessagef("invalid id %q", s)
	}
	return id, nil
}

func (c *cli) loginCommand() *cobra.Command {
	var (
		email, password string
		list            bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, env *Env) error {
				var promptErr error
				lv := view.NewLoginView(env.API, env.Store, env.Notify)
				route, err := lv.SubmitWith(ctx, func() (string, string, error) {
					in := bufio.NewReader(env.In)
					if email == "" {
						if email, promptErr = prompt(in, env.Notify.Writer(), "Email"); promptErr != nil {
							return "", "", promptErr
						}
					}
					if password == "" {
						if password, promptErr = readPassword(env.In, in, env.Notify.Writer(), "Password"); promptErr != nil {
							return "", "", promptErr
						}
					}
					return email, password, nil
				})
				if promptErr != nil {
					return promptErr
				}
				if err != nil {
					return reported(err)
				}
				// 已登录时守卫直接跳到请求列表，不再询问凭据
				if user, ok := lv.SignedInAs(); ok && route == guard.RouteRequests {
					_, _ = fmt.Fprintf(env.Out, "already signed in as %s <%s>\n", user.Name, user.Email)
					return nil
				}
				if !list {
					return nil
				}

				rv := view.NewRequestsView(env.API, env.Store, env.Notify, env.Out)
				if err := rv.Mount(ctx); err != nil {
					return reported(err)
				}
				rv.Render()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when empty)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (read from stdin when empty)")
	cmd.Flags().BoolVar(&list, "list", true, "Show the first page of requests after signing in")
	return cmd
}

func (c *cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token and user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, env *Env) error {
				lv := view.NewLoginView(env.API, env.Store, env.Notify)
				_, err := lv.Logout(ctx)
				return reported(err)
			})
		},
	}
}

func (c *cli) registerCommand() *cobra.Command {
	var name, email, password, confirmation string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, env *Env) error {
				in := bufio.NewReader(env.In)
				var err error
				if password == "" {
					if password, err = readPassword(env.In, in, env.Notify.Writer(), "Password"); err != nil {
						return err
					}
				}
				if confirmation == "" {
					if confirmation, err = readPassword(env.In, in, env.Notify.Writer(), "Confirm password"); err != nil {
						return err
					}
				}

				f := form.NewUserForm(env.API, 0, env.Lang(), nil)
				f.Name, f.Email = name, email
				f.Password, f.PasswordConfirmation = password, confirmation

				lv := view.NewLoginView(env.API, env.Store, env.Notify)
				signedIn, err := lv.Register(ctx, f)
				if err != nil {
					return reported(err)
				}
				if signedIn {
					_, _ = fmt.Fprintf(env.Out, "signed in as %s\n", f.Email)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email")
	cmd.Flags().StringVar(&password, "password", "", "Password (read from stdin when empty)")
	cmd.Flags().StringVar(&confirmation, "password-confirmation", "", "Password again (read from stdin when empty)")
	return cmd
}

func (c *cli) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, env *Env) error {
				return env.Protect(ctx, func(ctx context.Context) error {
					sess, _, err := env.Store.Get(ctx)
					if err != nil {
						return err
					}
					view.RenderUser(env.Out, sess.User)
					return nil
				})
			})
		},
	}
}

// userID picks the id from args or falls back to the signed-in user.
func userID(ctx context.Context, env *Env, args []string) (uint64, error) {
	if len(args) > 0 {
		return parseID(args[0])
	}
	sess, _, err := env.Store.Get(ctx)
	if err != nil {
		return 0, err
	}
	if sess.User.ID == 0 {
		return 0, errno.ErrBadRequest.WithMessage("no user id stored, pass one explicitly")
	}
	return sess.User.ID, nil
}

func (c *cli) userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show or edit a user",
	}

	get := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a user (default: the signed-in user)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, env *Env) error {
				return env.Protect(ctx, func(ctx context.Context) error {
					id, err := userID(ctx, env, args)
					if err != nil {
						return err
					}
					_, err = view.NewUserView(env.API, env.Notify, env.Out).Show(ctx, id)
					return reported(err)
				})
			})
		},
	}

	var name, email string
	update := &cobra.Command{
		Use:   "update [id]",
		Short: "Change name and email of a user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, env *Env) error {
				return env.Protect(ctx, func(ctx context.Context) error {
					id, err := userID(ctx, env, args)
					if err != nil {
						return err
					}
					err = view.NewUserView(env.API, env.Notify, env.Out).Update(ctx, id, name, email)
					return reported(err)
				})
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "New name")
	update.Flags().StringVar(&email, "email", "", "New email")

	cmd.AddCommand(get, update)
	return cmd
}

func (c *cli) medicinesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "medicines",
		Short: "List the medicine catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, env *Env) error {
				return env.Protect(ctx, func(ctx context.Context) error {
					list, err := env.API.ListMedicines(ctx)
					if err != nil {
						return reported(env.Notify.Fail(err, form.MsgMedicinesFailed))
					}
					view.RenderMedicines(env.Out, list, env.Lang())
					return nil
				})
			})
		},
	}
}

func (c *cli) requestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"req"},
		Short:   "List, show and create medical-supply requests",
	}

	// mounted opens the requests view on page for a protected command.
	mounted := func(cmd *cobra.Command, page int, fn func(ctx context.Context, env *Env, rv *view.RequestsView) error) error {
		return c.run(cmd, func(ctx context.Context, env *Env) error {
			return env.Protect(ctx, func(ctx context.Context) error {
				rv := view.NewRequestsView(env.API, env.Store, env.Notify, env.Out)
				if err := rv.MountAt(ctx, page); err != nil {
					return reported(err)
				}
				return fn(ctx, env, rv)
			})
		})
	}

	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show one page of your requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mounted(cmd, page, func(_ context.Context, _ *Env, rv *view.RequestsView) error {
				rv.Render()
				return nil
			})
		},
	}
	list.Flags().IntVar(&page, "page", 1, "Page number")

	var showPage int
	show := &cobra.Command{
		Use:   "show <row>",
		Short: "Show a request by its row number on the page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return errno.ErrBadRequest.WithMessagef("invalid row %q", args[0])
			}
			return mounted(cmd, showPage, func(_ context.Context, _ *Env, rv *view.RequestsView) error {
				_, err := rv.Show(row)
				return reported(err)
			})
		},
	}
	show.Flags().IntVar(&showPage, "page", 1, "Page the row is on")

	var (
		medicineID uint64
		fields     form.RequestFields
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a new request",
		Long: `Register a new request for a medicine.

NO POS medicines also need --order-number, --address, --phone and --email.
For other medicines those values are ignored and sent as null.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mounted(cmd, 1, func(ctx context.Context, env *Env, rv *view.RequestsView) error {
				if _, err := rv.Create(ctx, medicineID, fields); err != nil {
					return reported(err)
				}
				rv.Render()
				return nil
			})
		},
	}
	create.Flags().Uint64Var(&medicineID, "medicine", 0, "Medicine id (see `medreq medicines`)")
	create.Flags().StringVar(&fields.OrderNumber, "order-number", "", "Order number (NO POS only)")
	create.Flags().StringVar(&fields.Address, "address", "", "Delivery address (NO POS only)")
	create.Flags().StringVar(&fields.Phone, "phone", "", "Contact phone (NO POS only)")
	create.Flags().StringVar(&fields.Email, "email", "", "Contact email (NO POS only)")

	browse := &cobra.Command{
		Use:   "browse",
		Short: "Page through your requests interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mounted(cmd, 1, func(ctx context.Context, env *Env, rv *view.RequestsView) error {
				return rv.Browse(ctx, env.In)
			})
		},
	}

	cmd.AddCommand(list, show, create, browse)
	return cmd
}
