package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gpucatalog/gpucatalog/internal/admin"
	"github.com/gpucatalog/gpucatalog/pkg/types"
)

const shellHelp = `Commands:
  list                          show the current view
  search <term>                 search device and manufacturer names
  reset-search                  clear the search term
  manufacturer <id|name|all>    filter by manufacturer
  memory <type|all>             filter by memory type
  sort <field>_<asc|desc>       sort the view, "sort none" to stop sorting
  reset                         clear search, filters and sort
  add                           add a device
  edit <id>                     edit a device
  delete <id>                   delete a device
  reload                        reload manufacturers and devices
  manufacturers                 list manufacturers
  help                          show this help
  exit                          leave the shell
`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session",
	Long: `Start an interactive session over one loaded catalog. The view is redrawn after every
change of search, filter or sort, and after every add, edit or delete.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sh := newShell(cmd)
		return sh.run(cmd.Context())
	},
}

// shell is an interactive loop over a single App. Commands are handled one
// at a time.
type shell struct {
	app       *admin.App
	presenter *tablePresenter
	in        *lineReader
	out       io.Writer
}

func newShell(cmd *cobra.Command) *shell {
	in := newLineReader(cmd)
	p := &tablePresenter{out: cmd.OutOrStdout()}
	sh := &shell{
		presenter: p,
		in:        in,
		out:       cmd.OutOrStdout(),
	}
	sh.app = newApp(cmd, p, &promptConfirmer{in: in})
	return sh
}

func (s *shell) run(ctx context.Context) error {
	// load failures have been shown by the notifier; the shell keeps going
	// so the user can retry with reload
	if err := s.app.Start(ctx); err != nil {
		log.Debug().Err(err).Msg("initial load failed")
	}
	fmt.Fprintln(s.out, `Type "help" for commands.`)
	for {
		line, err := s.in.read("gpucatalog> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		quit, err := s.exec(ctx, line)
		if err != nil {
			fmt.Fprintln(s.out, errorStyle.Render("Error: "+err.Error()))
		}
		if quit {
			return nil
		}
	}
}

// exec runs one shell command. It reports whether the shell should exit.
func (s *shell) exec(ctx context.Context, line string) (bool, error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "":
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprint(s.out, shellHelp)
	case "list":
		s.presenter.RenderDevices(s.app.View())
	case "search":
		s.app.SetSearch(rest)
	case "reset-search":
		s.app.ResetSearch()
	case "manufacturer":
		c := s.app.Criteria()
		c.ManufacturerID = ""
		if rest != "all" && rest != "" {
			id, err := resolveManufacturer(s.app.Manufacturers(), rest)
			if err != nil {
				return false, err
			}
			c.ManufacturerID = strconv.FormatInt(id, 10)
		}
		s.app.SetCriteria(c)
	case "memory":
		c := s.app.Criteria()
		c.MemoryType = ""
		if rest != "all" && rest != "" {
			c.MemoryType = strings.ToUpper(rest)
			if !types.MemoryType(c.MemoryType).IsValid() {
				return false, fmt.Errorf("unknown memory type %q", rest)
			}
		}
		s.app.SetCriteria(c)
	case "sort":
		c := s.app.Criteria()
		c.Sort = ""
		if rest != "none" && rest != "" {
			if err := validateSort(rest); err != nil {
				return false, err
			}
			c.Sort = rest
		}
		s.app.SetCriteria(c)
	case "reset":
		s.app.ResetCriteria()
	case "reload":
		errM := s.app.LoadManufacturers(ctx)
		errG := s.app.LoadGPUs(ctx)
		logIfFailed(errors.Join(errM, errG))
	case "manufacturers":
		fmt.Fprintln(s.out, renderManufacturers(s.app.Manufacturers()))
	case "add":
		s.app.OpenAdd()
		return false, s.submitForm(ctx, admin.FormInput{})
	case "edit":
		id, err := parseID(rest)
		if err != nil {
			return false, err
		}
		input, err := s.app.RequestEdit(ctx, id)
		if err != nil {
			// already notified
			return false, nil
		}
		return false, s.submitForm(ctx, input)
	case "delete":
		id, err := parseID(rest)
		if err != nil {
			return false, err
		}
		err = s.app.RequestDelete(ctx, id)
		if errors.Is(err, admin.ErrDeleteCancelled) {
			fmt.Fprintln(s.out, "Delete cancelled")
			return false, nil
		}
		logIfFailed(err)
	default:
		return false, fmt.Errorf("unknown command %q, type \"help\"", verb)
	}
	return false, nil
}

// submitForm prompts for the fields and submits. A failed submission keeps
// the form open so the user may try again; an aborted prompt closes it.
func (s *shell) submitForm(ctx context.Context, input admin.FormInput) error {
	for {
		var err error
		input, err = promptForm(s.in, input, s.app.Manufacturers())
		if err != nil {
			s.app.CloseForm()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		err = s.app.Submit(ctx, input)
		if err == nil {
			return nil
		}
		logIfFailed(err)
		if !s.app.Form().Open || !(&promptConfirmer{in: s.in}).Confirm("Try again?") {
			s.app.CloseForm()
			return nil
		}
	}
}

// logIfFailed records the detail of a failure the notifier has already
// summarised for the user.
func logIfFailed(err error) {
	if err != nil {
		log.Debug().Err(err).Msg("command failed")
	}
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
