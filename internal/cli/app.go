package cli

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gpucatalog/gpucatalog/internal/admin"
	"github.com/gpucatalog/gpucatalog/internal/admin/catalogapi"
	"github.com/gpucatalog/gpucatalog/internal/admin/view"
	"github.com/gpucatalog/gpucatalog/internal/common/httpclient"
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

// newBackend builds the catalog service client from the loaded config.
// Tests replace it.
var newBackend = func() admin.Backend {
	return catalogapi.New(httpclient.NewClient(GetConfig(), nil))
}

// newApp wires an App to the command's streams. A nil presenter renders
// nothing, which suits one-shot commands that print their own output.
func newApp(cmd *cobra.Command, p admin.Presenter, c admin.Confirmer) *admin.App {
	notifier := &consoleNotifier{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
	if jsonOutput {
		// notices would corrupt JSON output; failures surface as the command error
		notifier = &consoleNotifier{out: io.Discard, err: cmd.ErrOrStderr()}
	}
	return admin.New(admin.Options{
		Backend:   newBackend(),
		Notifier:  notifier,
		Presenter: p,
		Confirmer: c,
	})
}

// lineReader reads trimmed lines from the command input.
type lineReader struct {
	r   *bufio.Reader
	out io.Writer
}

func newLineReader(cmd *cobra.Command) *lineReader {
	return &lineReader{r: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

// prompt prints label and returns the reply, or def when the reply is empty.
// io.EOF is returned once input is exhausted.
func (l *lineReader) prompt(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]", label, def)
	}
	line, err := l.read(label + ": ")
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// read prints prefix as is and returns the next trimmed line.
func (l *lineReader) read(prefix string) (string, error) {
	fmt.Fprint(l.out, prefix)
	line, err := l.r.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return line, nil
}

// promptConfirmer asks on the command input. Only "y" or "yes" approves.
type promptConfirmer struct {
	in        *lineReader
	assumeYes bool
}

func (c *promptConfirmer) Confirm(prompt string) bool {
	if c.assumeYes {
		return true
	}
	reply, err := c.in.prompt(prompt+" (y/N)", "")
	if err != nil {
		return false
	}
	reply = strings.ToLower(reply)
	return reply == "y" || reply == "yes"
}

var _ admin.Confirmer = (*promptConfirmer)(nil)

// resolveManufacturer accepts a manufacturer id or a case-insensitive name.
func resolveManufacturer(manufacturers []api.Manufacturer, v string) (int64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	if id, err := strconv.ParseInt(v, 10, 64); err == nil {
		return id, nil
	}
	for _, m := range manufacturers {
		if strings.EqualFold(m.Name, v) {
			return m.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown manufacturer %q", v)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid device id %q", s)
	}
	return id, nil
}

// validateSort rejects tokens naming an unknown field. The core would ignore
// them, but on the command line that hides a typo.
func validateSort(token string) error {
	if token == "" {
		return nil
	}
	key, _ := view.ParseSort(token)
	if !slices.Contains(view.SortFields(), key.Field) {
		return fmt.Errorf("invalid sort %q, fields are %s", token, strings.Join(view.SortFields(), ", "))
	}
	return nil
}
