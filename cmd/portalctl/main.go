// Comando portalctl: cliente de terminal del portal. Comparte sesión y almacenamiento con cmd/portal.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/jhoicas/placement-portal/internal/application/guard"
	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/search"
	"github.com/jhoicas/placement-portal/internal/portal"
	"github.com/jhoicas/placement-portal/pkg/config"
	"github.com/jhoicas/placement-portal/pkg/logger"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const usage = `uso: portalctl <comando> [flags]

comandos:
  login        -e email [-p password]
  logout
  whoami
  jobs         [-q término]
  apply        <jobId>
  candidates   [--job id]
  shortlist    <applicationId>   (también: hire, reject)
  users        [--tab ALL|STUDENT|COMPANY|ADMIN] [-q término]
  approve      <userId>          (también: block, unblock, reject-user)
  report       [-q término]
  export       [--format csv|pdf] [-o archivo]
  guard        <ruta>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: levelOr(cfg.App.LogLevel, "warn")})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := portal.Build(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	p.AddSink(func(ev notify.Notification) {
		prefix := "✔"
		if ev.Kind == notify.KindError {
			prefix = "✘"
		}
		fmt.Fprintln(os.Stderr, prefix, ev.Message)
	})

	cli := &cli{p: p, out: os.Stdout, in: os.Stdin}
	err = cli.run(ctx, os.Args[1], os.Args[2:])
	if cerr := p.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func levelOr(level, def string) string {
	if strings.TrimSpace(level) == "" || strings.EqualFold(level, "info") {
		return def
	}
	return level
}

type cli struct {
	p   *portal.Portal
	out io.Writer
	in  *os.File
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.p.Auth.Logout(ctx)
	case "whoami":
		return c.whoami()
	case "jobs":
		return c.jobs(ctx, args)
	case "apply":
		return c.apply(ctx, args)
	case "candidates":
		return c.candidates(ctx, args)
	case "shortlist", "hire", "reject":
		return c.candidate(ctx, cmd, args)
	case "users":
		return c.users(ctx, args)
	case "approve", "block", "unblock", "reject-user":
		return c.moderate(ctx, cmd, args)
	case "report":
		return c.report(ctx, args)
	case "export":
		return c.export(ctx, args)
	case "guard":
		return c.guard(args)
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	default:
		return fmt.Errorf("comando desconocido %q\n%s", cmd, usage)
	}
}

func flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

func oneArg(fs *pflag.FlagSet, name, what string) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: se espera exactamente un %s", name, what)
	}
	return fs.Arg(0), nil
}

func (c *cli) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
}

// ─── Sesión ───────────────────────────────────────────────────────────────────

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flags("login")
	email := fs.StringP("email", "e", "", "email de la cuenta")
	password := fs.StringP("password", "p", "", "contraseña (se pide por terminal si se omite)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("login: --email es obligatorio")
	}
	if *password == "" {
		pw, err := c.readPassword()
		if err != nil {
			return err
		}
		*password = pw
	}
	res, err := c.p.Auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Sesión iniciada como %s (%s). Panel: %s\n", res.Identity.DisplayName, res.Identity.Role, res.Redirect)
	return nil
}

func (c *cli) readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Contraseña: ")
	fd := int(c.in.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *cli) whoami() error {
	id, ok := c.p.Session.Current()
	if !ok {
		fmt.Fprintln(c.out, "Sin sesión")
		return nil
	}
	fmt.Fprintf(c.out, "%s <%s> rol=%s\n", id.DisplayName, id.Email, id.Role)
	for _, item := range guard.NavItems(c.p.Session.Role()) {
		fmt.Fprintf(c.out, "  %s\t%s\n", item.Label, item.Path)
	}
	return nil
}

func (c *cli) guard(args []string) error {
	fs := flags("guard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := oneArg(fs, "guard", "ruta")
	if err != nil {
		return err
	}
	d := guard.Evaluate(path, c.p.Session.Role())
	if d.Outcome == guard.Redirected {
		fmt.Fprintf(c.out, "%s -> %s\n", d.Outcome, d.Target)
		return nil
	}
	fmt.Fprintln(c.out, d.Outcome)
	return nil
}

// ─── Estudiante ───────────────────────────────────────────────────────────────

func (c *cli) jobs(ctx context.Context, args []string) error {
	fs := flags("jobs")
	q := fs.StringP("query", "q", "", "filtra por título, empresa o ubicación")
	if err := fs.Parse(args); err != nil {
		return err
	}
	view, err := c.p.Student.LoadJobs(ctx)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tTÍTULO\tEMPRESA\tUBICACIÓN\tSALARIO\tACCIÓN")
	for _, card := range view.Visible(*q) {
		j := card.Job
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.CompanyName(), j.Location, j.Salary, card.Button.Label)
	}
	return w.Flush()
}

func (c *cli) apply(ctx context.Context, args []string) error {
	fs := flags("apply")
	if err := fs.Parse(args); err != nil {
		return err
	}
	jobID, err := oneArg(fs, "apply", "jobId")
	if err != nil {
		return err
	}
	view, err := c.p.Student.LoadJobs(ctx)
	if err != nil {
		return err
	}
	return view.Apply(ctx, jobID)
}

// ─── Empresa ──────────────────────────────────────────────────────────────────

var candidateTargets = map[string]entity.ApplicationStatus{
	"shortlist": entity.StatusShortlisted,
	"hire":      entity.StatusHired,
	"reject":    entity.StatusRejected,
}

func (c *cli) candidates(ctx context.Context, args []string) error {
	fs := flags("candidates")
	job := fs.String("job", "", "solo postulaciones a esta oferta")
	if err := fs.Parse(args); err != nil {
		return err
	}
	board, err := c.p.Company.LoadCandidates(ctx, *job)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tCANDIDATO\tOFERTA\tESTADO\tACCIONES")
	for _, cand := range board.Candidates() {
		labels := make([]string, 0, len(cand.Actions))
		for _, a := range cand.Actions {
			labels = append(labels, a.Label)
		}
		title := ""
		if cand.Application.Job != nil {
			title = cand.Application.Job.Title
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", cand.Application.ID, cand.Name, title, cand.Application.Status, strings.Join(labels, ", "))
	}
	return w.Flush()
}

func (c *cli) candidate(ctx context.Context, cmd string, args []string) error {
	fs := flags(cmd)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := oneArg(fs, cmd, "applicationId")
	if err != nil {
		return err
	}
	board, err := c.p.Company.LoadCandidates(ctx, "")
	if err != nil {
		return err
	}
	app, err := board.UpdateStatus(ctx, id, candidateTargets[cmd])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s -> %s\n", app.ID, app.Status)
	return nil
}

// ─── Administración ───────────────────────────────────────────────────────────

var moderationTargets = map[string]entity.AccountStatus{
	"approve":     entity.AccountActive,
	"unblock":     entity.AccountActive,
	"block":       entity.AccountBlocked,
	"reject-user": entity.AccountRejected,
}

func (c *cli) users(ctx context.Context, args []string) error {
	fs := flags("users")
	tab := fs.String("tab", "ALL", "pestaña: ALL, STUDENT, COMPANY o ADMIN")
	q := fs.StringP("query", "q", "", "filtra por nombre o email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	board, err := c.p.Admin.LoadUsers(ctx)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tROL\tESTADO\tACCIONES")
	for _, row := range board.Filter(search.ParseTab(*tab), *q) {
		labels := make([]string, 0, len(row.Actions))
		for _, a := range row.Actions {
			labels = append(labels, a.Label)
		}
		if row.Deletable {
			labels = append(labels, "Delete")
		}
		a := row.Account
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, row.Name, a.Email, a.Role, a.Status, strings.Join(labels, ", "))
	}
	return w.Flush()
}

func (c *cli) moderate(ctx context.Context, cmd string, args []string) error {
	fs := flags(cmd)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := oneArg(fs, cmd, "userId")
	if err != nil {
		return err
	}
	board, err := c.p.Admin.LoadUsers(ctx)
	if err != nil {
		return err
	}
	acc, err := board.SetStatus(ctx, id, moderationTargets[cmd])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s -> %s\n", acc.Email, acc.Status)
	return nil
}

func (c *cli) report(ctx context.Context, args []string) error {
	fs := flags("report")
	q := fs.StringP("query", "q", "", "filtra por estudiante, empresa u oferta")
	if err := fs.Parse(args); err != nil {
		return err
	}
	view, err := c.p.Admin.LoadReport(ctx)
	if err != nil {
		return err
	}
	w := c.table()
	fmt.Fprintln(w, "ESTUDIANTE\tEMAIL\tEMPRESA\tOFERTA\tESTADO\tFECHA")
	for _, r := range view.Filter(*q) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.StudentName, r.StudentEmail, r.CompanyName, r.JobTitle, r.Status, r.AppliedAt.Local().Format("2006-01-02"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Colocados: %d\n", view.Placed())
	return nil
}

func (c *cli) export(ctx context.Context, args []string) error {
	fs := flags("export")
	format := fs.String("format", "csv", "formato: "+strings.Join(c.p.Admin.Formats(), ", "))
	output := fs.StringP("output", "o", "", "archivo destino (por defecto el nombre sugerido)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	exp, err := c.p.Admin.ExportReport(ctx, *format)
	if err != nil {
		return err
	}
	path := *output
	if path == "" {
		path = exp.Filename
	}
	if path == "-" {
		_, err = c.out.Write(exp.Body)
		return err
	}
	if err := os.WriteFile(path, exp.Body, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	fmt.Fprintf(c.out, "Reporte guardado en %s (%d bytes)\n", path, len(exp.Body))
	return nil
}
