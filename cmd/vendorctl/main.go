// vendorctl 商家入驻命令行：引导注册、登录、登出、查看当前会话
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"VendorHub/config"
	"VendorHub/internal/apiclient"
	"VendorHub/internal/localstore"
	"VendorHub/internal/onboarding"
	"VendorHub/internal/session"
	"VendorHub/pkg/logger"
)

const usage = `Usage: vendorctl [flags] <command>

Commands:
  onboard   register a new vendor account step by step
  login     log in with email and password
  logout    clear the local session
  whoami    show the logged in vendor

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run 返回进程退出码，defer 在退出前全部执行
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("vendorctl", flag.ContinueOnError)
	fs.SetOutput(errOut)
	apiURL := fs.String("api", config.Cfg.APIBaseURL, "backend base URL")
	storePath := fs.String("store", config.Cfg.LocalStorePath, "local session database path")
	logLevel := fs.String("log-level", "WARN", "log level written to stderr")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger.InitCLI(*logLevel)
	defer logger.Sync()

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(*apiURL, *storePath, in, out)
	if err != nil {
		logger.Logger.Error("Failed to start vendorctl", zap.Error(err))
		fmt.Fprintf(errOut, "vendorctl: %v\n", err)
		return 1
	}
	defer app.close()

	if err := app.run(ctx, fs.Arg(0)); err != nil {
		fmt.Fprintf(errOut, "vendorctl: %v\n", err)
		return 1
	}
	return 0
}

// app 命令运行所需的依赖
type app struct {
	api   *apiclient.Client
	store localstore.Store
	con   *console
	close func()
}

func newApp(apiURL, storePath string, in io.Reader, out io.Writer) (*app, error) {
	api, err := apiclient.New(apiURL, time.Duration(config.Cfg.APITimeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}
	store, err := localstore.OpenSQLite(storePath)
	if err != nil {
		return nil, err
	}
	return &app{
		api:   api,
		store: store,
		con:   newConsole(in, out),
		close: func() {
			if err := store.Close(); err != nil {
				logger.Logger.Warn("Failed to close local store", zap.Error(err))
			}
		},
	}, nil
}

func (a *app) run(ctx context.Context, cmd string) error {
	notifier := consoleNotifier{out: a.con.out}
	switch cmd {
	case "onboard":
		ctl := onboarding.New(a.api, a.store,
			onboarding.WithNotifier(notifier),
			onboarding.WithTransitionDelay(time.Duration(config.Cfg.StepTransitionMillis)*time.Millisecond),
			onboarding.WithLogger(logger.Logger),
		)
		return runOnboard(ctx, ctl, a.con)
	case "login":
		return runLogin(ctx, session.NewManager(a.api, a.store, notifier), a.con)
	case "logout":
		return session.NewManager(a.api, a.store, notifier).Logout(ctx)
	case "whoami":
		return runWhoami(ctx, session.NewManager(a.api, a.store, notifier), a.con)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runLogin(ctx context.Context, m *session.Manager, con *console) error {
	email, err := con.ask("Email", "")
	if err != nil {
		return err
	}
	password, err := con.ask("Password", "")
	if err != nil {
		return err
	}
	s, err := m.Login(ctx, email, password)
	if err != nil {
		return err
	}
	printSession(con, s)
	return nil
}

func runWhoami(ctx context.Context, m *session.Manager, con *console) error {
	s, err := m.Current(ctx)
	if errors.Is(err, session.ErrNoSession) {
		con.printf("Not logged in.\n")
		return nil
	}
	if err != nil {
		return err
	}
	printSession(con, s)
	return nil
}

func printSession(con *console, s *session.Session) {
	p := s.Profile
	con.printf("%s <%s>\n", p.FullName, p.Email)
	con.printf("  vendor id: %s\n", p.ID)
	con.printf("  business:  %s\n", p.Business)
	if len(s.Onboarding.Services) > 0 {
		con.printf("  services:  %v\n", s.Onboarding.Services)
	}
	if s.Onboarding.City != "" {
		con.printf("  location:  %s, %s %s\n", s.Onboarding.City, s.Onboarding.State, s.Onboarding.Pincode)
	}
	if s.Verified() {
		con.printf("  status:    verified\n")
	} else {
		con.printf("  status:    pending verification\n")
	}
}
