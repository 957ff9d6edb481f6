// ABOUTME: Terminal client for the Starlight Cinema ticketing platform
// ABOUTME: Wires the session, pipeline, guard, and entity APIs behind subcommands

package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/starcinema/starticket/internal/api"
	"github.com/starcinema/starticket/internal/config"
	"github.com/starcinema/starticket/internal/gateway"
	"github.com/starcinema/starticket/internal/nav"
	"github.com/starcinema/starticket/internal/perm"
	"github.com/starcinema/starticket/internal/persist"
	"github.com/starcinema/starticket/internal/pipeline"
	"github.com/starcinema/starticket/internal/session"
)

const banner = `
      _             _   _      _        _
  ___| |_ __ _ _ __| |_(_) ___| | _____| |_
 / __| __/ _' | '__| __| |/ __| |/ / _ \ __|
 \__ \ || (_| | |  | |_| | (__|   <  __/ |_
 |___/\__\__,_|_|   \__|_|\___|_|\_\___|\__|
`

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	app, err := buildApp()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	switch cmd {
	case "login":
		err = app.cmdLogin(args)
	case "register":
		err = app.cmdRegister(args)
	case "logout":
		err = app.cmdLogout()
	case "me":
		err = app.cmdMe()
	case "refresh":
		err = app.cmdRefresh()
	case "check":
		err = app.cmdCheck(args)
	case "open":
		err = app.cmdOpen(args)
	case "routes":
		err = app.cmdRoutes()
	case "movies":
		err = app.cmdMovies(args)
	case "movie":
		err = app.cmdMovie(args)
	case "news":
		err = app.cmdNews(args)
	case "orders":
		err = app.cmdOrders(args)
	case "profile":
		err = app.cmdProfile(args)
	case "admin":
		err = app.cmdAdmin(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: starticket <command> [args]")
	fmt.Println()
	yellow.Println("Account:")
	fmt.Println("  login [-u <name>] [-p <pass>]   Sign in (prompts when flags omitted)")
	fmt.Println("  register --username <name> --password <pass> --email <addr> [--phone <num>]")
	fmt.Println("  logout                          Sign out and clear the saved session")
	fmt.Println("  me                              Show the current session")
	fmt.Println("  refresh                         Exchange the saved token for a fresh one")
	fmt.Println("  check --username <name>         Check username availability")
	fmt.Println("  check --email <addr>            Check email availability")
	fmt.Println("  profile [--email --phone --avatar]  Show or update the profile")
	fmt.Println()
	yellow.Println("Browsing:")
	fmt.Println("  movies [--page N] [--genre G] [--keyword K]   List the movie catalog")
	fmt.Println("  movie <id>                      Show one movie")
	fmt.Println("  news [<id>]                     List news, or show one item")
	fmt.Println("  orders [list]                   List your orders")
	fmt.Println("  orders create --session <id> --seats A1,A2")
	fmt.Println("  orders cancel <id>              Cancel an order")
	fmt.Println()
	yellow.Println("Navigation:")
	fmt.Println("  open <route>                    Resolve a route through the access guard")
	fmt.Println("  routes                          List routes and their access policies")
	fmt.Println()
	yellow.Println("Admin:")
	fmt.Println("  admin stats                     Show the platform dashboard summary")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  STARTICKET_CONFIG               Config file (default: $XDG_CONFIG_HOME/starticket/config.toml)")
	fmt.Println()
}

// app holds the wired client. Construction order matters: the pipeline and
// the session manager need each other, so the pipeline is built first and
// the session side is bound in afterwards.
type app struct {
	cfg     *config.Config
	store   persist.Store
	pipe    *pipeline.Pipeline
	manager *session.Manager
	guard   *nav.Guard
	table   *nav.Table
	logger  *slog.Logger
}

func buildApp() (*app, error) {
	configPath := os.Getenv("STARTICKET_CONFIG")
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := setupLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	statePath, err := cfg.StatePath()
	if err != nil {
		return nil, err
	}
	store, err := persist.NewSQLiteStore(statePath)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	pipe, err := pipeline.New(cfg.Gateway.URL, cfg.Gateway.Timeout, termNotifier{})
	if err != nil {
		store.Close()
		return nil, err
	}

	manager := session.NewManager(gateway.New(pipe), store)
	pipe.BindSession(manager, manager)

	table, err := loadRoutes(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	guard := nav.NewGuard(table, manager)
	pipe.BindNavigator(guard)

	return &app{
		cfg:     cfg,
		store:   store,
		pipe:    pipe,
		manager: manager,
		guard:   guard,
		table:   table,
		logger:  logger,
	}, nil
}

func loadRoutes(cfg *config.Config) (*nav.Table, error) {
	if cfg.Routes.Path != "" {
		return nav.LoadTable(cfg.Routes.Path)
	}
	return nav.DefaultTable()
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing session store", "error", err)
	}
}

// setupLogger configures slog from the logging section. Logs go to stderr;
// stdout is reserved for command output.
func setupLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}

func (a *app) ctx() context.Context {
	return context.Background()
}

// enter routes a command through the guard and reports a bounce. Commands
// that map onto a gated view call this before touching the network.
func (a *app) enter(route string) error {
	decision, err := a.guard.Navigate(route)
	if err != nil {
		return err
	}
	if decision.Redirected {
		switch decision.Reason {
		case nav.ReasonGuestOnly:
			return fmt.Errorf("already signed in; log out first")
		case nav.ReasonAdminRequired:
			return fmt.Errorf("admin access required")
		default:
			return fmt.Errorf("sign in first: starticket login")
		}
	}
	return nil
}

func (a *app) cmdLogin(args []string) error {
	var username, password string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--username", "-u":
			if i+1 < len(args) {
				username = args[i+1]
				i++
			}
		case "--password", "-p":
			if i+1 < len(args) {
				password = args[i+1]
				i++
			}
		}
	}

	if err := a.enter(nav.RouteLogin); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	if username == "" {
		fmt.Print("Username: ")
		if !scanner.Scan() {
			return fmt.Errorf("username is required")
		}
		username = strings.TrimSpace(scanner.Text())
	}
	if password == "" {
		fmt.Print("Password: ")
		if !scanner.Scan() {
			return fmt.Errorf("password is required")
		}
		password = strings.TrimSpace(scanner.Text())
	}
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	snap, err := a.manager.Login(a.ctx(), session.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}

	color.Green("✓ Signed in as %s", snap.Identity.Username)
	if snap.IsAdmin() {
		color.Cyan("  (administrator)")
	}
	return nil
}

func (a *app) cmdRegister(args []string) error {
	var reg session.Registration
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--username", "-u":
			if i+1 < len(args) {
				reg.Username = args[i+1]
				i++
			}
		case "--password", "-p":
			if i+1 < len(args) {
				reg.Password = args[i+1]
				i++
			}
		case "--email", "-e":
			if i+1 < len(args) {
				reg.Email = args[i+1]
				i++
			}
		case "--phone":
			if i+1 < len(args) {
				reg.Phone = args[i+1]
				i++
			}
		}
	}

	if reg.Username == "" || reg.Password == "" || reg.Email == "" {
		return fmt.Errorf("usage: register --username <name> --password <pass> --email <addr> [--phone <num>]")
	}

	if err := a.enter("register"); err != nil {
		return err
	}

	// Availability checks first, same as the signup form does
	if err := precheckRegistration(a.ctx(), a.manager, reg); err != nil {
		return err
	}

	snap, err := a.manager.Register(a.ctx(), reg)
	if err != nil {
		return err
	}

	color.Green("✓ Registered and signed in as %s", snap.Identity.Username)
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.manager.InitAuth(); err != nil {
		a.logger.Warn("session rehydration failed", "error", err)
	}
	if !a.manager.Snapshot().Authenticated() {
		fmt.Println("Not signed in.")
		return nil
	}

	a.manager.Logout(a.ctx())
	color.Green("✓ Signed out")
	return nil
}

func (a *app) cmdMe() error {
	if err := a.manager.InitAuth(); err != nil {
		a.logger.Warn("session rehydration failed", "error", err)
	}

	snap := a.manager.Snapshot()
	cyan := color.New(color.FgCyan)

	fmt.Println()
	cyan.Println("  Session")
	cyan.Println("  -------")

	if !snap.Authenticated() {
		fmt.Println("  (not signed in)")
		fmt.Println()
		return nil
	}

	fmt.Printf("  Username:  %s\n", snap.Identity.Username)
	fmt.Printf("  Email:     %s\n", snap.Identity.Email)
	if snap.Identity.Phone != "" {
		fmt.Printf("  Phone:     %s\n", snap.Identity.Phone)
	}
	fmt.Printf("  Role:      %s\n", snap.Identity.Role)

	if expiry, ok := a.manager.TokenExpiry(); ok {
		fmt.Printf("  Token:     expires %s\n", expiry.Format(time.RFC1123))
		if a.manager.ExpiringSoon(time.Hour) {
			color.Yellow("             expiring soon, run: starticket refresh")
		}
	}

	adminCaps := []perm.Capability{perm.CapAdmin}
	if perm.CanRender(adminCaps, snap) {
		color.Cyan("  Admin:     dashboard available (starticket admin stats)")
	}
	fmt.Println()
	return nil
}

func (a *app) cmdRefresh() error {
	if err := a.manager.InitAuth(); err != nil {
		a.logger.Warn("session rehydration failed", "error", err)
	}
	if !a.manager.Snapshot().Authenticated() {
		return fmt.Errorf("not signed in")
	}

	snap, err := a.manager.RefreshToken(a.ctx())
	if err != nil {
		return fmt.Errorf("refreshing token: %w", err)
	}

	color.Green("✓ Token refreshed for %s", snap.Identity.Username)
	if expiry, ok := a.manager.TokenExpiry(); ok {
		fmt.Printf("  Expires: %s\n", expiry.Format(time.RFC1123))
	}
	return nil
}

func (a *app) cmdCheck(args []string) error {
	var username, email string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--username", "-u":
			if i+1 < len(args) {
				username = args[i+1]
				i++
			}
		case "--email", "-e":
			if i+1 < len(args) {
				email = args[i+1]
				i++
			}
		}
	}

	switch {
	case username != "":
		taken, err := a.manager.CheckUsername(a.ctx(), username)
		if err != nil {
			return err
		}
		fmt.Println(availabilityLine("username", username, taken))
	case email != "":
		taken, err := a.manager.CheckEmail(a.ctx(), email)
		if err != nil {
			return err
		}
		fmt.Println(availabilityLine("email", email, taken))
	default:
		return fmt.Errorf("usage: check --username <name> | check --email <addr>")
	}
	return nil
}

// availabilityChecker is the slice of the session manager the signup
// prechecks consume.
type availabilityChecker interface {
	CheckUsername(ctx context.Context, username string) (bool, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
}

// precheckRegistration rejects a registration whose username or email is
// already taken. Check failures don't block: the register call itself is
// the authority and reports the same conflicts.
func precheckRegistration(ctx context.Context, checks availabilityChecker, reg session.Registration) error {
	if taken, err := checks.CheckUsername(ctx, reg.Username); err == nil && taken {
		return fmt.Errorf("username %q is taken", reg.Username)
	}
	if taken, err := checks.CheckEmail(ctx, reg.Email); err == nil && taken {
		return fmt.Errorf("email %q is already registered", reg.Email)
	}
	return nil
}

// availabilityLine renders a check outcome. The gateway reports taken;
// the user asked about availability, so the polarity flips here.
func availabilityLine(field, value string, taken bool) string {
	if taken {
		return color.YellowString("✗ %s %q is taken", field, value)
	}
	return color.GreenString("✓ %s %q is available", field, value)
}

func (a *app) cmdOpen(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: open <route>")
	}

	decision, err := a.guard.Navigate(args[0])
	if err != nil {
		return err
	}

	if decision.Redirected {
		color.Yellow("→ redirected to %s (%s)", decision.Target.Name, decision.Reason)
	} else {
		color.Green("✓ %s", decision.Target.Title)
	}
	fmt.Printf("  Path: %s\n", decision.Target.Path)
	return nil
}

func (a *app) cmdRoutes() error {
	// Resolve against the live session so the ACCESS column reflects
	// what this user would actually get.
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Routes")
	cyan.Println("  ------")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tPATH\tPOLICY\tACCESS")
	fmt.Fprintln(w, "  ----\t----\t------\t------")

	for _, route := range a.table.Routes() {
		decision, err := a.guard.Resolve(route.Name)
		if err != nil {
			return err
		}
		access := "allowed"
		if decision.Redirected {
			access = "→ " + decision.Target.Name
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", route.Name, route.Path, policyLabel(route.Policy), access)
	}
	w.Flush()
	fmt.Println()
	return nil
}

func policyLabel(p nav.AccessPolicy) string {
	switch {
	case p.RequiresAdmin:
		return "admin"
	case p.RequiresAuth:
		return "auth"
	case p.GuestOnly:
		return "guest"
	default:
		return "public"
	}
}

func (a *app) cmdMovies(args []string) error {
	var query api.MovieQuery
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--page":
			if i+1 < len(args) {
				page, err := strconv.Atoi(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid page: %w", err)
				}
				query.Page = page
				i++
			}
		case "--genre", "-g":
			if i+1 < len(args) {
				query.Genre = args[i+1]
				i++
			}
		case "--keyword", "-k":
			if i+1 < len(args) {
				query.Keyword = args[i+1]
				i++
			}
		}
	}

	if err := a.enter("movies"); err != nil {
		return err
	}

	page, err := api.NewMovies(a.pipe).List(a.ctx(), query)
	if err != nil {
		return err
	}

	if len(page.Content) == 0 {
		fmt.Println("No movies found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTITLE\tGENRE\tRATING\tSTATUS")
	fmt.Fprintln(w, "  --\t-----\t-----\t------\t------")
	for _, m := range page.Content {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%.1f\t%s\n", m.ID, truncate(m.Title, 32), m.Genre, m.Rating, m.Status)
	}
	w.Flush()
	fmt.Printf("\n  Page %d of %d (%d total)\n", page.Number+1, page.TotalPages, page.TotalElements)
	return nil
}

func (a *app) cmdMovie(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: movie <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid movie id %q", args[0])
	}

	if err := a.enter("movie-detail"); err != nil {
		return err
	}

	movie, err := api.NewMovies(a.pipe).Get(a.ctx(), id)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  %s\n", movie.Title)
	fmt.Printf("  Genre:     %s\n", movie.Genre)
	fmt.Printf("  Director:  %s\n", movie.Director)
	fmt.Printf("  Duration:  %d min\n", movie.Duration)
	fmt.Printf("  Rating:    %.1f\n", movie.Rating)
	fmt.Printf("  Released:  %s\n", movie.ReleaseDate)
	if movie.Description != "" {
		fmt.Printf("\n  %s\n", movie.Description)
	}
	fmt.Println()
	return nil
}

func (a *app) cmdNews(args []string) error {
	if err := a.enter("news"); err != nil {
		return err
	}

	news := api.NewNews(a.pipe)

	if len(args) >= 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid news id %q", args[0])
		}
		item, err := news.Get(a.ctx(), id)
		if err != nil {
			return err
		}
		cyan := color.New(color.FgCyan)
		fmt.Println()
		cyan.Printf("  %s\n", item.Title)
		fmt.Printf("  %s\n\n", item.PublishedAt)
		fmt.Println("  " + item.Content)
		fmt.Println()
		return nil
	}

	items, err := news.List(a.ctx())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No news.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTITLE\tPUBLISHED")
	fmt.Fprintln(w, "  --\t-----\t---------")
	for _, item := range items {
		fmt.Fprintf(w, "  %d\t%s\t%s\n", item.ID, truncate(item.Title, 48), item.PublishedAt)
	}
	w.Flush()
	return nil
}

func (a *app) cmdOrders(args []string) error {
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	if err := a.enter("orders"); err != nil {
		return err
	}

	orders := api.NewOrders(a.pipe)

	switch subcmd {
	case "list", "ls":
		return a.cmdOrdersList(orders)
	case "create", "add":
		return a.cmdOrdersCreate(orders, args)
	case "cancel", "rm":
		if len(args) < 1 {
			return fmt.Errorf("usage: orders cancel <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		if err := orders.Cancel(a.ctx(), id); err != nil {
			return err
		}
		color.Green("✓ Cancelled order %d", id)
		return nil
	default:
		return fmt.Errorf("unknown orders subcommand: %s (use list, create, cancel)", subcmd)
	}
}

func (a *app) cmdOrdersList(orders *api.Orders) error {
	list, err := orders.List(a.ctx())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tORDER\tMOVIE\tSEATS\tAMOUNT\tSTATUS")
	fmt.Fprintln(w, "  --\t-----\t-----\t-----\t------\t------")
	for _, o := range list {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%.2f\t%s\n",
			o.ID, o.OrderNo, truncate(o.MovieTitle, 28), strings.Join(o.Seats, ","), o.Amount, o.Status)
	}
	w.Flush()
	return nil
}

func (a *app) cmdOrdersCreate(orders *api.Orders, args []string) error {
	var create api.OrderCreate
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--session", "-s":
			if i+1 < len(args) {
				id, err := strconv.ParseInt(args[i+1], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid session id: %w", err)
				}
				create.SessionID = id
				i++
			}
		case "--seats":
			if i+1 < len(args) {
				create.Seats = strings.Split(args[i+1], ",")
				i++
			}
		}
	}

	if create.SessionID == 0 || len(create.Seats) == 0 {
		return fmt.Errorf("usage: orders create --session <id> --seats A1,A2")
	}

	order, err := orders.Create(a.ctx(), create)
	if err != nil {
		return err
	}

	color.Green("✓ Order placed: %s", order.OrderNo)
	fmt.Printf("  Seats:  %s\n", strings.Join(order.Seats, ", "))
	fmt.Printf("  Amount: %.2f\n", order.Amount)
	fmt.Printf("  Status: %s\n", order.Status)
	return nil
}

func (a *app) cmdProfile(args []string) error {
	var update api.ProfileUpdate
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--email", "-e":
			if i+1 < len(args) {
				update.Email = args[i+1]
				i++
			}
		case "--phone":
			if i+1 < len(args) {
				update.Phone = args[i+1]
				i++
			}
		case "--avatar":
			if i+1 < len(args) {
				update.Avatar = args[i+1]
				i++
			}
		}
	}

	if err := a.enter("profile"); err != nil {
		return err
	}

	profile := api.NewProfile(a.pipe)

	if update == (api.ProfileUpdate{}) {
		identity, err := profile.Get(a.ctx())
		if err != nil {
			return err
		}
		printIdentity(identity)
		return nil
	}

	identity, err := profile.Update(a.ctx(), update)
	if err != nil {
		return err
	}
	// Keep the live session and its persisted shadow in step
	if err := a.manager.UpdateIdentity(*identity); err != nil {
		a.logger.Warn("updating cached identity", "error", err)
	}

	color.Green("✓ Profile updated")
	printIdentity(identity)
	return nil
}

func printIdentity(identity *session.Identity) {
	fmt.Printf("  Username:  %s\n", identity.Username)
	fmt.Printf("  Email:     %s\n", identity.Email)
	if identity.Phone != "" {
		fmt.Printf("  Phone:     %s\n", identity.Phone)
	}
	if identity.Avatar != "" {
		fmt.Printf("  Avatar:    %s\n", identity.Avatar)
	}
}

func (a *app) cmdAdmin(args []string) error {
	subcmd := "stats"
	if len(args) > 0 {
		subcmd = args[0]
	}

	if err := a.enter("admin-dashboard"); err != nil {
		return err
	}

	switch subcmd {
	case "stats":
		stats, err := api.NewAdmin(a.pipe).DashboardStats(a.ctx())
		if err != nil {
			return err
		}

		cyan := color.New(color.FgCyan)
		fmt.Println()
		cyan.Println("  Platform Dashboard")
		cyan.Println("  ------------------")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Users\t%d\n", stats.TotalUsers)
		fmt.Fprintf(w, "  Movies\t%d (%d active)\n", stats.TotalMovies, stats.ActiveMovies)
		fmt.Fprintf(w, "  Orders\t%d (%d today, %d pending)\n", stats.TotalOrders, stats.TodayOrders, stats.PendingOrders)
		fmt.Fprintf(w, "  Revenue\t%.2f (%.2f today)\n", stats.TotalRevenue, stats.TodayRevenue)
		w.Flush()
		fmt.Println()
		return nil
	default:
		return fmt.Errorf("unknown admin subcommand: %s (use stats)", subcmd)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
