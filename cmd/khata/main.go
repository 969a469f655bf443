// khata is the counter-side CLI: sign in, manage the price list and
// customer book, compose bills offline, and settle them against the
// backend.
//
// Usage:
//
//	khata login -email owner@shop.in -password ...
//	khata services list
//	khata bill new
//	khata bill add -id <draft> -service Haircut
//	khata bill submit -id <draft> -pdf receipt.pdf
//	khata reports overview -range 7d
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/naayikhata/khata-go/internal/application/billing"
	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/application/reports"
	"github.com/naayikhata/khata-go/internal/domain"
	"github.com/naayikhata/khata-go/internal/domain/entity"
	"github.com/naayikhata/khata-go/internal/infrastructure/kvstore"
	"github.com/naayikhata/khata-go/internal/infrastructure/pdf"
	"github.com/naayikhata/khata-go/internal/infrastructure/rest"
	"github.com/naayikhata/khata-go/pkg/config"
	"github.com/naayikhata/khata-go/pkg/logger"
	"github.com/naayikhata/khata-go/pkg/money"
	"github.com/naayikhata/khata-go/pkg/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "khata:", err)
		os.Exit(1)
	}
}

// app bundles everything a subcommand can need. Built once per invocation.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	client   *rest.Client
	sessions *session.Manager
	drafts   *billing.DraftStore
	current  *session.Session // nil until requireSession
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("missing command (login, register, logout, me, services, customers, bill, reports)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	kv, closeKV, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeKV()

	a := &app{
		cfg:      cfg,
		log:      log,
		client:   rest.New(cfg.API.BaseURL, log),
		sessions: session.NewManager(kv),
		drafts:   billing.NewDraftStore(kv, log),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd, cmdArgs := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx, cmdArgs)
	case "login":
		return a.login(ctx, cmdArgs)
	case "logout":
		return a.logout(ctx)
	case "me":
		return a.me(ctx)
	case "services":
		return a.services(ctx, cmdArgs)
	case "customers":
		return a.customers(ctx, cmdArgs)
	case "bill":
		return a.bill(ctx, cmdArgs)
	case "reports":
		return a.reports(ctx, cmdArgs)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// openStore picks the kvstore backend from configuration.
func openStore(cfg *config.Config, log *logger.Logger) (kvstore.Store, func(), error) {
	noop := func() {}
	switch cfg.State.Backend {
	case "memory":
		return kvstore.NewMemoryStore(), noop, nil
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rs, err := kvstore.NewRedisStore(ctx, cfg.State.RedisAddr, cfg.State.RedisPassword, cfg.App.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("redis state backend: %w", err)
		}
		return rs, func() { _ = rs.Close() }, nil
	case "file", "":
		fs, err := kvstore.NewFileStore(cfg.State.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("file state backend: %w", err)
		}
		return fs, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}

// requireSession loads the cached session and arms the client with its
// token.
func (a *app) requireSession(ctx context.Context) error {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) || errors.Is(err, domain.ErrSessionExpired) {
			return errors.New("not signed in, run: khata login")
		}
		return err
	}
	a.current = s
	a.client.SetToken(s.AccessToken)
	return nil
}

// ── auth ──────────────────────────────────────────────────────────────────────

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	shop := fs.String("shop", "", "shop name")
	pan := fs.String("pan", "", "shop PAN (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tok, err := a.client.Register(ctx, dto.RegisterRequest{
		Email: *email, Password: *password, ShopName: *shop, PAN: *pan,
	})
	if err != nil {
		return err
	}
	return a.saveSession(ctx, tok.AccessToken)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tok, err := a.client.Login(ctx, dto.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	return a.saveSession(ctx, tok.AccessToken)
}

func (a *app) saveSession(ctx context.Context, token string) error {
	me, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	if err := a.sessions.Save(ctx, session.Session{
		AccessToken: token,
		Email:       me.Email,
		ShopName:    me.ShopName,
		SavedAt:     time.Now(),
	}); err != nil {
		return err
	}
	fmt.Printf("signed in to %s as %s\n", me.ShopName, me.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.requireSession(ctx); err == nil {
		if err := a.client.Logout(ctx); err != nil {
			a.log.Warn().Err(err).Msg("server-side logout failed")
		}
	}
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func (a *app) me(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	me, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", me.ShopName, me.Email)
	return nil
}

// ── services ──────────────────────────────────────────────────────────────────

func (a *app) services(ctx context.Context, args []string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		services, err := a.client.ListServices(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tACTIVE")
		for _, s := range services {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", s.ID, s.Name, money.FormatPaise(s.PricePaise), s.Active)
		}
		return w.Flush()
	case "add":
		fs := flag.NewFlagSet("services add", flag.ContinueOnError)
		name := fs.String("name", "", "service name")
		price := fs.String("price", "", "price in rupees, e.g. 150 or ₹1,250.50")
		if err := fs.Parse(args); err != nil {
			return err
		}
		paise, err := money.ParseRupees(*price)
		if err != nil {
			return err
		}
		svc, err := a.client.CreateService(ctx, dto.CreateServiceRequest{Name: *name, PricePaise: paise})
		if err != nil {
			return err
		}
		fmt.Printf("added %s at %s (%s)\n", svc.Name, money.FormatPaise(svc.PricePaise), svc.ID)
		return nil
	default:
		return fmt.Errorf("unknown services subcommand %q", sub)
	}
}

// ── customers ─────────────────────────────────────────────────────────────────

func (a *app) customers(ctx context.Context, args []string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		fs := flag.NewFlagSet("customers list", flag.ContinueOnError)
		query := fs.String("query", "", "filter by name or phone")
		if err := fs.Parse(args); err != nil {
			return err
		}
		page, err := a.client.ListCustomers(ctx, *query)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPHONE")
		for _, c := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Phone)
		}
		return w.Flush()
	case "add":
		fs := flag.NewFlagSet("customers add", flag.ContinueOnError)
		name := fs.String("name", "", "customer name")
		phone := fs.String("phone", "", "phone (optional)")
		notes := fs.String("notes", "", "notes (optional)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		c, err := a.client.CreateCustomer(ctx, dto.CreateCustomerRequest{
			Name: *name, Phone: *phone, Notes: *notes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added %s (%s)\n", c.Name, c.ID)
		return nil
	default:
		return fmt.Errorf("unknown customers subcommand %q", sub)
	}
}

// ── bill ──────────────────────────────────────────────────────────────────────

func (a *app) bill(ctx context.Context, args []string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("missing bill subcommand (new, list, show, add, remove, discount, pay, customer, submit)")
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "new":
		composer := billing.NewComposer(a.drafts, a.current.ShopName)
		a.drafts.Save(ctx, composer.Bill())
		fmt.Println("draft", composer.Bill().ID)
		return nil

	case "list":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCUSTOMER\tITEMS\tTOTAL")
		for _, b := range a.drafts.ListRecent(ctx, 10) {
			name := "walk-in"
			if b.Customer != nil {
				name = b.Customer.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				b.ID, name, len(b.Items), money.FormatPaise(billing.BillTotalPaise(b.Items, b.DiscountPaise)))
		}
		return w.Flush()

	case "show":
		composer, err := a.resume(ctx, args, nil)
		if err != nil {
			return err
		}
		printDraft(composer)
		return nil

	case "add":
		var serviceName string
		composer, err := a.resume(ctx, args, func(fs *flag.FlagSet) {
			fs.StringVar(&serviceName, "service", "", "service name or id")
		})
		if err != nil {
			return err
		}
		svc, err := a.findService(ctx, serviceName)
		if err != nil {
			return err
		}
		composer.AddService(ctx, *svc)
		printDraft(composer)
		return nil

	case "remove":
		var serviceName string
		composer, err := a.resume(ctx, args, func(fs *flag.FlagSet) {
			fs.StringVar(&serviceName, "service", "", "service name or id")
		})
		if err != nil {
			return err
		}
		svc, err := a.findService(ctx, serviceName)
		if err != nil {
			return err
		}
		composer.DecrementQty(ctx, svc.ID)
		printDraft(composer)
		return nil

	case "discount":
		var amount string
		composer, err := a.resume(ctx, args, func(fs *flag.FlagSet) {
			fs.StringVar(&amount, "amount", "", "discount in rupees")
		})
		if err != nil {
			return err
		}
		paise, err := money.ParseRupees(amount)
		if err != nil {
			return err
		}
		composer.SetDiscountPaise(ctx, paise)
		printDraft(composer)
		return nil

	case "pay":
		var method, ref string
		composer, err := a.resume(ctx, args, func(fs *flag.FlagSet) {
			fs.StringVar(&method, "method", "CASH", "CASH or UPI")
			fs.StringVar(&ref, "ref", "", "UPI transaction reference")
		})
		if err != nil {
			return err
		}
		composer.SetPayment(ctx, entity.PaymentMethod(strings.ToUpper(method)), ref)
		printDraft(composer)
		return nil

	case "customer":
		var customerID string
		composer, err := a.resume(ctx, args, func(fs *flag.FlagSet) {
			fs.StringVar(&customerID, "customer", "", "customer id, empty for walk-in")
		})
		if err != nil {
			return err
		}
		if customerID == "" {
			composer.SetCustomer(ctx, nil)
		} else {
			c, err := a.client.GetCustomer(ctx, customerID)
			if err != nil {
				return err
			}
			composer.SetCustomer(ctx, &entity.DraftCustomer{ID: c.ID, Name: c.Name, Phone: c.Phone})
		}
		printDraft(composer)
		return nil

	case "submit":
		var pdfPath string
		composer, err := a.resume(ctx, args, func(fs *flag.FlagSet) {
			fs.StringVar(&pdfPath, "pdf", "", "also write a PDF receipt to this path")
		})
		if err != nil {
			return err
		}
		checkout := billing.NewCheckoutUseCase(a.client, a.drafts)
		inv, err := checkout.Submit(ctx, composer.Bill())
		if err != nil {
			return err
		}
		fmt.Print(billing.ReceiptText(inv, a.current.ShopName))
		if pdfPath != "" {
			if err := a.writeReceiptPDF(ctx, inv, pdfPath); err != nil {
				return err
			}
			fmt.Println("receipt written to", pdfPath)
		}
		return nil

	default:
		return fmt.Errorf("unknown bill subcommand %q", sub)
	}
}

// resume parses the common -id flag (plus any extras) and loads the draft
// into a composer.
func (a *app) resume(ctx context.Context, args []string, extra func(*flag.FlagSet)) (*billing.Composer, error) {
	fs := flag.NewFlagSet("bill", flag.ContinueOnError)
	id := fs.String("id", "", "draft bill id")
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *id == "" {
		return nil, errors.New("missing -id")
	}
	b := a.drafts.Load(ctx, *id)
	if b == nil {
		return nil, fmt.Errorf("draft %s not found", *id)
	}
	return billing.Resume(a.drafts, b), nil
}

// findService resolves a service by exact id or case-insensitive name.
func (a *app) findService(ctx context.Context, nameOrID string) (*entity.Service, error) {
	if nameOrID == "" {
		return nil, errors.New("missing -service")
	}
	services, err := a.client.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].ID == nameOrID {
			return &services[i], nil
		}
	}
	for i := range services {
		if strings.EqualFold(services[i].Name, nameOrID) {
			if !services[i].Active {
				return nil, fmt.Errorf("service %q is inactive", services[i].Name)
			}
			return &services[i], nil
		}
	}
	return nil, fmt.Errorf("service %q not found", nameOrID)
}

func (a *app) writeReceiptPDF(ctx context.Context, inv *entity.Invoice, path string) error {
	var customer *entity.Customer
	if inv.CustomerID != "" {
		customer = &entity.Customer{ID: inv.CustomerID, Name: inv.CustomerName, Phone: inv.CustomerPhone}
	}
	data, err := pdf.NewReceiptGenerator().GenerateReceiptPDF(ctx, inv, a.current.ShopName, customer)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printDraft(c *billing.Composer) {
	b := c.Bill()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, it := range b.Items {
		fmt.Fprintf(w, "%s\tx%d\t%s\n", it.Name, it.Qty, money.FormatPaise(it.PricePaise*int64(it.Qty)))
	}
	fmt.Fprintf(w, "subtotal\t\t%s\n", money.FormatPaise(c.SubtotalPaise()))
	if b.DiscountPaise > 0 {
		fmt.Fprintf(w, "discount\t\t-%s\n", money.FormatPaise(b.DiscountPaise))
	}
	fmt.Fprintf(w, "total\t\t%s\n", money.FormatPaise(c.TotalPaise()))
	fmt.Fprintf(w, "payment\t\t%s\n", b.PaymentMethod)
	_ = w.Flush()
}

// ── reports ───────────────────────────────────────────────────────────────────

func (a *app) reports(ctx context.Context, args []string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("missing reports subcommand (overview, customers, services)")
	}
	sub, args := args[0], args[1:]

	fs := flag.NewFlagSet("reports", flag.ContinueOnError)
	rng := fs.String("range", "today", "today, 7d, or 30d")
	dormant := fs.Int("dormant", 30, "dormancy window in days (customers report)")
	limit := fs.Int("limit", 10, "row limit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	preset, err := parsePreset(*rng)
	if err != nil {
		return err
	}

	uc := reports.NewUseCase(a.client, a.client, nil)

	switch sub {
	case "overview":
		ov, err := uc.RangeOverview(ctx, preset)
		if err != nil {
			return err
		}
		s := ov.Summary
		fmt.Printf("%d bills  gross %s  discount %s  net %s\n",
			s.BillCount, money.FormatPaise(s.GrossPaise), money.FormatPaise(s.DiscountPaise), money.FormatPaise(s.NetPaise))
		fmt.Printf("cash %s  upi %s\n", money.FormatPaise(s.CashNetPaise), money.FormatPaise(s.UPINetPaise))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, day := range ov.PerDay {
			fmt.Fprintf(w, "%s\t%d bills\t%s\n", day.Day, day.Bills, money.FormatPaise(day.NetPaise))
		}
		return w.Flush()

	case "customers":
		rep, err := uc.CustomerInsights(ctx, preset, *dormant, *limit)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TOP CUSTOMERS\tBILLS\tNET")
		for _, r := range rep.TopCustomers {
			fmt.Fprintf(w, "%s\t%d\t%s\n", r.CustomerName, r.BillCount, money.FormatPaise(r.NetPaise))
		}
		fmt.Fprintln(w, "DORMANT\tLAST VISIT\tBILLS EVER")
		for _, d := range rep.DormantCustomers {
			last := "never"
			if d.LastInvoiceAt != nil {
				last = d.LastInvoiceAt.Local().Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\n", d.CustomerName, last, d.BillCountAllTime)
		}
		return w.Flush()

	case "services":
		rep, err := uc.ServicePerformance(ctx, preset, *limit)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SERVICE\tQTY\tREVENUE")
		for _, r := range rep.TopByRevenue {
			fmt.Fprintf(w, "%s\t%d\t%s\n", r.ServiceName, r.Qty, money.FormatPaise(r.RevenuePaise))
		}
		return w.Flush()

	default:
		return fmt.Errorf("unknown reports subcommand %q", sub)
	}
}

func parsePreset(s string) (reports.RangePreset, error) {
	switch strings.ToLower(s) {
	case "today":
		return reports.PresetToday, nil
	case "7d":
		return reports.Preset7D, nil
	case "30d":
		return reports.Preset30D, nil
	default:
		return "", fmt.Errorf("unknown range %q (today, 7d, 30d)", s)
	}
}
