package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"coilworks/internal/config"
	"coilworks/internal/domain"
	"coilworks/internal/infrastructure/logger"
	"coilworks/internal/storefront"
	"coilworks/internal/storefront/views"
)

const usage = `usage: storefront [-config file] <command> [args]

commands:
  signin <userId> <role> <token>   activate an identity and restore its saved cart
  signout                          save the cart to the server and forget the session
  products [category] [search]     list the catalog
  cart                             show the local cart
  add <productId> <quantity>       set a line item's quantity
  remove <productId>               remove a line item
  enquire                          submit the cart as an enquiry
  order                            submit the cart as an order
  board <enquiries|orders> [query] [page]
  status <enquiries|orders> <id> <status>
`

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	m, err := storefront.NewModule(cfg.Client, nil, zapLogger)
	if err != nil {
		zapLogger.Fatal("starting storefront", zap.Error(err))
	}

	timeout := 2 * cfg.Client.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	runErr := run(ctx, m, flag.Args())
	if err := m.Flush(ctx); err != nil {
		zapLogger.Warn("cart sync did not finish", zap.Error(err))
	}
	m.Close()

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}

func run(ctx context.Context, m *storefront.Module, args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "signin":
		if len(args) != 3 {
			return fmt.Errorf("signin needs <userId> <role> <token>")
		}
		role, err := domain.ParseRole(args[1])
		if err != nil {
			return err
		}
		return m.SignIn(ctx, domain.Identity{UserID: args[0], Role: role, AuthToken: args[2]})

	case "signout":
		return m.SignOut(ctx)

	case "products":
		category, search := arg(args, 0), arg(args, 1)
		products, err := m.API.ListProducts(ctx, category, search)
		if err != nil {
			return err
		}
		return printJSON(products)

	case "cart":
		return printJSON(struct {
			domain.CartState
			Total int `json:"totalQuantity"`
		}{m.Cart.State(), m.Cart.TotalQuantity()})

	case "add":
		if len(args) != 2 {
			return fmt.Errorf("add needs <productId> <quantity>")
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		return m.AddProduct(ctx, args[0], qty)

	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("remove needs <productId>")
		}
		return m.Cart.RemoveLineItem(args[0])

	case "enquire", "order":
		checkout := m.Enquiry
		if cmd == "order" {
			checkout = m.Order
		}
		record, err := checkout.Submit(ctx)
		if err != nil {
			return err
		}
		return printJSON(record)

	case "board":
		board, err := pickBoard(m, arg(args, 0))
		if err != nil {
			return err
		}
		decision, err := board.Load(ctx)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return fmt.Errorf("not allowed, redirect to %s", decision.RedirectTo)
		}
		page, _ := strconv.Atoi(arg(args, 2))
		return printJSON(board.Page(arg(args, 1), page))

	case "status":
		if len(args) != 3 {
			return fmt.Errorf("status needs <enquiries|orders> <id> <status>")
		}
		board, err := pickBoard(m, args[0])
		if err != nil {
			return err
		}
		record, err := board.SetStatus(ctx, args[1], domain.Status(args[2]))
		if err != nil {
			return err
		}
		return printJSON(record)
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func pickBoard(m *storefront.Module, name string) (*views.Board, error) {
	switch name {
	case "enquiries":
		return m.Enquiries, nil
	case "orders":
		return m.Orders, nil
	}
	return nil, fmt.Errorf("board must be enquiries or orders, got %q", name)
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
