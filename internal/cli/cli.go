// Package cli implements the order-entry command tree on top of the order
// service.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-faster/errors"

	"github.com/xenking/order-entry/internal/domain/customer"
	"github.com/xenking/order-entry/internal/domain/order"
	"github.com/xenking/order-entry/internal/domain/product"
	"github.com/xenking/order-entry/internal/money"
)

// ErrUsage is returned for unknown commands or missing arguments.
var ErrUsage = errors.New("invalid command")

const usage = `usage:
  customers list
  customers search <query>
  customers add <name> [email] [phone] [address]
  customers update <id> <name> [email] [phone] [address]
  customers delete <id>
  products list
  products add <name> <unit price>
  products update <id> <name> <unit price>
  products delete <id>
  orders list
  orders show <id>
  orders create <customer id> <product id>:<quantity>...
  orders add-line <id> <product id>:<quantity>...
  orders remove-line <id> <line number>
  orders delete <id>`

// Service is the subset of the order service the commands use.
type Service interface {
	Customers() []customer.Customer
	CustomerByID(id int64) (customer.Customer, error)
	SearchCustomers(query string) []customer.Customer
	SaveCustomer(ctx context.Context, c customer.Customer) (customer.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	Products() []product.Product
	ProductByID(id int64) (product.Product, error)
	SaveProduct(ctx context.Context, p product.Product) (product.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	Orders() []order.Order
	OrderByID(id int64) (order.Order, error)
	CreateOrder(customerID int64) (order.Order, error)
	AddLine(o order.Order, productID int64, quantity int) (order.Order, error)
	RemoveLine(o order.Order, index int) (order.Order, error)
	SaveOrder(ctx context.Context, o order.Order) (order.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

var _ Service = (*order.Service)(nil)

// Runner executes commands against a service and writes results to Out.
type Runner struct {
	Service Service
	Out     io.Writer
}

// Execute runs the command named by args.
func (r *Runner) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	group, cmd, rest := args[0], args[1], args[2:]

	switch group {
	case "customers":
		return r.customers(ctx, cmd, rest)
	case "products":
		return r.products(ctx, cmd, rest)
	case "orders":
		return r.orders(ctx, cmd, rest)
	default:
		return usageError()
	}
}

func (r *Runner) customers(ctx context.Context, cmd string, args []string) error {
	switch {
	case cmd == "list" && len(args) == 0:
		return r.printCustomers(r.Service.Customers())
	case cmd == "search" && len(args) <= 1:
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return r.printCustomers(r.Service.SearchCustomers(query))
	case cmd == "add" && len(args) >= 1 && len(args) <= 4:
		return r.saveCustomer(ctx, customer.Customer{}, args)
	case cmd == "update" && len(args) >= 2 && len(args) <= 5:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := r.Service.CustomerByID(id)
		if err != nil {
			return err
		}
		return r.saveCustomer(ctx, c, args[1:])
	case cmd == "delete" && len(args) == 1:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := r.Service.DeleteCustomer(ctx, id); err != nil {
			return err
		}
		_, err = fmt.Fprintf(r.Out, "Customer %d deleted\n", id)
		return err
	default:
		return usageError()
	}
}

func (r *Runner) products(ctx context.Context, cmd string, args []string) error {
	switch {
	case cmd == "list" && len(args) == 0:
		tw := tabwriter.NewWriter(r.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tUNIT PRICE")
		for _, p := range r.Service.Products() {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, p.UnitPrice)
		}
		return tw.Flush()
	case cmd == "add" && len(args) == 2:
		return r.saveProduct(ctx, product.Product{}, args)
	case cmd == "update" && len(args) == 3:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		p, err := r.Service.ProductByID(id)
		if err != nil {
			return err
		}
		return r.saveProduct(ctx, p, args[1:])
	case cmd == "delete" && len(args) == 1:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := r.Service.DeleteProduct(ctx, id); err != nil {
			return err
		}
		_, err = fmt.Fprintf(r.Out, "Product %d deleted\n", id)
		return err
	default:
		return usageError()
	}
}

func (r *Runner) orders(ctx context.Context, cmd string, args []string) error {
	switch {
	case cmd == "list" && len(args) == 0:
		tw := tabwriter.NewWriter(r.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCUSTOMER\tLINES\tTOTAL")
		for _, o := range r.Service.Orders() {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", o.ID, o.CustomerName, len(o.Lines), o.Total)
		}
		return tw.Flush()
	case cmd == "show" && len(args) == 1:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		o, err := r.Service.OrderByID(id)
		if err != nil {
			return err
		}
		return r.printOrder(o)
	case cmd == "create" && len(args) >= 1:
		return r.createOrder(ctx, args)
	case cmd == "add-line" && len(args) >= 2:
		o, err := r.orderByArg(args[0])
		if err != nil {
			return err
		}
		if o, err = r.addLines(o, args[1:]); err != nil {
			return err
		}
		return r.saveOrder(ctx, o)
	case cmd == "remove-line" && len(args) == 2:
		o, err := r.orderByArg(args[0])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Errorf("invalid line number %q", args[1])
		}
		if o, err = r.Service.RemoveLine(o, n-1); err != nil {
			return err
		}
		return r.saveOrder(ctx, o)
	case cmd == "delete" && len(args) == 1:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := r.Service.DeleteOrder(ctx, id); err != nil {
			return err
		}
		_, err = fmt.Fprintf(r.Out, "Order %d deleted\n", id)
		return err
	default:
		return usageError()
	}
}

func (r *Runner) createOrder(ctx context.Context, args []string) error {
	customerID, err := parseID(args[0])
	if err != nil {
		return err
	}
	o, err := r.Service.CreateOrder(customerID)
	if err != nil {
		return err
	}
	if o, err = r.addLines(o, args[1:]); err != nil {
		return err
	}
	return r.saveOrder(ctx, o)
}

func (r *Runner) orderByArg(arg string) (order.Order, error) {
	id, err := parseID(arg)
	if err != nil {
		return order.Order{}, err
	}
	return r.Service.OrderByID(id)
}

// addLines appends one line per "<product id>:<quantity>" argument.
func (r *Runner) addLines(o order.Order, args []string) (order.Order, error) {
	for _, arg := range args {
		productID, quantity, err := parseLine(arg)
		if err != nil {
			return order.Order{}, err
		}
		if o, err = r.Service.AddLine(o, productID, quantity); err != nil {
			return order.Order{}, err
		}
	}
	return o, nil
}

func (r *Runner) saveOrder(ctx context.Context, o order.Order) error {
	saved, err := r.Service.SaveOrder(ctx, o)
	if err != nil {
		return err
	}
	return r.printOrder(saved)
}

// saveCustomer sets name and, when given, email, phone and address on c.
func (r *Runner) saveCustomer(ctx context.Context, c customer.Customer, args []string) error {
	c.Name = args[0]
	fields := []*string{&c.Email, &c.Phone, &c.Address}
	for i, v := range args[1:] {
		*fields[i] = v
	}
	saved, err := r.Service.SaveCustomer(ctx, c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.Out, "Customer %d saved\n", saved.ID)
	return err
}

func (r *Runner) saveProduct(ctx context.Context, p product.Product, args []string) error {
	price, err := money.FromString(args[1])
	if err != nil {
		return err
	}
	p.Name = args[0]
	p.UnitPrice = price
	saved, err := r.Service.SaveProduct(ctx, p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.Out, "Product %d saved\n", saved.ID)
	return err
}

func (r *Runner) printCustomers(list []customer.Customer) error {
	tw := tabwriter.NewWriter(r.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tADDRESS")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone, c.Address)
	}
	return tw.Flush()
}

func (r *Runner) printOrder(o order.Order) error {
	tw := tabwriter.NewWriter(r.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Order %d for %s (customer %s)\n", o.ID, o.CustomerName, formatRef(o.CustomerID))
	if o.OrderDate != nil {
		fmt.Fprintf(tw, "Date:\t%s\n", o.OrderDate.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(tw, "LINE\tPRODUCT\tQTY\tUNIT PRICE\tTOTAL")
	for _, l := range o.Lines {
		price := "-"
		if l.UnitPrice != nil {
			price = l.UnitPrice.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", l.ID, l.ProductName, l.Quantity, price, l.Total().Round2())
	}
	fmt.Fprintf(tw, "Subtotal:\t%s\n", o.Subtotal)
	fmt.Fprintf(tw, "Discount:\t%s\n", o.Discount)
	fmt.Fprintf(tw, "Tax:\t%s\n", o.Tax)
	fmt.Fprintf(tw, "Total:\t%s\n", o.Total)
	return tw.Flush()
}

func formatRef(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseLine parses "<product id>:<quantity>". The quantity defaults to 1.
func parseLine(s string) (int64, int, error) {
	idPart, qtyPart, hasQty := strings.Cut(s, ":")
	productID, err := parseID(idPart)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "line %q", s)
	}
	if !hasQty {
		return productID, 1, nil
	}
	qty, err := strconv.Atoi(qtyPart)
	if err != nil {
		return 0, 0, errors.Errorf("line %q: invalid quantity %q", s, qtyPart)
	}
	return productID, qty, nil
}

func usageError() error {
	return errors.Errorf("%s: %w", usage, ErrUsage)
}
