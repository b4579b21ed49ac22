package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ovenbird/bakehouse/internal/client"
	"github.com/ovenbird/bakehouse/internal/client/session"
	"github.com/ovenbird/bakehouse/internal/config"
	"github.com/ovenbird/bakehouse/internal/console"
	"github.com/ovenbird/bakehouse/internal/logging"
	"github.com/ovenbird/bakehouse/internal/util"
)

const usage = `usage: console <command> [flags]

commands:
  login          authenticate and store the session
  logout         clear the stored session
  orders         list orders (paginated)
  order-status   change one order's status
  watch          follow the order board live
  export-orders  write all orders as CSV
  inquiries      list, search or act on inquiries
  attach         upload files to an inquiry
  reviews        list and moderate reviews
`

type env struct {
	cfg     *config.Config
	session *session.Manager
	api     *client.Client
}

func newEnv() (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	sess, err := session.Open(cfg.CONSOLE_STATE)
	if err != nil {
		return nil, fmt.Errorf("open session state: %w", err)
	}
	return &env{
		cfg:     cfg,
		session: sess,
		api:     client.New(cfg.API_URL, sess),
	}, nil
}

func (e *env) close() {
	if err := e.session.Close(); err != nil {
		log.Printf("closing session state: %v", err)
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	e, err := newEnv()
	if err != nil {
		log.Fatal(err)
	}
	defer e.close()

	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		err = cmdLogin(ctx, e, os.Args[2:])
	case "logout":
		err = cmdLogout(e)
	case "orders":
		err = cmdOrders(ctx, e, os.Args[2:])
	case "order-status":
		err = cmdOrderStatus(ctx, e, os.Args[2:])
	case "watch":
		err = cmdWatch(ctx, e)
	case "export-orders":
		err = cmdExportOrders(ctx, e, os.Args[2:])
	case "inquiries":
		err = cmdInquiries(ctx, e, os.Args[2:])
	case "attach":
		err = cmdAttach(ctx, e, os.Args[2:])
	case "reviews":
		err = cmdReviews(ctx, e, os.Args[2:])
	default:
		fmt.Print(usage)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func cmdLogin(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "admin username")
	password := fs.String("password", "", "admin password (prompted if omitted)")
	fs.Parse(args)

	if *username == "" {
		fs.PrintDefaults()
		return fmt.Errorf("username is required")
	}
	if *password == "" {
		fmt.Print("password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	res, err := client.NewAuthService(e.api).Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	if err := e.session.SetCredentials(res.Token, res.Username); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", res.Username)
	return nil
}

func cmdLogout(e *env) error {
	if err := e.session.Clear(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func cmdOrders(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 10, "page size")
	fs.Parse(args)

	pageResp, err := client.NewOrdersService(e.api).ListPaginated(ctx, *page, *size)
	if err != nil {
		return err
	}
	for _, o := range pageResp.Orders {
		fmt.Printf("#%d\t%-10s\t%s\t%.2f\n", o.ID, o.Status, o.CustomerName, o.Total)
	}
	fmt.Println(pageLabel(pageResp.Meta))
	return nil
}

func cmdOrderStatus(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("order-status", flag.ExitOnError)
	id := fs.Uint("id", 0, "order id")
	status := fs.String("status", "", "new status")
	fs.Parse(args)

	if *id == 0 || *status == "" {
		fs.PrintDefaults()
		return fmt.Errorf("id and status are required")
	}

	order, err := client.NewOrdersService(e.api).UpdateStatus(ctx, *id, *status)
	if err != nil {
		return err
	}
	fmt.Printf("order #%d is now %s\n", order.ID, order.Status)
	return nil
}

func cmdWatch(ctx context.Context, e *env) error {
	cfg := e.cfg
	logger := logging.New(cfg.LOG_LEVEL)

	board := console.NewBoard(client.NewOrdersService(e.api), logger)
	if err := board.Refresh(ctx); err != nil {
		return err
	}
	printBoard(board)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	board.StartPolling(ctx)
	defer board.StopPolling()

	<-ctx.Done()
	printBoard(board)
	return nil
}

func printBoard(board *console.Board) {
	for _, o := range board.Orders() {
		fmt.Printf("#%d\t%-10s\t%s\t%.2f\n", o.ID, o.Status, o.CustomerName, o.Total)
	}
}

func cmdExportOrders(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("export-orders", flag.ExitOnError)
	out := fs.String("out", "orders.csv", "output file")
	fs.Parse(args)

	orders, err := client.NewOrdersService(e.api).List(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := console.WriteOrdersCSV(f, orders); err != nil {
		return err
	}
	fmt.Printf("wrote %d orders to %s\n", len(orders), *out)
	return nil
}

func cmdInquiries(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("inquiries", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 10, "page size")
	query := fs.String("q", "", "search instead of listing")
	reply := fs.String("reply", "", "reply text (with -id)")
	id := fs.Uint("id", 0, "inquiry id for reply/resolve/reopen")
	resolve := fs.Bool("resolve", false, "mark the inquiry resolved")
	reopen := fs.Bool("reopen", false, "reopen the inquiry")
	fs.Parse(args)

	svc := client.NewInquiriesService(e.api)

	switch {
	case *reply != "":
		if *id == 0 {
			return fmt.Errorf("reply needs -id")
		}
		inq, err := svc.Reply(ctx, *id, *reply)
		if err != nil {
			return err
		}
		fmt.Printf("replied to inquiry #%d (%s)\n", inq.ID, inq.Status)
		return nil
	case *resolve:
		if *id == 0 {
			return fmt.Errorf("resolve needs -id")
		}
		inq, err := svc.Resolve(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("inquiry #%d is now %s\n", inq.ID, inq.Status)
		return nil
	case *reopen:
		if *id == 0 {
			return fmt.Errorf("reopen needs -id")
		}
		inq, err := svc.Reopen(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("inquiry #%d is now %s\n", inq.ID, inq.Status)
		return nil
	case *query != "":
		inquiries, err := svc.Search(ctx, *query)
		if err != nil {
			return err
		}
		for _, inq := range inquiries {
			fmt.Printf("#%d\t%-10s\t%s\t%s\n", inq.ID, inq.Status, inq.Name, inq.Subject)
		}
		return nil
	default:
		pageResp, err := svc.ListPaginated(ctx, *page, *size)
		if err != nil {
			return err
		}
		for _, inq := range pageResp.Inquiries {
			fmt.Printf("#%d\t%-10s\t%s\t%s\n", inq.ID, inq.Status, inq.Name, inq.Subject)
		}
		fmt.Println(pageLabel(pageResp.Meta))
		return nil
	}
}

func cmdAttach(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("attach", flag.ExitOnError)
	id := fs.Uint("id", 0, "inquiry id")
	fs.Parse(args)

	if *id == 0 || fs.NArg() == 0 {
		fs.PrintDefaults()
		return fmt.Errorf("attach needs -id and at least one file")
	}

	cfg := e.cfg
	allowed := map[string]bool{
		"image/jpeg":      true,
		"image/png":       true,
		"image/gif":       true,
		"application/pdf": true,
	}
	uploader := console.NewUploader(
		client.NewAttachmentsService(e.api),
		cfg.UPLOAD_MAX_BYTES, cfg.UPLOAD_MAX_FILES, allowed,
	)

	var files []console.FileUpload
	var handles []*os.File
	defer func() {
		for _, h := range handles {
			h.Close()
		}
	}()
	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		handles = append(handles, f)
		info, err := f.Stat()
		if err != nil {
			return err
		}
		files = append(files, console.FileUpload{
			Name:        filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Size:        info.Size(),
			Reader:      f,
		})
	}

	results, err := uploader.UploadBatch(ctx, *id, files)
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("FAILED\t%s\t%v\n", res.Name, res.Err)
			continue
		}
		fmt.Printf("ok\t%s\t%s\n", res.Name, res.Attachment.DownloadURL)
	}
	return nil
}

func cmdReviews(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("reviews", flag.ExitOnError)
	status := fs.String("status", "", "filter by status (pending/approved/rejected)")
	id := fs.Uint("id", 0, "review id for approve/reject/reset")
	approve := fs.Bool("approve", false, "approve the review")
	reject := fs.Bool("reject", false, "reject the review")
	reset := fs.Bool("reset", false, "send the review back to pending")
	stats := fs.Bool("stats", false, "show moderation counts")
	fs.Parse(args)

	svc := client.NewReviewsService(e.api)
	mod := console.NewModerator(svc)

	switch {
	case *approve, *reject, *reset:
		if *id == 0 {
			return fmt.Errorf("moderation needs -id")
		}
		var rev *client.Review
		var err error
		switch {
		case *approve:
			rev, err = mod.Approve(ctx, *id)
		case *reject:
			rev, err = mod.Reject(ctx, *id)
		default:
			rev, err = mod.Reset(ctx, *id)
		}
		if err != nil {
			return err
		}
		fmt.Printf("review #%d is now %s\n", rev.ID, rev.Status)
		return nil
	case *stats:
		counts, err := mod.Counts(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("pending: %d\napproved: %d\nrejected: %d\n",
			counts.Pending, counts.Approved, counts.Rejected)
		return nil
	default:
		reviews, err := svc.AdminList(ctx, *status)
		if err != nil {
			return err
		}
		for _, rev := range reviews {
			fmt.Printf("#%d\tproduct %d\t%d/5\t%-9s\t%s\n",
				rev.ID, rev.ProductID, rev.Rating, rev.Status, rev.Name)
		}
		return nil
	}
}

func pageLabel(meta client.PageMeta) string {
	return util.RangeLabel(meta.Page, meta.Size, int(meta.Total))
}
