package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hospitalapp/client-go/internal/api"
	"github.com/hospitalapp/client-go/internal/config"
	"github.com/hospitalapp/client-go/internal/cryptox"
	"github.com/hospitalapp/client-go/internal/logging"
	"github.com/hospitalapp/client-go/internal/metrics"
	"github.com/hospitalapp/client-go/internal/repositories/credentials"
	"github.com/hospitalapp/client-go/internal/services"
	"github.com/hospitalapp/client-go/internal/session"

	_ "modernc.org/sqlite"
)

// App wires the configuration, the session store, the request executor and
// the domain services behind the interactive shell.
type App struct {
	config *config.Config
	log    logging.Logger
	store  *session.Store

	users        *services.UserService
	posts        *services.PostService
	comments     *services.CommentService
	reservations *services.ReservationService
	hospitals    *services.HospitalService
	chat         *services.ChatService

	reader *bufio.Reader
	out    io.Writer
	db     *sql.DB
}

// NewApp builds the full client: local credentials database, session store,
// HTTP executor and the services on top of it.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewConsoleLogger(os.Stderr, c.Verbose)

	creds, db, err := credentials.InitDatabase(ctx, c.CredentialsDB)
	if err != nil {
		return nil, fmt.Errorf("init credentials database: %w", err)
	}

	store := session.New(creds, log)
	collector := metrics.NewCollector(prometheus.NewRegistry())

	opts := []api.Option{
		api.WithTimeouts(c.RequestTimeout, c.RequestTimeout),
		api.WithLogger(log),
		api.WithMetrics(collector),
	}
	if c.UseEncryption {
		opts = append(opts, api.WithEncryptedPosts())
	}
	client := api.NewHTTPClient(c.BaseURL, store, cryptox.NewAESCodec(), opts...)

	return &App{
		config:       c,
		log:          log,
		store:        store,
		users:        services.NewUserService(client, store, creds, log),
		posts:        services.NewPostService(client, log),
		comments:     services.NewCommentService(client, log),
		reservations: services.NewReservationService(client, log),
		hospitals:    services.NewHospitalService(client, log),
		chat:         services.NewChatService(client, log),
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		db:           db,
	}, nil
}

// Run starts the shell and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close releases the local database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.IsLoggedIn()
}

func (a *App) getStatus() string {
	if u := a.store.Current(); u != nil {
		return "(" + u.UserName + ")"
	}
	return ""
}
