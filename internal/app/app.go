package app

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/auth"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/channel"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/chat"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/config"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/db"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/items"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/ledger"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/notify"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/storage"
)

/* ------------------------------------------------------------------
   App struct — runtime container
-------------------------------------------------------------------*/

type App struct {
	cfg config.Config
	db  *sqlx.DB
	rdb *redis.Client

	users    storage.UserStore
	items    items.Store
	ledger   ledger.Ledger
	channels channel.Store

	hub      *notify.Hub
	notifier notify.Notifier

	authSvc *auth.Service
	coord   *chat.Coordinator
	gate    *chat.Gate

	stopBridge context.CancelFunc
}

// New wires the production app: Postgres stores, the websocket hub, and —
// when configured — the redis event bridge and the decision mailer.
func New(cfg config.Config) (*App, error) {
	dsn := db.DSN(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.DBName, cfg.DB.SSLMode)
	conn, err := db.Connect(dsn)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(conn); err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		db:       conn,
		users:    storage.NewPostgresUserStore(conn),
		items:    items.NewPostgresStore(conn),
		ledger:   ledger.NewPostgresLedger(conn),
		channels: channel.NewPostgresStore(conn),
		hub:      notify.NewHub(),
	}

	// Events go either straight to the local hub or, with redis configured,
	// through pub/sub so every instance's hub sees them.
	var realtime notify.Notifier = a.hub
	if cfg.RedisEnabled() {
		a.rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		bridge := notify.NewRedisBridge(a.rdb, a.hub)
		ctx, cancel := context.WithCancel(context.Background())
		a.stopBridge = cancel
		go bridge.Run(ctx)
		realtime = bridge
		log.Printf("event fan-out via redis at %s", cfg.RedisAddr)
	}

	fan := notify.Fanout{realtime}
	if cfg.MailEnabled() {
		fan = append(fan, notify.NewEmailNotifier(
			cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password,
			cfg.SMTP.From, a.users))
	}
	a.notifier = fan

	a.wireServices()
	return a, nil
}

// NewWithStores builds an app on caller-supplied stores; handler tests use
// it with the memory implementations.
func NewWithStores(cfg config.Config, users storage.UserStore, is items.Store,
	l ledger.Ledger, cs channel.Store, n notify.Notifier) *App {
	a := &App{
		cfg:      cfg,
		users:    users,
		items:    is,
		ledger:   l,
		channels: cs,
		hub:      notify.NewHub(),
		notifier: n,
	}
	if a.notifier == nil {
		a.notifier = a.hub
	}
	a.wireServices()
	return a
}

func (a *App) wireServices() {
	a.authSvc = auth.NewService(a.cfg.JWTSecret)
	a.coord = chat.NewCoordinator(a.items, a.ledger, a.channels, a.notifier)
	a.gate = chat.NewGate(a.items, a.ledger)
}

func (a *App) Close() error {
	if a.stopBridge != nil {
		a.stopBridge()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

/* ------------------------------------------------------------------
   Getters used by the api layer
-------------------------------------------------------------------*/

func (a *App) Config() config.Config          { return a.cfg }
func (a *App) Users() storage.UserStore       { return a.users }
func (a *App) Items() items.Store             { return a.items }
func (a *App) Channels() channel.Store        { return a.channels }
func (a *App) Hub() *notify.Hub               { return a.hub }
func (a *App) Notifier() notify.Notifier      { return a.notifier }
func (a *App) Auth() *auth.Service            { return a.authSvc }
func (a *App) Coordinator() *chat.Coordinator { return a.coord }
func (a *App) Gate() *chat.Gate               { return a.gate }
