package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tbapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/jessevdk/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/tg-guard/app/bot"
	"github.com/umputun/tg-guard/app/events"
	"github.com/umputun/tg-guard/app/storage"
	"github.com/umputun/tg-guard/app/storage/engine"
	"github.com/umputun/tg-guard/app/webapi"
	"github.com/umputun/tg-guard/lib/spamscore"
)

type options struct {
	Telegram struct {
		Token   string        `long:"token" env:"TOKEN" description:"telegram bot token" required:"true"`
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"http client timeout for telegram"`
	} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`

	DB          string        `long:"db" env:"DB" default:"tg-guard.db" description:"database, sqlite file or postgres:// url"`
	RulesFile   string        `long:"rules" env:"RULES" default:"data/rules.json" description:"scoring rules file, watched for changes"`
	ReplyWindow time.Duration `long:"reply-window" env:"REPLY_WINDOW" default:"5m" description:"max age of a welcome message to still evaluate replies"`

	Bio struct {
		TTL     time.Duration `long:"ttl" env:"TTL" default:"10m" description:"how long to cache resolved profile bios"`
		MaxKeys int           `long:"max-keys" env:"MAX_KEYS" default:"1000" description:"max cached bios"`
	} `group:"bio" namespace:"bio" env-namespace:"BIO"`

	Logger struct {
		Enabled    bool   `long:"enabled" env:"ENABLED" description:"enable rotated deletion reports log"`
		FileName   string `long:"file" env:"FILE" default:"tg-guard.log" description:"location of deletion reports log"`
		MaxSize    string `long:"max-size" env:"MAX_SIZE" default:"100M" description:"maximum size before it gets rotated"`
		MaxBackups int    `long:"max-backups" env:"MAX_BACKUPS" default:"10" description:"maximum number of old log files to retain"`
	} `group:"logger" namespace:"logger" env-namespace:"LOGGER"`

	Server struct {
		Enabled    bool   `long:"enabled" env:"ENABLED" description:"enable web API"`
		ListenAddr string `long:"listen" env:"LISTEN" default:":8080" description:"web API listen address"`
		AuthPasswd string `long:"auth" env:"AUTH" description:"basic auth password for the web API, disabled if empty"`
	} `group:"server" namespace:"server" env-namespace:"SERVER"`

	Message struct {
		Start  string `long:"start" env:"START" default:"I watch replies to welcome messages and remove the spammy ones" description:"reply to /start in private chats"`
		Joined string `long:"joined" env:"JOINED" default:"" description:"greeting sent when the bot is added to a group"`
	} `group:"message" namespace:"message" env-namespace:"MESSAGE"`

	CleanupDelay time.Duration `long:"cleanup-delay" env:"CLEANUP_DELAY" default:"10s" description:"delay before command replies are removed"`

	Dry   bool `long:"dry" env:"DRY" description:"dry mode, no deletions"`
	Dbg   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	TGDbg bool `long:"tg-dbg" env:"TG_DEBUG" description:"telegram debug mode"`
}

var revision = "local"

func main() {
	fmt.Printf("tg-guard %s\n", revision)
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	p.SubcommandsOptional = true
	if _, err := p.Parse(); err != nil {
		if err.(*flags.Error).Type != flags.ErrHelp {
			log.Printf("[ERROR] cli error: %v", err)
		}
		os.Exit(2)
	}

	setupLog(opts.Dbg, opts.Telegram.Token, opts.Server.AuthPasswd)
	log.Printf("[DEBUG] options: %+v", opts)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		// catch signal and invoke graceful termination
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Printf("[WARN] interrupt signal")
		cancel()
	}()

	if err := execute(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, opts options) error {
	if opts.Dry {
		log.Print("[WARN] dry mode, no actual deletions")
	}

	// make telegram bot, with retries to survive transient api failures on startup
	var tbAPI *tbapi.BotAPI
	err := repeater.NewDefault(5, time.Second).Do(ctx, func() error {
		var e error
		tbAPI, e = tbapi.NewBotAPI(opts.Telegram.Token)
		return e
	})
	if err != nil {
		return fmt.Errorf("can't make telegram bot, %w", err)
	}
	tbAPI.Debug = opts.TGDbg
	tbAPI.Client = &http.Client{Timeout: opts.Telegram.Timeout}
	log.Printf("[INFO] telegram bot authorized as %q", tbAPI.Self.UserName)

	// make policy store
	db, err := makeDB(ctx, opts.DB)
	if err != nil {
		return fmt.Errorf("can't make db: %w", err)
	}
	defer db.Close()
	chats, err := storage.NewChats(ctx, db)
	if err != nil {
		return fmt.Errorf("can't make chats store: %w", err)
	}

	// make scorer with rules from the file, falling back to builtin defaults
	scorer := makeScorer(opts.RulesFile)

	// make guard with a cached bio resolver
	profiles := events.NewProfiles(tbAPI, opts.Bio.TTL, opts.Bio.MaxKeys)
	guard := bot.NewWelcomeGuard(ctx, scorer, chats, profiles,
		bot.GuardParams{ReplyWindow: opts.ReplyWindow, RulesFile: opts.RulesFile})

	// make deletion reports logger
	loggerWr, err := makeDeletionLogWriter(opts)
	if err != nil {
		return fmt.Errorf("can't make deletion log writer, %w", err)
	}
	defer loggerWr.Close()

	// run web API if enabled
	if opts.Server.Enabled {
		srv := webapi.NewServer(webapi.Config{
			ListenAddr: opts.Server.ListenAddr,
			Version:    revision,
			AuthPasswd: opts.Server.AuthPasswd,
			Policy:     chats,
			Dbg:        opts.Dbg,
		})
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Printf("[ERROR] web API failed: %v", err)
			}
		}()
	}

	// make telegram listener and run the event loop
	tgListener := events.TelegramListener{
		TbAPI:        tbAPI,
		Guard:        guard,
		Policy:       chats,
		DeletionLog:  makeDeletionLogger(loggerWr),
		StartMsg:     opts.Message.Start,
		JoinedMsg:    opts.Message.Joined,
		CleanupDelay: opts.CleanupDelay,
		Dry:          opts.Dry,
	}
	if err := tgListener.Do(ctx); err != nil {
		return fmt.Errorf("telegram listener failed, %w", err)
	}
	return nil
}

// makeDB connects to postgres if the url says so, otherwise treats the value
// as a sqlite file path
func makeDB(ctx context.Context, db string) (*engine.SQL, error) {
	if strings.HasPrefix(db, "postgres://") {
		return engine.NewPostgres(ctx, db)
	}
	return engine.NewSqlite(db)
}

// makeScorer loads scoring rules from the file, falls back to builtin
// defaults when the file is missing or broken
func makeScorer(rulesFile string) *spamscore.Scorer {
	rules, err := spamscore.LoadRulesFile(rulesFile)
	if err != nil {
		log.Printf("[WARN] can't load rules from %s, using defaults: %v", rulesFile, err)
		rules = spamscore.DefaultRules()
	}
	log.Printf("[INFO] scoring rules v%d, %d keywords", rules.Version, len(rules.Keywords))
	return spamscore.NewScorer(rules)
}

// makeDeletionLogger creates deletion logger to keep reports about removed
// messages, it writes json lines to the provided writer
func makeDeletionLogger(wr io.Writer) events.DeletionLogger {
	return events.DeletionLoggerFunc(func(msg *bot.Message, decision *bot.Decision) {
		text := strings.ReplaceAll(msg.Text, "\n", " ")
		text = strings.TrimSpace(text)
		m := struct {
			TimeStamp   string `json:"ts"`
			DisplayName string `json:"display_name"`
			UserName    string `json:"user_name"`
			UserID      int64  `json:"user_id"`
			ChatID      int64  `json:"chat_id"`
			Text        string `json:"text"`
			Percent     int    `json:"percent"`
			Strictness  int    `json:"strictness"`
			Checks      string `json:"checks"`
		}{
			TimeStamp:   time.Now().In(time.Local).Format(time.RFC3339),
			DisplayName: msg.From.DisplayName,
			UserName:    msg.From.Username,
			UserID:      msg.From.ID,
			ChatID:      msg.ChatID,
			Text:        text,
			Percent:     decision.Percent,
			Strictness:  decision.Strictness,
			Checks:      spamscore.ChecksToString(decision.Checks),
		}
		line, err := json.Marshal(&m)
		if err != nil {
			log.Printf("[WARN] can't marshal json, %v", err)
			return
		}
		if _, err := wr.Write(append(line, '\n')); err != nil {
			log.Printf("[WARN] can't write to log, %v", err)
		}
	})
}

// makeDeletionLogWriter creates deletion log writer to keep reports about
// removed messages, it parses options and makes lumberjack logger with rotation
func makeDeletionLogWriter(opts options) (accessLog io.WriteCloser, err error) {
	if !opts.Logger.Enabled {
		return nopWriteCloser{io.Discard}, nil
	}

	maxSize, perr := sizeParse(opts.Logger.MaxSize)
	if perr != nil {
		return nil, fmt.Errorf("can't parse logger MaxSize: %w", perr)
	}
	maxSize /= 1048576

	log.Printf("[INFO] deletion log enabled for %s, max size %dM", opts.Logger.FileName, maxSize)
	return &lumberjack.Logger{
		Filename:   opts.Logger.FileName,
		MaxSize:    int(maxSize), // in MB
		MaxBackups: opts.Logger.MaxBackups,
		Compress:   true,
		LocalTime:  true,
	}, nil
}

// sizeParse converts size strings like "10M" or "1G" to bytes
func sizeParse(inp string) (uint64, error) {
	if inp == "" {
		return 0, errors.New("empty value")
	}
	for i, sfx := range []string{"k", "m", "g", "t"} {
		if strings.HasSuffix(inp, strings.ToUpper(sfx)) || strings.HasSuffix(inp, strings.ToLower(sfx)) {
			val, err := strconv.Atoi(inp[:len(inp)-1])
			if err != nil {
				return 0, fmt.Errorf("can't parse %s: %w", inp, err)
			}
			return uint64(float64(val) * math.Pow(float64(1024), float64(i+1))), nil
		}
	}
	return strconv.ParseUint(inp, 10, 64)
}

type nopWriteCloser struct{ io.Writer }

func (n nopWriteCloser) Close() error { return nil }

func setupLog(dbg bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	nonEmpty := []string{}
	for _, s := range secrets {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
