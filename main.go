package main

import (
	"context"
	"errors"
	"fmt"
	"jabbot/internal/adapters/probe"
	"jabbot/internal/adapters/roomstore"
	"jabbot/internal/adapters/speed"
	"jabbot/internal/adapters/xmpp"
	"jabbot/internal/core/domain"
	"jabbot/internal/core/domain/commands"
	"jabbot/internal/core/port"
	"jabbot/internal/core/service"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config faults exit 1 through log.Fatal, transport faults exit 2.
const exitTransportFault = 2

func main() {
	log.Info().Msg("starting jabbot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("JABBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	log.Info().Msg("reading config file...")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Warn().Msg("no config file found, using defaults and environment")
		} else {
			log.Fatal().Err(err).Msg("could not read config file")
		}
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	jid := viper.GetString("xmpp.jid")
	password := viper.GetString("xmpp.password")
	if jid == "" || password == "" {
		log.Fatal().Msg("xmpp.jid and xmpp.password must be configured")
	}

	identity := domain.Identity{
		Address:        jid,
		Nickname:       viper.GetString("xmpp.nickname"),
		Server:         viper.GetString("xmpp.server"),
		TimezoneOffset: viper.GetInt("bot.timezone_offset"),
		Rooms:          viper.GetStringSlice("xmpp.rooms"),
		Templates: domain.Templates{
			Welcome:     viper.GetString("messages.welcome"),
			UserWelcome: viper.GetString("messages.user_welcome"),
			Hourly:      viper.GetString("messages.hourly"),
		},
	}

	handlerTimeout, err := time.ParseDuration(viper.GetString("bot.handler_timeout"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timeout for command handlers in config")
	}

	speedTimeout, err := time.ParseDuration(viper.GetString("bot.speed_timeout"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timeout for speed tests in config")
	}

	authorizer, err := service.NewAuthorizer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing authorizer")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	url := viper.GetString("xmpp.websocket_url")
	if url == "" {
		url = fmt.Sprintf("wss://%s:%d/ws", identity.Server, viper.GetInt("xmpp.port"))
	}

	client := xmpp.NewClient(url, jid, password, viper.GetString("xmpp.resource"))

	var store port.RoomStore
	if path := viper.GetString("bot.room_store"); path != "" {
		store = roomstore.New(path)
	}

	started := time.Now()
	tracker := service.NewRoomTracker(identity.Nickname)

	registry := &commands.Registry{}
	registry.Register(commands.NewPingHandler(probe.NewPingProber(), "ping"))
	registry.Register(commands.NewHelpHandler(identity, "help"))
	registry.Register(commands.NewTimeHandler(identity, "time"))
	registry.Register(commands.NewStatusHandler(tracker, identity, "status"))
	registry.Register(commands.NewUptimeHandler(started, "uptime"))
	registry.Register(commands.NewStatsHandler("stats"))
	registry.Register(commands.NewSpeedHandler(speed.NewTester(), speedTimeout, "speed"))

	dispatcher := service.NewDispatcher(registry, handlerTimeout)
	router := service.NewRouter(dispatcher, client, identity)

	session, err := service.NewSession(router, tracker, client, client, store, identity)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing session")
	}
	client.SetHandler(session)

	registry.Register(commands.NewJoinHandler(session, authorizer, "join"))
	registry.Register(commands.NewLeaveHandler(session, authorizer, "leave"))

	log.Info().Strs("commands", registry.ListCommands()).Msg("bot listening")

	if err := client.Run(ctx); err != nil {
		log.Error().Err(err).Msg("connection permanently lost")
		os.Exit(exitTransportFault)
	}

	log.Info().Msg("jabbot stopped")
}

func setDefaults() {
	viper.SetDefault("xmpp.server", "jabber.ru")
	viper.SetDefault("xmpp.port", 5222)
	viper.SetDefault("xmpp.nickname", "JabBot")
	viper.SetDefault("xmpp.resource", "jabbot")
	viper.SetDefault("bot.timezone_offset", 7)
	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("bot.handler_timeout", "30s")
	viper.SetDefault("bot.speed_timeout", "2m")
	viper.SetDefault("bot.room_store", "rooms.json")
	viper.SetDefault("messages.welcome", "🤖 {bot_nick} is now online! Time: {time}")
	viper.SetDefault("messages.user_welcome", "👋 Welcome {nickname}! I'm {bot_nick}, your friendly bot assistant.")
	viper.SetDefault("messages.hourly", "⏰ Time update: {time} {tz} | Date: {date} ({day})")
}
