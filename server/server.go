// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/ctxutil"
	"github.com/bvk/predictbot/feed"
	"github.com/bvk/predictbot/feesplit"
	"github.com/bvk/predictbot/gamma"
	"github.com/bvk/predictbot/httputil"
	"github.com/bvk/predictbot/store"
	"github.com/bvk/predictbot/telegram"
	"github.com/bvkgo/kv"
)

type Server struct {
	cg ctxutil.CloseGroup

	opts Options

	db    kv.Database
	store *store.Store

	feedClient  *feed.Client
	gammaClient *gamma.Client

	collector *feesplit.Collector
	executor  feesplit.Executor

	telegramClient *telegram.Client

	signingKey *ecdsa.PrivateKey
	keyName    string

	mu                     sync.Mutex
	alertFreezeDeadlineMap map[string]time.Time
}

// New creates the predictbot service backed by the given database. The
// service is not active till Start is called.
func New(secrets *Secrets, db kv.Database, opts *Options) (_ *Server, status error) {
	if opts == nil {
		opts = new(Options)
	}
	opts.setDefaults()
	if err := opts.Check(); err != nil {
		return nil, err
	}
	if secrets == nil {
		secrets = new(Secrets)
	}
	if err := secrets.Check(); err != nil {
		return nil, err
	}

	s := &Server{
		opts:                   *opts,
		db:                     db,
		store:                  store.New(db),
		gammaClient:            gamma.New(nil),
		collector:              feesplit.NewCollector(nil),
		alertFreezeDeadlineMap: make(map[string]time.Time),
	}
	s.executor = &walletExecutor{store: s.store}

	if secrets.Signing != nil {
		key, err := parseSigningKey(secrets.Signing.KeyPEM)
		if err != nil {
			return nil, fmt.Errorf("could not parse the signing key: %w", err)
		}
		s.signingKey = key
		s.keyName = secrets.Signing.KeyName
	}

	if !opts.NoFeed {
		s.feedClient = feed.New(nil)
	}

	if secrets.Telegram != nil {
		tclient, err := telegram.New(context.Background(), db, secrets.Telegram)
		if err != nil {
			return nil, fmt.Errorf("could not create telegram client: %w", err)
		}
		s.telegramClient = tclient
	}
	return s, nil
}

func (s *Server) Close() error {
	s.cg.Close()
	if s.telegramClient != nil {
		s.telegramClient.Close()
	}
	if s.feedClient != nil {
		s.feedClient.Close()
	}
	return nil
}

// Start seeds the database, installs the stored fee configuration and
// starts the background services.
func (s *Server) Start(ctx context.Context) error {
	if !s.opts.NoSeed {
		if err := s.store.Seed(ctx); err != nil {
			return fmt.Errorf("could not seed the database: %w", err)
		}
	}

	fc, err := s.store.FeeConfig(ctx)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("could not load fee config: %w", err)
		}
	} else {
		s.collector.SetConfig(feeConfig(fc))
	}

	if s.feedClient != nil {
		if err := s.resubscribeMarkets(ctx); err != nil {
			return fmt.Errorf("could not resubscribe market tokens: %w", err)
		}
	}

	if err := s.addTelegramCommands(ctx); err != nil {
		return err
	}

	s.cg.Go(s.goWatchWallet)
	return nil
}

// Stop halts the background services. The http handlers stay usable.
func (s *Server) Stop(ctx context.Context) error {
	s.cg.Close()
	return nil
}

// HandlerMap returns the http handlers for all service endpoints.
func (s *Server) HandlerMap() map[string]http.Handler {
	return map[string]http.Handler{
		api.StatusPath:         httputil.PostHandler(s.doStatus),
		api.MarketListPath:     httputil.PostHandler(s.doMarketList),
		api.MarketGetPath:      httputil.PostHandler(s.doMarketGet),
		api.MarketCreatePath:   httputil.PostHandler(s.doMarketCreate),
		api.MarketDeletePath:   httputil.PostHandler(s.doMarketDelete),
		api.MarketSyncPath:     httputil.PostHandler(s.doMarketSync),
		api.PlayerListPath:     httputil.PostHandler(s.doPlayerList),
		api.PlayerCreatePath:   httputil.PostHandler(s.doPlayerCreate),
		api.PlayerUpdatePath:   httputil.PostHandler(s.doPlayerUpdate),
		api.PlayerDeletePath:   httputil.PostHandler(s.doPlayerDelete),
		api.BetPlacePath:       httputil.PostHandler(s.doBetPlace),
		api.BetListPath:        httputil.PostHandler(s.doBetList),
		api.TradePlacePath:     httputil.PostHandler(s.doTradePlace),
		api.TradeListPath:      httputil.PostHandler(s.doTradeList),
		api.WalletGetPath:      httputil.PostHandler(s.doWalletGet),
		api.WalletUpdatePath:   httputil.PostHandler(s.doWalletUpdate),
		api.WalletPointsPath:   httputil.PostHandler(s.doWalletPoints),
		api.FeeEstimatePath:    httputil.PostHandler(s.doFeeEstimate),
		api.FeeListPath:        httputil.PostHandler(s.doFeeList),
		api.FeeSetPath:         httputil.PostHandler(s.doFeeSet),
		api.SettingsGetPath:    httputil.PostHandler(s.doSettingsGet),
		api.SettingsUpdatePath: httputil.PostHandler(s.doSettingsUpdate),
		api.SignPath:           httputil.PostHandler(s.doSign),
		api.FeeConfigPath:      httputil.GetHandler(s.getFeeConfig),
		api.FeedLivePath:       http.HandlerFunc(s.serveFeedLive),
	}
}

func (s *Server) doStatus(ctx context.Context, req *api.StatusRequest) (*api.StatusResponse, error) {
	markets, err := s.store.Markets(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.store.Players(ctx)
	if err != nil {
		return nil, err
	}
	bets, err := s.store.Bets(ctx)
	if err != nil {
		return nil, err
	}
	trades, err := s.store.Trades(ctx)
	if err != nil {
		return nil, err
	}
	resp := &api.StatusResponse{
		ServerTime:  time.Now(),
		FeesEnabled: s.collector.IsEnabled(),
		NumMarkets:  len(markets),
		NumPlayers:  len(players),
		NumBets:     len(bets),
		NumTrades:   len(trades),
	}
	if s.feedClient != nil {
		resp.FeedConnected = s.feedClient.IsConnected()
	}
	return resp, nil
}

func (s *Server) SendMessage(ctx context.Context, at time.Time, format string, args ...any) {
	if s.telegramClient == nil {
		return
	}
	text := fmt.Sprintf(format, args...)
	if err := s.telegramClient.SendMessage(ctx, at, text); err != nil {
		slog.Warn("could not send telegram message (ignored)", "err", err)
	}
}

func parseSigningKey(keyPEM string) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(keyPEM))
	if block == nil {
		return nil, fmt.Errorf("could not decode pem block: %w", os.ErrInvalid)
	}
	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	return key, nil
}
