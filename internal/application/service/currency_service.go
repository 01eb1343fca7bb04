package service

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
	"github.com/ousmanedev/boutik/pkg/event"
)

// CurrencyService owns the process-wide default currency: a cached copy of
// the backend's default row, invalidated through the event bus whenever a
// currency-admin action runs. Money rendering must always succeed, so every
// failure path degrades to the FCFA fallback.
type CurrencyService struct {
	repo    repository.CurrencyRepository
	bus     *event.Bus
	logger  *zap.Logger
	printer *message.Printer

	mu     sync.RWMutex
	cached entity.Currency
	loaded bool
}

// NewCurrencyService wires the service and subscribes it to currency
// invalidation events.
func NewCurrencyService(repo repository.CurrencyRepository, bus *event.Bus, logger *zap.Logger) *CurrencyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CurrencyService{
		repo:    repo,
		bus:     bus,
		logger:  logger,
		printer: message.NewPrinter(language.English),
	}
	if bus != nil {
		bus.Subscribe(event.TopicCurrencyUpdated, func(string) { s.Invalidate() })
	}
	return s
}

// Default returns the installation's default currency. The first call
// fetches and caches; later calls serve the cache until an invalidation.
// On any failure it returns the cached value if one exists, or the FCFA
// fallback otherwise.
func (s *CurrencyService) Default(ctx context.Context) entity.Currency {
	s.mu.RLock()
	if s.loaded {
		c := s.cached
		s.mu.RUnlock()
		return c
	}
	s.mu.RUnlock()

	cur, err := s.repo.GetDefault(ctx)
	if err != nil || cur == nil {
		s.logger.Warn("default currency unavailable, using FCFA fallback", zap.Error(err))
		return entity.FallbackCurrency()
	}

	s.mu.Lock()
	s.cached = *cur
	s.loaded = true
	s.mu.Unlock()
	return *cur
}

// Invalidate drops the cached default so the next read re-fetches.
func (s *CurrencyService) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

// ConvertFromFCFA converts a base-currency amount into the default display
// currency. The rate is "FCFA per 1 unit of the currency", so conversion
// out of the base divides. The base currency passes through unchanged, as
// does a non-positive rate (a corrupt row must not zero out the UI).
func (s *CurrencyService) ConvertFromFCFA(ctx context.Context, amount decimal.Decimal) decimal.Decimal {
	return convertFromFCFA(amount, s.Default(ctx))
}

func convertFromFCFA(amount decimal.Decimal, cur entity.Currency) decimal.Decimal {
	if cur.IsBase() || !cur.ConversionRateToFCFA.IsPositive() {
		return amount
	}
	return amount.DivRound(cur.ConversionRateToFCFA, 6)
}

// FormatOptions controls Format.
type FormatOptions struct {
	MinFractionDigits int
	MaxFractionDigits int
	// HideSymbol suppresses the currency symbol/code prefix.
	HideSymbol bool
}

// Format converts amount into the default currency and renders it with
// locale-aware digit grouping, prefixed by the currency symbol (or code
// when the currency has no symbol) unless suppressed.
func (s *CurrencyService) Format(ctx context.Context, amount decimal.Decimal, opts FormatOptions) string {
	cur := s.Default(ctx)
	converted := convertFromFCFA(amount, cur)

	formatted := s.groupDigits(converted, opts.MinFractionDigits, opts.MaxFractionDigits)
	if opts.HideSymbol {
		return formatted
	}
	return cur.DisplaySymbol() + " " + formatted
}

// AllCurrenciesLine renders the "all currencies" display string: the base
// amount first (0 decimals, grouped), then "/ USD x.xx" and "/ EUR x.xx"
// when those codes exist in the currency table. No other code is ever
// appended in this mode.
func (s *CurrencyService) AllCurrenciesLine(ctx context.Context, amount decimal.Decimal) string {
	var b strings.Builder
	b.WriteString(s.groupDigits(amount, 0, 0))
	b.WriteString(" ")
	b.WriteString(entity.BaseCurrencyCode)

	currencies, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("currency table unavailable, rendering base amount only", zap.Error(err))
		return b.String()
	}

	for _, code := range []string{"USD", "EUR"} {
		for _, cur := range currencies {
			if cur.Code != code {
				continue
			}
			converted := convertFromFCFA(amount, cur)
			b.WriteString(" / ")
			b.WriteString(code)
			b.WriteString(" ")
			b.WriteString(converted.StringFixed(2))
			break
		}
	}
	return b.String()
}

// SetDefault marks a currency as the installation default and broadcasts
// the invalidation signal to every money-displaying subscriber.
func (s *CurrencyService) SetDefault(ctx context.Context, code string) error {
	if err := s.repo.SetDefault(ctx, code); err != nil {
		return err
	}
	s.publishUpdated()
	return nil
}

// Upsert creates or updates a currency row and broadcasts invalidation.
func (s *CurrencyService) Upsert(ctx context.Context, currency entity.Currency) error {
	if err := s.repo.Upsert(ctx, currency); err != nil {
		return err
	}
	s.publishUpdated()
	return nil
}

// Delete removes a currency row and broadcasts invalidation.
func (s *CurrencyService) Delete(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}
	s.publishUpdated()
	return nil
}

func (s *CurrencyService) publishUpdated() {
	s.Invalidate()
	if s.bus != nil {
		s.bus.Publish(event.TopicCurrencyUpdated)
	}
}

func (s *CurrencyService) groupDigits(v decimal.Decimal, minFrac, maxFrac int) string {
	return s.printer.Sprint(number.Decimal(v.InexactFloat64(),
		number.MinFractionDigits(minFrac),
		number.MaxFractionDigits(maxFrac)))
}
