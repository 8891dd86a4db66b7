package wallet

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/vietddude/codemarket/internal/core/domain"
)

// poller synthesizes provider events for transports without push support.
type poller struct {
	provider *RPCProvider
	interval time.Duration
	log      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}

	// last good sample; events are diffs against it
	accounts []string
	chainID  domain.ChainID
	primed   bool
}

func newPoller(p *RPCProvider, interval time.Duration, log *slog.Logger) *poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &poller{
		provider: p,
		interval: interval,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// prime takes the baseline sample. It runs before Subscribe returns, so any
// change the caller observes afterwards is reported.
func (p *poller) prime() {
	p.accounts, p.chainID, p.primed = p.sample()
}

func (p *poller) run(fn func(Event)) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			accounts, chainID, ok := p.sample()
			if !ok {
				continue
			}
			if p.primed && !slices.Equal(p.accounts, accounts) {
				fn(Event{Kind: EventAccountsChanged, Accounts: accounts})
			}
			if p.primed && !p.chainID.Equal(chainID) {
				fn(Event{Kind: EventChainChanged, ChainID: chainID})
			}
			p.accounts, p.chainID, p.primed = accounts, chainID, true
		}
	}
}

func (p *poller) sample() ([]string, domain.ChainID, bool) {
	accounts, err := p.provider.Accounts(p.ctx)
	if err != nil {
		p.log.Debug("Poll accounts failed", "error", err)
		return nil, "", false
	}
	chainID, err := p.provider.ChainID(p.ctx)
	if err != nil {
		p.log.Debug("Poll chain id failed", "error", err)
		return nil, "", false
	}
	return accounts, chainID, true
}

func (p *poller) stop() {
	p.once.Do(func() {
		p.cancel()
		<-p.done
	})
}
