package hub

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"

	"github.com/babylonchain/liquid-staking-hub/internal/store"
)

// Store prefixes. Each singleton lives under its own one-byte key.
var (
	ConfigKey       = collections.NewPrefix(0x01)
	ParamsKey       = collections.NewPrefix(0x02)
	StateKey        = collections.NewPrefix(0x03)
	CurrentBatchKey = collections.NewPrefix(0x04)
	BootstrapKey    = collections.NewPrefix(0x05)

	UnbondHistoryPrefix = collections.NewPrefix(0x11)
	UnbondWaitPrefix    = collections.NewPrefix(0x12)
	ValidatorsPrefix    = collections.NewPrefix(0x21)
	GuardiansPrefix     = collections.NewPrefix(0x31)
)

// Hub is the liquid staking contract. Its storage is resolved from the
// context of every call, see store.WithKVStore.
type Hub struct {
	querier         Querier
	logger          zerolog.Logger
	validateAddress func(string) error

	Schema       collections.Schema
	Config       collections.Item[Config]
	Params       collections.Item[Parameters]
	State        collections.Item[State]
	CurrentBatch collections.Item[CurrentBatch]
	Bootstrapped collections.Item[bool]
	// UnbondHistory is keyed by batch id, big-endian so ranges follow batch order.
	UnbondHistory collections.Map[uint64, UnbondHistory]
	// UnbondWaitList is keyed by (address, batch id) so one user's requests
	// form a contiguous range.
	UnbondWaitList collections.Map[collections.Pair[string, uint64], UnbondWaitEntity]
	Validators     collections.Map[string, Validator]
	Guardians      collections.KeySet[string]
}

type Option func(*Hub)

func WithLogger(logger zerolog.Logger) Option {
	return func(h *Hub) { h.logger = logger }
}

// WithAddressValidator sets the check applied to every address given in a
// message. By default only empty addresses are rejected.
func WithAddressValidator(fn func(string) error) Option {
	return func(h *Hub) { h.validateAddress = fn }
}

func New(querier Querier, opts ...Option) (*Hub, error) {
	sb := collections.NewSchemaBuilder(store.ContextStoreService{})
	h := &Hub{
		querier: querier,
		logger:  zerolog.Nop(),
		validateAddress: func(addr string) error {
			if addr == "" {
				return errors.New("empty address")
			}
			return nil
		},
		Config:       collections.NewItem(sb, ConfigKey, "config", JSONValue[Config]("config")),
		Params:       collections.NewItem(sb, ParamsKey, "parameters", JSONValue[Parameters]("parameters")),
		State:        collections.NewItem(sb, StateKey, "state", JSONValue[State]("state")),
		CurrentBatch: collections.NewItem(sb, CurrentBatchKey, "current_batch", JSONValue[CurrentBatch]("current_batch")),
		Bootstrapped: collections.NewItem(sb, BootstrapKey, "bootstrapped", JSONValue[bool]("bool")),
		UnbondHistory: collections.NewMap(sb, UnbondHistoryPrefix, "unbond_history",
			collections.Uint64Key, JSONValue[UnbondHistory]("unbond_history")),
		UnbondWaitList: collections.NewMap(sb, UnbondWaitPrefix, "unbond_wait_list",
			collections.PairKeyCodec(collections.StringKey, collections.Uint64Key), JSONValue[UnbondWaitEntity]("unbond_wait_entity")),
		Validators: collections.NewMap(sb, ValidatorsPrefix, "validators",
			collections.StringKey, JSONValue[Validator]("validator")),
		Guardians: collections.NewKeySet(sb, GuardiansPrefix, "guardians", collections.StringKey),
	}
	for _, opt := range opts {
		opt(h)
	}

	schema, err := sb.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build hub schema: %w", err)
	}
	h.Schema = schema
	return h, nil
}

// atomic runs fn on a write-buffered branch of the context store and
// flushes the branch only when fn succeeds.
func (h *Hub) atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	parent, ok := store.KVStoreFromContext(ctx)
	if !ok {
		return store.ErrNoStore
	}
	branch := store.NewCacheKVStore(parent)
	if err := fn(store.WithKVStore(ctx, branch)); err != nil {
		return err
	}
	return branch.Write()
}

// simulate runs fn on a branch that is always discarded.
func (h *Hub) simulate(ctx context.Context, fn func(ctx context.Context) error) error {
	parent, ok := store.KVStoreFromContext(ctx)
	if !ok {
		return store.ErrNoStore
	}
	return fn(store.WithKVStore(ctx, store.NewCacheKVStore(parent)))
}

func (h *Hub) loadConfig(ctx context.Context) (Config, error) {
	cfg, err := h.Config.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return cfg, ErrNotInstantiated
	}
	return cfg, err
}

func (h *Hub) loadParams(ctx context.Context) (Parameters, error) {
	params, err := h.Params.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return params, ErrNotInstantiated
	}
	return params, err
}

func (h *Hub) loadState(ctx context.Context) (State, error) {
	state, err := h.State.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return state, ErrNotInstantiated
	}
	return state, err
}

func (h *Hub) loadBatch(ctx context.Context) (CurrentBatch, error) {
	batch, err := h.CurrentBatch.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return batch, ErrNotInstantiated
	}
	return batch, err
}

func (h *Hub) assertOwner(ctx context.Context, sender string) (Config, error) {
	cfg, err := h.loadConfig(ctx)
	if err != nil {
		return cfg, err
	}
	if sender != cfg.Creator {
		return cfg, errorsmod.Wrapf(ErrUnauthorized, "%s is not the owner", sender)
	}
	return cfg, nil
}

func (h *Hub) assertNotPaused(params Parameters) error {
	if params.Paused {
		return ErrPaused
	}
	return nil
}

func (h *Hub) checkAddress(field, addr string) error {
	if err := h.validateAddress(addr); err != nil {
		return errorsmod.Wrapf(ErrInvalidRequest, "invalid %s %q: %s", field, addr, err)
	}
	return nil
}

// tokenSupply returns the total supply of a token contract. A token that was
// never registered has issued nothing.
func (h *Hub) tokenSupply(ctx context.Context, contract *string) (sdkmath.Int, error) {
	if contract == nil {
		return sdkmath.ZeroInt(), nil
	}
	info, err := h.querier.TokenInfo(ctx, *contract)
	if err != nil {
		return sdkmath.ZeroInt(), errorsmod.Wrapf(ErrQuery, "token info of %s: %s", *contract, err)
	}
	if err := checkUint128(info.TotalSupply); err != nil {
		return sdkmath.ZeroInt(), err
	}
	return info.TotalSupply, nil
}

func registered(contract *string, name string) (string, error) {
	if contract == nil || *contract == "" {
		return "", errorsmod.Wrapf(ErrNotRegistered, "the %s contract must have been registered", name)
	}
	return *contract, nil
}
